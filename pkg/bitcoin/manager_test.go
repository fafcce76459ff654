package bitcoin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/settings"
)

func TestEstimateInscriptionCostIsPureAndPositive(t *testing.T) {
	content := InscriptionContent{Data: []byte("hello"), ContentType: "text/plain"}
	key := make([]byte, 32)

	cost, err := EstimateInscriptionCost(content, key, 2.0)
	require.NoError(t, err)

	assert.Greater(t, cost.TotalSats, uint64(0))
	assert.Equal(t, uint64(RevealDustValue), cost.DustValue)
	assert.Equal(t, cost.NetworkFee+cost.DustValue, cost.TotalSats)
}

func TestManagerEstimateFeeRatePrefersFeeOracle(t *testing.T) {
	ordinals := adapters.NewMockOrdinalsProvider(1, 99.0)
	oracle := &adapters.MockFeeOracle{SatPerVByte: 5.0}

	m := NewManager(ordinals, oracle, settings.NetworkRegtest)
	rate, err := m.EstimateFeeRate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)
}

func TestManagerInscribeDelegatesToOrdinalsProvider(t *testing.T) {
	ordinals := adapters.NewMockOrdinalsProvider(1000, 1.0)
	m := NewManager(ordinals, nil, settings.NetworkRegtest)

	ins, err := m.Inscribe(context.Background(), InscriptionContent{Data: []byte("x"), ContentType: "text/plain"}, 1.0)
	require.NoError(t, err)
	assert.NotEmpty(t, ins.InscriptionID)
}
