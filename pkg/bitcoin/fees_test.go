package bitcoin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateVBytesScalesWithInputs(t *testing.T) {
	one, err := EstimateVBytes(1, 1, nil, nil)
	require.NoError(t, err)

	two, err := EstimateVBytes(2, 1, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, p2trKeyPathInputVB, two-one)
}

func TestEstimateVBytesIncludesInscriptionWitness(t *testing.T) {
	key := bytes.Repeat([]byte{0x03}, 32)
	content := InscriptionContent{Data: bytes.Repeat([]byte{0x01}, 100), ContentType: "text/plain"}

	withoutInscription, err := EstimateVBytes(1, 1, nil, nil)
	require.NoError(t, err)

	withInscription, err := EstimateVBytes(1, 1, &content, key)
	require.NoError(t, err)

	assert.Greater(t, withInscription, withoutInscription)
}

func TestEstimateFeeRoundsUp(t *testing.T) {
	assert.Equal(t, uint64(150), EstimateFee(100, 1.5))
	assert.Equal(t, uint64(101), EstimateFee(101, 1.0))
}

func TestControlBlockSizeSingleLeaf(t *testing.T) {
	assert.Equal(t, 33, controlBlockSize(0))
}
