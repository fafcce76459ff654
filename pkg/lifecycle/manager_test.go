package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/bitcoin"
	"github.com/originals-sdk/sdk/pkg/did"
	"github.com/originals-sdk/sdk/pkg/resource"
	"github.com/originals-sdk/sdk/settings"
)

func newTestManager(t *testing.T) (*Manager, *resource.Manager) {
	t.Helper()

	s := settings.Default()
	s.Network = settings.NetworkRegtest

	resources := resource.NewManager()
	ordinals := adapters.NewMockOrdinalsProvider(100000, 5.0)
	feeOracle := &adapters.MockFeeOracle{SatPerVByte: 5.0}
	storage := adapters.NewInMemoryStorageAdapter("example.com", "assets")
	bc := bitcoin.NewManager(ordinals, feeOracle, s.Network)
	resolver := did.NewResolver(ordinals, nil)

	return New(s, resources, bc, storage, resolver, nil), resources
}

func mustCreateResource(t *testing.T, rm *resource.Manager, content []byte) *resource.Resource {
	t.Helper()
	r, err := rm.Create(content, resource.CreateOptions{Type: resource.TypeData, ContentType: "application/json"})
	require.NoError(t, err)
	return r
}

func TestCreateDraftProducesPeerAsset(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))

	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{Creator: "alice"})
	require.NoError(t, err)

	assert.Equal(t, asset.LayerPeer, a.CurrentLayer())
	assert.Len(t, a.Resources(), 1)
	assert.Equal(t, "alice", a.ProvenanceSummary().Creator)
}

func TestCreateDraftRejectsEmptyResources(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.CreateDraft(nil, CreateDraftOptions{})
	assert.Error(t, err)
}

func TestPublishMigratesToWebVHAndIssuesCredentials(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{Creator: "alice"})
	require.NoError(t, err)

	var phases []Phase
	a2, err := m.Publish(context.Background(), a, PublishOptions{
		Domain: "example.com",
		Slug:   "asset-01",
		OnProgress: func(p Progress) { phases = append(phases, p.Phase) },
	})
	require.NoError(t, err)

	assert.Equal(t, asset.LayerWebVH, a2.CurrentLayer())
	assert.NotNil(t, a2.Bindings().WebVHDID)
	assert.NotNil(t, a2.Bindings().PeerDID)
	assert.Equal(t, 1, a2.ProvenanceSummary().MigrationCount)
	assert.GreaterOrEqual(t, len(a2.Credentials()), 2)
	assert.Contains(t, phases, PhaseCompleted)
}

func TestPublishFailsWhenNotOnPeerLayer(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	_, err = m.Publish(context.Background(), a, PublishOptions{Domain: "example.com", Slug: "asset-01"})
	require.NoError(t, err)

	_, err = m.Publish(context.Background(), a, PublishOptions{Domain: "example.com", Slug: "asset-02"})
	assert.Error(t, err)
}

func TestInscribeMigratesToBTCO(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{Creator: "alice"})
	require.NoError(t, err)

	a2, err := m.Inscribe(context.Background(), a, InscribeOptions{FeeRate: 10})
	require.NoError(t, err)

	assert.Equal(t, asset.LayerBTCO, a2.CurrentLayer())
	require.NotNil(t, a2.Bindings().BTCODID)
	assert.Contains(t, *a2.Bindings().BTCODID, "did:btco:")

	prov := a2.Provenance()
	require.Len(t, prov.Migrations, 1)
	assert.NotEmpty(t, prov.Migrations[0].RevealTxID)
	assert.Equal(t, asset.LayerBTCO, prov.Migrations[0].ToLayer)
}

func TestInscribeRefusedForBTCOAsset(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	a, err = m.Inscribe(context.Background(), a, InscribeOptions{FeeRate: 10})
	require.NoError(t, err)

	_, err = m.Inscribe(context.Background(), a, InscribeOptions{FeeRate: 10})
	assert.Error(t, err)
}

func TestTransferPreservesDID(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	a, err = m.Inscribe(context.Background(), a, InscribeOptions{FeeRate: 10})
	require.NoError(t, err)

	originalID := a.ID()
	btcoDID := *a.Bindings().BTCODID

	recipientKey := make([]byte, 32)
	recipientKey[0] = 0x02
	addr, err := bitcoin.EncodeTaprootAddress("bcrt", recipientKey)
	require.NoError(t, err)

	result, err := m.Transfer(context.Background(), a, addr, TransferOptions{FeeRate: 10})
	require.NoError(t, err)

	assert.NotEmpty(t, result.TxID)
	assert.Equal(t, originalID, a.ID())
	assert.Equal(t, btcoDID, *a.Bindings().BTCODID)
	assert.Equal(t, 1, a.ProvenanceSummary().TransferCount)
}

func TestTransferRefusedForNonBTCOAsset(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	recipientKey := make([]byte, 32)
	recipientKey[0] = 0x03
	addr, err := bitcoin.EncodeTaprootAddress("bcrt", recipientKey)
	require.NoError(t, err)

	_, err = m.Transfer(context.Background(), a, addr, TransferOptions{FeeRate: 10})
	assert.Error(t, err)
}

func TestValidateMigrationIsPure(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	result := m.ValidateMigration(a, asset.LayerWebVH)
	assert.True(t, result.Valid)
	assert.True(t, result.Checks.LayerTransitionAllowed)

	result = m.ValidateMigration(a, asset.LayerBTCO)
	assert.True(t, result.Valid)

	require.Equal(t, asset.LayerPeer, a.CurrentLayer())
}

func TestEstimateCostForWebVHIsZero(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	estimate, err := m.EstimateCost(a, asset.LayerWebVH, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), estimate.TotalSats)
}

func TestEstimateCostForBTCOIsPositive(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	estimate, err := m.EstimateCost(a, asset.LayerBTCO, 10)
	require.NoError(t, err)
	assert.Greater(t, estimate.TotalSats, uint64(0))
	assert.Equal(t, uint64(546), estimate.Breakdown.DustValue)
}

func TestGetMigrationHistoryTracksAcrossLayers(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	peerID := a.ID()

	a, err = m.Inscribe(context.Background(), a, InscribeOptions{FeeRate: 10})
	require.NoError(t, err)

	history := m.GetMigrationHistory(peerID)
	require.Len(t, history, 1)
	assert.Equal(t, asset.LayerPeer, history[0].FromLayer)
	assert.Equal(t, asset.LayerBTCO, history[0].ToLayer)
}

func TestVerifyAgainstCredentialsSignedDuringLifecycle(t *testing.T) {
	m, rm := newTestManager(t)
	r := mustCreateResource(t, rm, []byte(`{"hello":"world"}`))
	a, err := m.CreateDraft([]*resource.Resource{r}, CreateDraftOptions{})
	require.NoError(t, err)

	a, err = m.Publish(context.Background(), a, PublishOptions{Domain: "example.com", Slug: "asset-01"})
	require.NoError(t, err)

	result := m.Verify(context.Background(), a)
	assert.True(t, result.Valid, "%v", result.Errors)
}
