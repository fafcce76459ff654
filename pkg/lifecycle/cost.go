package lifecycle

import (
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/bitcoin"
	"github.com/originals-sdk/sdk/pkg/did"
	"github.com/originals-sdk/sdk/pkg/kind"
)

// Confidence qualifies a CostEstimate's precision.
type Confidence string

const (
	ConfidenceExact     Confidence = "exact"
	ConfidenceEstimated Confidence = "estimated"
)

// CostBreakdown itemizes a CostEstimate.
type CostBreakdown struct {
	NetworkFee uint64
	DataCost   uint64
	DustValue  uint64
}

// CostEstimate is returned by EstimateCost and EstimateTypedOriginalCost.
type CostEstimate struct {
	TotalSats   uint64
	DataSize    int
	TargetLayer asset.Layer
	Confidence  Confidence
	Breakdown   CostBreakdown
}

// EstimateCost computes the satoshi cost of migrating an asset to target.
// webvh targets are free (storage cost is out of scope for on-chain
// estimation); btco targets run the payload through the Bitcoin Manager's
// pure cost estimator.
func (m *Manager) EstimateCost(a *asset.OriginalsAsset, target asset.Layer, feeRate float64) (*CostEstimate, error) {
	if target == asset.LayerWebVH {
		return &CostEstimate{TargetLayer: target, Confidence: ConfidenceExact}, nil
	}

	rec, err := m.lookup(a)
	if err != nil {
		return nil, err
	}

	return m.estimateInscriptionCost(rec.doc, rec.latestVC, target, feeRate)
}

// EstimateTypedOriginalCost estimates the migration cost for a manifest
// without requiring a live asset, per spec §4.6.
func (m *Manager) EstimateTypedOriginalCost(manifest *kind.Manifest, target asset.Layer, feeRate float64) (*CostEstimate, error) {
	if target == asset.LayerWebVH {
		return &CostEstimate{TargetLayer: target, Confidence: ConfidenceExact}, nil
	}

	keyType, err := did.MapSettingsKeyType(m.settings.DefaultKeyType)
	if err != nil {
		return nil, err
	}
	doc, _, err := did.CreatePeerDID(keyType)
	if err != nil {
		return nil, err
	}

	return m.estimateInscriptionCost(doc, nil, target, feeRate)
}

func (m *Manager) estimateInscriptionCost(doc *did.Document, vc interface{}, target asset.Layer, feeRate float64) (*CostEstimate, error) {
	envelopeBytes, err := bitcoin.EncodeMetadataEnvelope(bitcoin.MetadataEnvelope{DIDDocument: doc, VerifiableCredential: vc})
	if err != nil {
		return nil, err
	}

	content := bitcoin.InscriptionContent{Data: envelopeBytes, ContentType: "application/cbor", Metaprotocol: "originals"}

	internalKey := make([]byte, 32)
	estimate, err := bitcoin.EstimateInscriptionCost(content, internalKey, feeRate)
	if err != nil {
		return nil, err
	}

	prometheusFeeEstimatesServed.Inc()

	return &CostEstimate{
		TotalSats:   estimate.TotalSats,
		DataSize:    len(envelopeBytes),
		TargetLayer: target,
		Confidence:  ConfidenceEstimated,
		Breakdown: CostBreakdown{
			NetworkFee: estimate.NetworkFee,
			DataCost:   uint64(estimate.VBytes),
			DustValue:  estimate.DustValue,
		},
	}, nil
}

// GetManifest returns the typed manifest attached at creation, if any.
func (m *Manager) GetManifest(a *asset.OriginalsAsset) *kind.Manifest {
	return a.Manifest()
}

// GetProvenance returns the asset's full provenance chain.
func (m *Manager) GetProvenance(a *asset.OriginalsAsset) asset.Chain {
	return a.Provenance()
}

// GetProvenanceSummary returns the asset's compact provenance summary.
func (m *Manager) GetProvenanceSummary(a *asset.OriginalsAsset) asset.Summary {
	return a.ProvenanceSummary()
}

// GetMigrationHistory returns the recorded migration events for an asset
// tracked under assetID (any DID the asset has ever held), per the
// Migration Manager component.
func (m *Manager) GetMigrationHistory(assetID string) []MigrationEvent {
	r := m.index(assetID)
	if r == nil {
		return nil
	}
	return append([]MigrationEvent{}, r.history...)
}
