package bitcoin

import (
	"context"

	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/settings"
)

// Manager is the Bitcoin Manager: local cost estimation plus a thin,
// context-aware facade over the pluggable Ordinals Provider and Fee
// Oracle adapters, mirroring the teacher's convention of a manager type
// wrapping collaborator interfaces rather than talking to the network
// directly.
type Manager struct {
	Ordinals  adapters.OrdinalsProvider
	FeeOracle adapters.FeeOracle
	Network   settings.Network
}

// NewManager constructs a Bitcoin Manager. feeOracle may be nil, in which
// case EstimateFeeRate falls back to the Ordinals Provider's own fee
// estimate.
func NewManager(ordinals adapters.OrdinalsProvider, feeOracle adapters.FeeOracle, network settings.Network) *Manager {
	return &Manager{Ordinals: ordinals, FeeOracle: feeOracle, Network: network}
}

// EstimateFeeRate returns a sat/vB fee rate for the requested confirmation
// target, preferring the Fee Oracle and falling back to the Ordinals
// Provider's estimate.
func (m *Manager) EstimateFeeRate(ctx context.Context, targetBlocks int) (float64, error) {
	if m.FeeOracle != nil {
		return m.FeeOracle.EstimateFee(ctx, targetBlocks)
	}
	return m.Ordinals.EstimateFee(ctx, targetBlocks)
}

// CostEstimate is the result of EstimateInscriptionCost.
type CostEstimate struct {
	VBytes       int
	NetworkFee   uint64
	DustValue    uint64
	TotalSats    uint64
}

// EstimateInscriptionCost computes the total satoshi cost of inscribing
// content at a given fee rate: the commit+reveal vbyte estimate times the
// rate, plus the dust-value output the reveal transaction must carry.
// Pure — no network calls, matching spec §4.6's estimateCost/
// estimateTypedOriginalCost, which must run without a live asset.
func EstimateInscriptionCost(content InscriptionContent, internalKeyXOnly []byte, feeRate float64) (*CostEstimate, error) {
	vbytes, err := EstimateVBytes(1, 1, &content, internalKeyXOnly)
	if err != nil {
		return nil, err
	}

	fee := EstimateFee(vbytes, feeRate)

	return &CostEstimate{
		VBytes:     vbytes,
		NetworkFee: fee,
		DustValue:  RevealDustValue,
		TotalSats:  fee + RevealDustValue,
	}, nil
}

// Inscribe delegates to the Ordinals Provider, which is responsible for
// the commit/reveal construction and broadcast described in spec §4.5
// (a self-custodial provider implementation would build on
// BuildCommitTransaction/BuildRevealTransaction/SelectUTXOs directly; see
// LocalOrdinalsProvider).
func (m *Manager) Inscribe(ctx context.Context, content InscriptionContent, feeRate float64) (*adapters.Inscription, error) {
	return m.Ordinals.CreateInscription(ctx, adapters.CreateInscriptionRequest{
		Data:        content.Data,
		ContentType: content.ContentType,
		Metadata:    content.Metadata,
		FeeRate:     feeRate,
	})
}

// Reinscribe delegates to the Ordinals Provider to append new content to
// an already-inscribed satoshi, the commit/reveal mechanism did:btco
// deactivation markers use to stay on the same satoshi as the document
// they supersede.
func (m *Manager) Reinscribe(ctx context.Context, satoshi uint64, content InscriptionContent, feeRate float64) (*adapters.Inscription, error) {
	return m.Ordinals.Reinscribe(ctx, satoshi, adapters.CreateInscriptionRequest{
		Data:        content.Data,
		ContentType: content.ContentType,
		Metadata:    content.Metadata,
		FeeRate:     feeRate,
	})
}

// Transfer validates the recipient Taproot address and delegates the
// UTXO-moving transaction to the Ordinals Provider.
func (m *Manager) Transfer(ctx context.Context, inscriptionID, recipientAddress string, feeRate float64) (*adapters.TransferResult, error) {
	if _, _, err := DecodeTaprootAddress(recipientAddress); err != nil {
		return nil, err
	}

	return m.Ordinals.TransferInscription(ctx, inscriptionID, recipientAddress, feeRate)
}
