package lifecycle

import (
	"context"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/bitcoin"
	"github.com/originals-sdk/sdk/pkg/credential"
	"github.com/originals-sdk/sdk/pkg/did"
)

// DeactivateOptions configures Deactivate.
type DeactivateOptions struct {
	FeeRate    float64
	OnProgress OnProgress
}

// Deactivate inscribes a deactivation marker on the same satoshi as an
// asset's did:btco document, per spec §3/§4.3: once deactivated, the
// binding accepts no further updates or migrations, enforced through
// requireActive. Requires the current layer to be btco and not already
// deactivated.
func (m *Manager) Deactivate(ctx context.Context, a *asset.OriginalsAsset, opts DeactivateOptions) (*asset.OriginalsAsset, error) {
	rec, err := m.requireActive(a)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	report(opts.OnProgress, PhaseValidating, 0, "validating deactivation", nil)

	if a.CurrentLayer() != asset.LayerBTCO {
		err := errors.NewStateError("deactivate requires the current layer to be btco, got %s", a.CurrentLayer())
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}
	if rec.doc == nil || rec.doc.Satoshi == 0 {
		err := errors.NewStateError("asset has no inscribed satoshi to deactivate")
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	marker := did.NewDeactivationMarker()

	envelopeBytes, err := bitcoin.EncodeMetadataEnvelope(bitcoin.MetadataEnvelope{
		DIDDocument: marker.DIDDocument,
		Deactivated: marker.Deactivated,
	})
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseBroadcast, 30, "broadcasting deactivation marker", nil)

	content := bitcoin.InscriptionContent{
		Data:         envelopeBytes,
		ContentType:  "application/cbor",
		Metaprotocol: "originals",
	}

	satoshi := rec.doc.Satoshi

	inscription, err := m.bitcoin.Reinscribe(ctx, satoshi, content, opts.FeeRate)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 30, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseSubmitted, 70, "deactivation submitted", map[string]interface{}{"revealTxId": inscription.RevealTxID})

	report(opts.OnProgress, PhaseIssuing, 85, "issuing deactivation credential", nil)

	subject := map[string]interface{}{
		"id":      a.ID(),
		"satoshi": satoshi,
	}

	vc, err := credential.IssueDeactivationCredential(subject, a.ID(), rec.latestVC, rec.signer, rec.vmID)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 85, err.Error(), nil)
		return nil, err
	}
	rec.mutator.AppendCredential(vc)
	rec.latestVC = vc

	rec.doc.Deactivated = true
	rec.deactivated = true

	rec.mutator.RecordDeactivation(asset.DeactivationRecord{
		Timestamp:  time.Now(),
		Satoshi:    satoshi,
		RevealTxID: inscription.RevealTxID,
		CommitTxID: inscription.CommitTxID,
	})

	prometheusDeactivationsCompleted.Inc()
	report(opts.OnProgress, PhaseCompleted, 100, "deactivated", map[string]interface{}{"did": a.ID(), "satoshi": satoshi})

	return a, nil
}
