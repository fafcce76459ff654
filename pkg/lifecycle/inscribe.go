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

// InscribeOptions configures Inscribe.
type InscribeOptions struct {
	FeeRate    float64
	OnProgress OnProgress
}

// Inscribe builds a CBOR envelope carrying the asset's current DID
// document and its most recent credential, selects UTXOs and submits a
// commit+reveal inscription through the Bitcoin Manager, and records the
// resulting satoshi as the asset's permanent did:btco binding. Requires
// the current layer to be peer or webvh.
func (m *Manager) Inscribe(ctx context.Context, a *asset.OriginalsAsset, opts InscribeOptions) (*asset.OriginalsAsset, error) {
	rec, err := m.requireActive(a)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	report(opts.OnProgress, PhaseValidating, 0, "validating migration", nil)

	if a.CurrentLayer() == asset.LayerBTCO {
		err := errors.NewStateError("inscribe is refused for an asset already on btco")
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}
	if rec.doc == nil {
		err := errors.NewStateError("asset has no DID document to inscribe")
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	var vcPayload interface{}
	if rec.latestVC != nil {
		vcPayload = rec.latestVC
	}

	envelopeBytes, err := bitcoin.EncodeMetadataEnvelope(bitcoin.MetadataEnvelope{
		DIDDocument:           rec.doc,
		VerifiableCredential:  vcPayload,
	})
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseBroadcast, 30, "broadcasting commit and reveal transactions", nil)

	content := bitcoin.InscriptionContent{
		Data:         envelopeBytes,
		ContentType:  "application/cbor",
		Metaprotocol: "originals",
	}

	inscription, err := m.bitcoin.Inscribe(ctx, content, opts.FeeRate)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 30, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseSubmitted, 70, "inscription submitted", map[string]interface{}{"revealTxId": inscription.RevealTxID})

	fromLayer := a.CurrentLayer()

	btcoDID := did.BTCODID(m.bitcoin.Network, inscription.Satoshi)
	btcoDoc, err := did.CreateBTCODocument(m.bitcoin.Network, rec.signer.KeyType(), rec.signer, inscription.Satoshi, inscription.InscriptionID, inscription.RevealTxID)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 70, err.Error(), nil)
		return nil, err
	}

	if err := rec.mutator.SetBinding(asset.LayerBTCO, btcoDID); err != nil {
		report(opts.OnProgress, PhaseFailed, 70, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseIssuing, 85, "issuing migration credential", nil)

	subject := map[string]interface{}{
		"id":          btcoDID,
		"targetDid":   btcoDID,
		"fromLayer":   string(fromLayer),
		"toLayer":     string(asset.LayerBTCO),
		"satoshi":     inscription.Satoshi,
		"inscription": inscription.InscriptionID,
	}

	vc, err := credential.IssueMigrationCredential(subject, a.ID(), rec.latestVC, rec.signer, rec.vmID)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 85, err.Error(), nil)
		return nil, err
	}
	rec.mutator.AppendCredential(vc)
	rec.latestVC = vc

	rec.mutator.SetCurrentLayer(asset.LayerBTCO, btcoDID)
	rec.doc = btcoDoc

	rec.mutator.RecordMigration(asset.MigrationRecord{
		FromLayer:  fromLayer,
		ToLayer:    asset.LayerBTCO,
		Timestamp:  time.Now(),
		RevealTxID: inscription.RevealTxID,
		CommitTxID: inscription.CommitTxID,
		Inscription: inscription.InscriptionID,
		Satoshi:    inscription.Satoshi,
		FeeRate:    opts.FeeRate,
	})
	rec.history = append(rec.history, MigrationEvent{FromLayer: fromLayer, ToLayer: asset.LayerBTCO, Timestamp: time.Now()})

	m.register(rec, btcoDID)

	prometheusInscriptionsBuilt.Inc()
	prometheusMigrationsCompleted.Inc()
	report(opts.OnProgress, PhaseCompleted, 100, "inscribed on btco", map[string]interface{}{"did": btcoDID, "satoshi": inscription.Satoshi})

	return a, nil
}
