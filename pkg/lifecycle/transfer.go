package lifecycle

import (
	"context"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/credential"
)

// TransferOptions configures Transfer.
type TransferOptions struct {
	FeeRate    float64
	OnProgress OnProgress
}

// TransferResult is returned by Transfer.
type TransferResult struct {
	TxID  string
	Fee   int64
	Asset *asset.OriginalsAsset
}

// Transfer moves the UTXO carrying an inscribed asset's satoshi to a new
// Taproot address. The asset's DID, satoshi, and inscription id are
// unchanged; only ownership moves. Requires the current layer to be btco.
func (m *Manager) Transfer(ctx context.Context, a *asset.OriginalsAsset, recipientAddress string, opts TransferOptions) (*TransferResult, error) {
	rec, err := m.lookup(a)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	report(opts.OnProgress, PhaseValidating, 0, "validating transfer", nil)

	if a.CurrentLayer() != asset.LayerBTCO {
		err := errors.NewStateError("transfer requires the current layer to be btco, got %s", a.CurrentLayer())
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	b := a.Bindings()
	if b.BTCODID == nil {
		err := errors.NewStateError("btco asset has no btco binding")
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseBroadcast, 40, "broadcasting transfer transaction", nil)

	result, err := m.bitcoin.Transfer(ctx, *b.BTCODID, recipientAddress, opts.FeeRate)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 40, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseSubmitted, 80, "transfer submitted", map[string]interface{}{"txId": result.TxID})

	subject := map[string]interface{}{
		"id":        a.ID(),
		"toAddress": recipientAddress,
		"txId":      result.TxID,
	}

	vc, err := credential.IssueOwnershipCredential(subject, a.ID(), rec.latestVC, rec.signer, rec.vmID)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 80, err.Error(), nil)
		return nil, err
	}
	rec.mutator.AppendCredential(vc)
	rec.latestVC = vc

	rec.mutator.RecordTransfer(asset.TransferRecord{
		FromAddressOrDID: a.ID(),
		ToAddress:        recipientAddress,
		Timestamp:        time.Now(),
		TxID:             result.TxID,
	})

	prometheusTransfersCompleted.Inc()
	report(opts.OnProgress, PhaseCompleted, 100, "transfer complete", map[string]interface{}{"txId": result.TxID})

	return &TransferResult{TxID: result.TxID, Fee: result.FeeSats, Asset: a}, nil
}
