package bitcoin

import (
	"context"
	"sync"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/adapters"
)

// UTXOSource lists the spendable UTXOs available to fund an inscription,
// the self-custodial analogue of a wallet's coin selection feed.
type UTXOSource interface {
	ListUTXOs(ctx context.Context) ([]UTXO, error)
}

// TapscriptSigner produces a BIP341 script-path signature over a sighash
// for a given internal key, the raw-Bitcoin-signing counterpart to
// adapters.ExternalSigner (which signs credentials, not transactions).
type TapscriptSigner interface {
	SignTapscript(ctx context.Context, sighash []byte, internalKeyXOnly []byte) ([]byte, error)
}

// RawBroadcaster submits a fully-signed raw transaction to the network.
type RawBroadcaster interface {
	Broadcast(ctx context.Context, rawTxHex string) (string, error)
}

// LocalOrdinalsProvider is a self-custodial adapters.OrdinalsProvider
// implementation built entirely on this package's UTXO selection,
// envelope, Taproot and transaction-assembly primitives, demonstrating
// the full local construction path spec §4.5 describes rather than
// delegating to an external Ordinals API.
type LocalOrdinalsProvider struct {
	mu        sync.RWMutex
	utxos     UTXOSource
	signer    TapscriptSigner
	broadcast RawBroadcaster
	feeRate   float64

	internalKeyXOnly []byte
	changeScript      []byte

	bySatoshi map[uint64]*adapters.Inscription
	byID      map[string]*adapters.Inscription
}

// NewLocalOrdinalsProvider wires a self-custodial Ordinals Provider from a
// UTXO source, a tapscript signer, a raw broadcaster, and the wallet's
// Taproot internal key (shared across inscriptions) and change script.
func NewLocalOrdinalsProvider(utxos UTXOSource, signer TapscriptSigner, broadcast RawBroadcaster, internalKeyXOnly, changeScript []byte, defaultFeeRate float64) *LocalOrdinalsProvider {
	return &LocalOrdinalsProvider{
		utxos:            utxos,
		signer:           signer,
		broadcast:        broadcast,
		feeRate:          defaultFeeRate,
		internalKeyXOnly: internalKeyXOnly,
		changeScript:     changeScript,
		bySatoshi:        map[uint64]*adapters.Inscription{},
		byID:             map[string]*adapters.Inscription{},
	}
}

// CreateInscription selects funding UTXOs, builds and signs the commit and
// reveal transactions, broadcasts both, and records the inscription.
func (p *LocalOrdinalsProvider) CreateInscription(ctx context.Context, req adapters.CreateInscriptionRequest) (*adapters.Inscription, error) {
	feeRate := req.FeeRate
	if feeRate <= 0 {
		feeRate = p.feeRate
	}

	content := InscriptionContent{Data: req.Data, ContentType: req.ContentType, Metadata: req.Metadata}

	leaf, err := BuildTapLeafScript(p.internalKeyXOnly, content)
	if err != nil {
		return nil, err
	}
	leafHash := TapLeafHash(leaf)

	outputKey, parity, err := TweakedOutputKey(p.internalKeyXOnly, leafHash)
	if err != nil {
		return nil, err
	}
	commitScript := P2TRScriptPubKey(outputKey)

	revealVBytes, err := EstimateVBytes(0, 1, &content, p.internalKeyXOnly)
	if err != nil {
		return nil, err
	}
	revealFee := EstimateFee(revealVBytes, feeRate)
	commitAmount := RevealDustValue + revealFee

	available, err := p.utxos.ListUTXOs(ctx)
	if err != nil {
		return nil, err
	}

	selection, err := SelectUTXOs(SelectionRequest{
		UTXOs:           available,
		RecipientAmount: commitAmount,
		FeeRate:         feeRate,
		OutputCount:     1,
	})
	if err != nil {
		return nil, err
	}

	commitTx, err := BuildCommitTransaction(CommitParams{
		FundingInputs:  selection.Inputs,
		CommitAmount:   commitAmount,
		OutputKeyXOnly: outputKey,
		ChangeAmount:   selection.ChangeAmount,
		ChangeScript:   p.changeScript,
	})
	if err != nil {
		return nil, err
	}

	commitTxID, err := p.broadcast.Broadcast(ctx, commitTx.Hex())
	if err != nil {
		return nil, err
	}

	revealTx, err := BuildRevealTransaction(RevealParams{
		CommitTxID:       commitTxID,
		CommitVout:       0,
		CommitAmount:     commitAmount,
		InternalKeyXOnly: p.internalKeyXOnly,
		OutputParity:     parity,
		Content:          content,
		RecipientScript:  commitScript,
	})
	if err != nil {
		return nil, err
	}

	sighash := RevealSighash(revealTx, commitAmount, commitScript, leaf)
	sig, err := p.signer.SignTapscript(ctx, sighash, p.internalKeyXOnly)
	if err != nil {
		return nil, err
	}
	revealTx.Inputs[0].Witness = append([][]byte{sig}, revealTx.Inputs[0].Witness...)

	revealTxID, err := p.broadcast.Broadcast(ctx, revealTx.Hex())
	if err != nil {
		return nil, err
	}

	satoshi := selection.Inputs[0].Satoshis // first satoshi of the funding input carries through commit into reveal's output
	inscriptionID := revealTxID + "i0"

	inscription := &adapters.Inscription{
		InscriptionID: inscriptionID,
		CommitTxID:    commitTxID,
		RevealTxID:    revealTxID,
		Satoshi:       satoshi,
		TxID:          revealTxID,
		Vout:          0,
		ContentType:   req.ContentType,
		Content:       req.Data,
		Metadata:      req.Metadata,
	}

	p.mu.Lock()
	p.bySatoshi[satoshi] = inscription
	p.byID[inscriptionID] = inscription
	p.mu.Unlock()

	return inscription, nil
}

// Reinscribe builds a fresh commit+reveal pair for new content (e.g. a
// did:btco deactivation marker) while keeping the tracked satoshi
// identifier unchanged: the prior inscription's reveal UTXO is folded
// into the new commit's funding inputs so the same satoshi carries
// forward, the self-custodial analogue of an ord reinscription.
func (p *LocalOrdinalsProvider) Reinscribe(ctx context.Context, satoshi uint64, req adapters.CreateInscriptionRequest) (*adapters.Inscription, error) {
	p.mu.RLock()
	prev, ok := p.bySatoshi[satoshi]
	p.mu.RUnlock()
	if !ok {
		return nil, errors.NewResourceNotFoundError("no inscription found for satoshi %d to reinscribe", satoshi)
	}

	feeRate := req.FeeRate
	if feeRate <= 0 {
		feeRate = p.feeRate
	}

	content := InscriptionContent{Data: req.Data, ContentType: req.ContentType, Metadata: req.Metadata}

	leaf, err := BuildTapLeafScript(p.internalKeyXOnly, content)
	if err != nil {
		return nil, err
	}
	leafHash := TapLeafHash(leaf)

	outputKey, parity, err := TweakedOutputKey(p.internalKeyXOnly, leafHash)
	if err != nil {
		return nil, err
	}
	commitScript := P2TRScriptPubKey(outputKey)

	revealVBytes, err := EstimateVBytes(0, 1, &content, p.internalKeyXOnly)
	if err != nil {
		return nil, err
	}
	revealFee := EstimateFee(revealVBytes, feeRate)
	commitAmount := RevealDustValue + revealFee

	forced := UTXO{TxID: prev.TxID, Vout: prev.Vout, Satoshis: satoshi}

	available, err := p.utxos.ListUTXOs(ctx)
	if err != nil {
		return nil, err
	}

	selection, err := SelectUTXOs(SelectionRequest{
		UTXOs:           append([]UTXO{forced}, available...),
		RecipientAmount: commitAmount,
		FeeRate:         feeRate,
		OutputCount:     1,
	})
	if err != nil {
		return nil, err
	}

	commitTx, err := BuildCommitTransaction(CommitParams{
		FundingInputs:  selection.Inputs,
		CommitAmount:   commitAmount,
		OutputKeyXOnly: outputKey,
		ChangeAmount:   selection.ChangeAmount,
		ChangeScript:   p.changeScript,
	})
	if err != nil {
		return nil, err
	}

	commitTxID, err := p.broadcast.Broadcast(ctx, commitTx.Hex())
	if err != nil {
		return nil, err
	}

	revealTx, err := BuildRevealTransaction(RevealParams{
		CommitTxID:       commitTxID,
		CommitVout:       0,
		CommitAmount:     commitAmount,
		InternalKeyXOnly: p.internalKeyXOnly,
		OutputParity:     parity,
		Content:          content,
		RecipientScript:  commitScript,
	})
	if err != nil {
		return nil, err
	}

	sighash := RevealSighash(revealTx, commitAmount, commitScript, leaf)
	sig, err := p.signer.SignTapscript(ctx, sighash, p.internalKeyXOnly)
	if err != nil {
		return nil, err
	}
	revealTx.Inputs[0].Witness = append([][]byte{sig}, revealTx.Inputs[0].Witness...)

	revealTxID, err := p.broadcast.Broadcast(ctx, revealTx.Hex())
	if err != nil {
		return nil, err
	}

	inscriptionID := revealTxID + "i0"

	inscription := &adapters.Inscription{
		InscriptionID: inscriptionID,
		CommitTxID:    commitTxID,
		RevealTxID:    revealTxID,
		Satoshi:       satoshi,
		TxID:          revealTxID,
		Vout:          0,
		ContentType:   req.ContentType,
		Content:       req.Data,
		Metadata:      req.Metadata,
	}

	p.mu.Lock()
	p.bySatoshi[satoshi] = inscription
	p.byID[inscriptionID] = inscription
	p.mu.Unlock()

	return inscription, nil
}

func (p *LocalOrdinalsProvider) GetInscriptionByID(_ context.Context, id string) (*adapters.Inscription, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ins, ok := p.byID[id]
	if !ok {
		return nil, errors.NewResourceNotFoundError("unknown inscription id %q", id)
	}
	return ins, nil
}

func (p *LocalOrdinalsProvider) GetInscriptionsBySatoshi(_ context.Context, satoshi uint64) ([]*adapters.Inscription, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if ins, ok := p.bySatoshi[satoshi]; ok {
		return []*adapters.Inscription{ins}, nil
	}
	return nil, nil
}

func (p *LocalOrdinalsProvider) TransferInscription(ctx context.Context, id, toAddress string, feeRate float64) (*adapters.TransferResult, error) {
	p.mu.RLock()
	ins, ok := p.byID[id]
	p.mu.RUnlock()
	if !ok {
		return nil, errors.NewResourceNotFoundError("unknown inscription id %q", id)
	}

	_, outputKey, err := DecodeTaprootAddress(toAddress)
	if err != nil {
		return nil, err
	}

	tx, err := BuildTransferTransaction(TransferParams{
		InscriptionUTXO: UTXO{TxID: ins.TxID, Vout: ins.Vout, Satoshis: RevealDustValue},
		RecipientScript: P2TRScriptPubKey(outputKey),
		FeeSats:         EstimateFee(58+31+11, feeRate),
	})
	if err != nil {
		return nil, err
	}

	sighash := RevealSighash(tx, RevealDustValue, P2TRScriptPubKey(outputKey), nil)
	sig, err := p.signer.SignTapscript(ctx, sighash, p.internalKeyXOnly)
	if err != nil {
		return nil, err
	}
	tx.Inputs[0].Witness = [][]byte{sig}

	txid, err := p.broadcast.Broadcast(ctx, tx.Hex())
	if err != nil {
		return nil, err
	}

	return &adapters.TransferResult{TxID: txid, Vin: 0, Vout: 0, Satoshi: ins.Satoshi}, nil
}

func (p *LocalOrdinalsProvider) BroadcastTransaction(ctx context.Context, rawTxHex string) (string, error) {
	return p.broadcast.Broadcast(ctx, rawTxHex)
}

func (p *LocalOrdinalsProvider) GetTransactionStatus(_ context.Context, _ string) (*adapters.TransactionStatus, error) {
	return &adapters.TransactionStatus{Confirmed: false}, nil
}

func (p *LocalOrdinalsProvider) EstimateFee(_ context.Context, _ int) (float64, error) {
	return p.feeRate, nil
}
