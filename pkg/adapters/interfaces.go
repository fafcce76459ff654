// Package adapters defines the pluggable external-collaborator interfaces
// this SDK depends on (ordinals provider, fee oracle, storage, external
// signer, DID-document loader) per spec §6, plus in-memory/mock
// implementations usable in tests and examples.
package adapters

import "context"

// Inscription describes an ordinal inscription as reported by an Ordinals
// Provider.
type Inscription struct {
	InscriptionID string
	CommitTxID    string
	RevealTxID    string
	Satoshi       uint64
	TxID          string
	Vout          uint32
	BlockHeight   *uint64
	ContentType   string
	Content       []byte
	Metadata      []byte
}

// CreateInscriptionRequest is the input to OrdinalsProvider.CreateInscription.
type CreateInscriptionRequest struct {
	Data        []byte
	ContentType string
	Metadata    []byte
	FeeRate     float64
}

// TransferResult is returned by OrdinalsProvider.TransferInscription.
type TransferResult struct {
	TxID          string
	Vin           uint32
	Vout          uint32
	FeeSats       int64
	BlockHeight   *uint64
	Confirmations int
	Satoshi       uint64
}

// TransactionStatus is returned by OrdinalsProvider.GetTransactionStatus.
type TransactionStatus struct {
	Confirmed     bool
	BlockHeight   *uint64
	Confirmations int
}

// OrdinalsProvider is the pluggable collaborator that knows how to create,
// look up, transfer, and broadcast Bitcoin ordinal inscriptions.
type OrdinalsProvider interface {
	CreateInscription(ctx context.Context, req CreateInscriptionRequest) (*Inscription, error)
	GetInscriptionByID(ctx context.Context, id string) (*Inscription, error)
	GetInscriptionsBySatoshi(ctx context.Context, satoshi uint64) ([]*Inscription, error)
	TransferInscription(ctx context.Context, id, toAddress string, feeRate float64) (*TransferResult, error)
	BroadcastTransaction(ctx context.Context, rawTxHex string) (string, error)
	GetTransactionStatus(ctx context.Context, txid string) (*TransactionStatus, error)
	EstimateFee(ctx context.Context, blocksAhead int) (float64, error)
	// Reinscribe appends a new inscription to an already-inscribed
	// satoshi (e.g. a did:btco deactivation marker), preserving the
	// satoshi number while recording new content as the latest
	// inscription at that location.
	Reinscribe(ctx context.Context, satoshi uint64, req CreateInscriptionRequest) (*Inscription, error)
}

// FeeOracle reports a fee rate (sat/vB) for a given confirmation target.
type FeeOracle interface {
	EstimateFee(ctx context.Context, targetBlocks int) (float64, error)
}

// StoredObject is returned from StorageAdapter.Put.
type StoredObject struct {
	URL string
}

// StorageAdapter publishes and retrieves content-addressed resource bytes,
// e.g. under https://<domain>/.well-known/webvh/<slug>/resources/<hash>.
type StorageAdapter interface {
	Put(ctx context.Context, contentHash string, data []byte, contentType string, metadata map[string]string) (*StoredObject, error)
	Get(ctx context.Context, contentHash string) ([]byte, error)
	URLFor(contentHash string) string
}

// SignRequest is the input to ExternalSigner.Sign.
type SignRequest struct {
	Document map[string]interface{}
	Proof    map[string]interface{}
}

// SignResult carries the produced proof value.
type SignResult struct {
	ProofValue string
}

// ExternalSigner lets a caller delegate Data-Integrity proof production to
// an HSM, MPC wallet, or hardware signer instead of a local private key.
type ExternalSigner interface {
	GetVerificationMethodID() string
	Sign(ctx context.Context, req SignRequest) (*SignResult, error)
}

// ResolvedVerificationMethod is returned by DIDDocumentLoader.Load.
type ResolvedVerificationMethod struct {
	PublicKeyMultibase string
}

// DIDDocumentLoader resolves a verification-method DID URL to its public
// key, used by credential verification when no DID Manager is wired in.
type DIDDocumentLoader interface {
	Load(ctx context.Context, verificationMethodID string) (*ResolvedVerificationMethod, error)
}
