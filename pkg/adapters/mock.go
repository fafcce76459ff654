package adapters

import (
	"context"
	"fmt"
	"sync"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/crypto"
)

// MockOrdinalsProvider is an in-memory Ordinals Provider for tests and
// regtest-style local development, deterministically minting satoshi
// numbers from a counter rather than consulting a real indexer.
type MockOrdinalsProvider struct {
	mu            sync.Mutex
	nextSatoshi   uint64
	inscriptions  map[string]*Inscription
	bySatoshi     map[uint64][]*Inscription
	fixedFeeRate  float64
}

// NewMockOrdinalsProvider constructs a mock provider seeded at a given
// starting satoshi number (so test output is stable) and a fixed fee rate.
func NewMockOrdinalsProvider(startingSatoshi uint64, fixedFeeRate float64) *MockOrdinalsProvider {
	return &MockOrdinalsProvider{
		nextSatoshi:  startingSatoshi,
		inscriptions: make(map[string]*Inscription),
		bySatoshi:    make(map[uint64][]*Inscription),
		fixedFeeRate: fixedFeeRate,
	}
}

func (m *MockOrdinalsProvider) CreateInscription(ctx context.Context, req CreateInscriptionRequest) (*Inscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sat := m.nextSatoshi
	m.nextSatoshi++

	txid := crypto.HashString(fmt.Sprintf("reveal-%d-%d", sat, len(req.Data)))
	id := fmt.Sprintf("%si0", txid)

	inscription := &Inscription{
		InscriptionID: id,
		CommitTxID:    crypto.HashString(fmt.Sprintf("commit-%d", sat)),
		RevealTxID:    txid,
		Satoshi:       sat,
		TxID:          txid,
		Vout:          0,
		ContentType:   req.ContentType,
		Content:       req.Data,
		Metadata:      req.Metadata,
	}

	m.inscriptions[id] = inscription
	m.bySatoshi[sat] = append(m.bySatoshi[sat], inscription)

	return inscription, nil
}

func (m *MockOrdinalsProvider) GetInscriptionByID(ctx context.Context, id string) (*Inscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, ok := m.inscriptions[id]
	if !ok {
		return nil, errors.NewResourceNotFoundError("inscription %q not found", id)
	}
	return ins, nil
}

// Reinscribe appends a new inscription record to satoshi without
// consuming a new satoshi number, modeling an ordinal reinscription.
func (m *MockOrdinalsProvider) Reinscribe(ctx context.Context, satoshi uint64, req CreateInscriptionRequest) (*Inscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.bySatoshi[satoshi]) == 0 {
		return nil, errors.NewResourceNotFoundError("no inscription found for satoshi %d to reinscribe", satoshi)
	}

	seq := len(m.bySatoshi[satoshi])
	txid := crypto.HashString(fmt.Sprintf("reveal-%d-%d-%d", satoshi, seq, len(req.Data)))
	id := fmt.Sprintf("%si0", txid)

	inscription := &Inscription{
		InscriptionID: id,
		CommitTxID:    crypto.HashString(fmt.Sprintf("commit-%d-%d", satoshi, seq)),
		RevealTxID:    txid,
		Satoshi:       satoshi,
		TxID:          txid,
		Vout:          0,
		ContentType:   req.ContentType,
		Content:       req.Data,
		Metadata:      req.Metadata,
	}

	m.inscriptions[id] = inscription
	m.bySatoshi[satoshi] = append(m.bySatoshi[satoshi], inscription)

	return inscription, nil
}

func (m *MockOrdinalsProvider) GetInscriptionsBySatoshi(ctx context.Context, satoshi uint64) ([]*Inscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*Inscription{}, m.bySatoshi[satoshi]...), nil
}

func (m *MockOrdinalsProvider) TransferInscription(ctx context.Context, id, toAddress string, feeRate float64) (*TransferResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, ok := m.inscriptions[id]
	if !ok {
		return nil, errors.NewResourceNotFoundError("inscription %q not found", id)
	}

	txid := crypto.HashString(fmt.Sprintf("transfer-%s-%s", id, toAddress))
	return &TransferResult{
		TxID:    txid,
		Vout:    0,
		FeeSats: int64(feeRate * 150),
		Satoshi: ins.Satoshi,
	}, nil
}

func (m *MockOrdinalsProvider) BroadcastTransaction(ctx context.Context, rawTxHex string) (string, error) {
	return crypto.HashString(rawTxHex), nil
}

func (m *MockOrdinalsProvider) GetTransactionStatus(ctx context.Context, txid string) (*TransactionStatus, error) {
	height := uint64(1)
	return &TransactionStatus{Confirmed: true, BlockHeight: &height, Confirmations: 6}, nil
}

func (m *MockOrdinalsProvider) EstimateFee(ctx context.Context, blocksAhead int) (float64, error) {
	return m.fixedFeeRate, nil
}

// MockFeeOracle returns a fixed fee rate regardless of target, per spec
// §6 ("a mock returns fixed values for tests").
type MockFeeOracle struct {
	SatPerVByte float64
}

func (f *MockFeeOracle) EstimateFee(ctx context.Context, targetBlocks int) (float64, error) {
	return f.SatPerVByte, nil
}

// InMemoryStorageAdapter publishes resource bytes into a process-local
// map rather than a real HTTPS host, returning deterministic
// well-known-path URLs.
type InMemoryStorageAdapter struct {
	mu      sync.RWMutex
	domain  string
	slug    string
	objects map[string][]byte
}

// NewInMemoryStorageAdapter constructs an adapter that publishes under
// https://<domain>/.well-known/webvh/<slug>/resources/<hash>.
func NewInMemoryStorageAdapter(domain, slug string) *InMemoryStorageAdapter {
	return &InMemoryStorageAdapter{domain: domain, slug: slug, objects: make(map[string][]byte)}
}

func (s *InMemoryStorageAdapter) Put(ctx context.Context, contentHash string, data []byte, contentType string, metadata map[string]string) (*StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[contentHash] = data
	return &StoredObject{URL: s.URLFor(contentHash)}, nil
}

func (s *InMemoryStorageAdapter) Get(ctx context.Context, contentHash string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[contentHash]
	if !ok {
		return nil, errors.NewResourceNotFoundError("no stored object for hash %q", contentHash)
	}
	return data, nil
}

func (s *InMemoryStorageAdapter) URLFor(contentHash string) string {
	return fmt.Sprintf("https://%s/.well-known/webvh/%s/resources/%s", s.domain, s.slug, contentHash)
}
