// Package sdk wires the Resource Manager, Kind Registry, DID Resolver,
// Bitcoin Manager, and Lifecycle Manager together into one facade, per
// spec §2's dependency order and §8's top-level OriginalsSDK entry point.
package sdk

import (
	"context"

	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/bitcoin"
	"github.com/originals-sdk/sdk/pkg/crypto"
	"github.com/originals-sdk/sdk/pkg/did"
	"github.com/originals-sdk/sdk/pkg/kind"
	"github.com/originals-sdk/sdk/pkg/lifecycle"
	"github.com/originals-sdk/sdk/pkg/resource"
	"github.com/originals-sdk/sdk/settings"
	"github.com/originals-sdk/sdk/ulogger"
)

// Dependencies are the pluggable external collaborators an SDK instance
// needs. Fields left nil fall back to the in-memory/mock adapters from
// pkg/adapters, which is sufficient for local development and tests but
// not for production use against a real indexer and storage backend.
type Dependencies struct {
	Ordinals  adapters.OrdinalsProvider
	FeeOracle adapters.FeeOracle
	Storage   adapters.StorageAdapter
	Logger    ulogger.Logger
}

// SDK is the top-level facade. It owns no state of its own beyond the
// managers it wires; callers reach every operation through the Resources,
// Lifecycle, and Resolver fields directly, or through the convenience
// methods below.
type SDK struct {
	Settings  *settings.Settings
	Resources *resource.Manager
	Bitcoin   *bitcoin.Manager
	Resolver  *did.Resolver
	Lifecycle *lifecycle.Manager
	Logger    ulogger.Logger
}

// New constructs an SDK from settings and its external dependencies. A
// nil settings argument falls back to settings.Default(). Unset
// dependency fields fall back to in-memory adapters seeded from a fresh
// mock ordinals provider, matching spec §6's "works out of the box
// against a local/mock backend" expectation.
func New(s *settings.Settings, deps Dependencies) (*SDK, error) {
	if s == nil {
		s = settings.Default()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = ulogger.New("originals-sdk", s.Logging.Level, false)
	}

	ordinals := deps.Ordinals
	feeOracle := deps.FeeOracle
	if ordinals == nil {
		mock := adapters.NewMockOrdinalsProvider(1_000_000, 5.0)
		ordinals = mock
	}
	if feeOracle == nil {
		feeOracle = &adapters.MockFeeOracle{SatPerVByte: 5.0}
	}
	storage := deps.Storage
	if storage == nil {
		storage = adapters.NewInMemoryStorageAdapter(s.WebVHNetwork, "assets")
	}

	resources := resource.NewManager()
	bc := bitcoin.NewManager(ordinals, feeOracle, s.Network)
	resolver := did.NewResolver(ordinals, &did.HTTPLogFetcher{Logger: logger})
	lc := lifecycle.New(s, resources, bc, storage, resolver, logger)

	return &SDK{
		Settings:  s,
		Resources: resources,
		Bitcoin:   bc,
		Resolver:  resolver,
		Lifecycle: lc,
		Logger:    logger,
	}, nil
}

// AddResource stores content in the Resource Manager, ready to be passed
// into CreateDraft/CreateTypedOriginal.
func (s *SDK) AddResource(content []byte, opts resource.CreateOptions) (*resource.Resource, error) {
	return s.Resources.Create(content, opts)
}

// CreateAsset creates a did:peer asset from already-stored resources.
func (s *SDK) CreateAsset(resources []*resource.Resource, opts lifecycle.CreateDraftOptions) (*asset.OriginalsAsset, error) {
	return s.Lifecycle.CreateDraft(resources, opts)
}

// CreateTypedAsset validates manifest against the Kind Registry before
// creating a did:peer asset carrying it.
func (s *SDK) CreateTypedAsset(manifest *kind.Manifest, resources []*resource.Resource, opts lifecycle.CreateTypedOriginalOptions) (*asset.OriginalsAsset, error) {
	return s.Lifecycle.CreateTypedOriginal(manifest, resources, opts)
}

// Publish migrates a did:peer asset to did:webvh.
func (s *SDK) Publish(ctx context.Context, a *asset.OriginalsAsset, opts lifecycle.PublishOptions) (*asset.OriginalsAsset, error) {
	return s.Lifecycle.Publish(ctx, a, opts)
}

// Inscribe migrates an asset to did:btco via an on-chain inscription.
func (s *SDK) Inscribe(ctx context.Context, a *asset.OriginalsAsset, opts lifecycle.InscribeOptions) (*asset.OriginalsAsset, error) {
	return s.Lifecycle.Inscribe(ctx, a, opts)
}

// Transfer moves ownership of an inscribed asset to a new address.
func (s *SDK) Transfer(ctx context.Context, a *asset.OriginalsAsset, recipientAddress string, opts lifecycle.TransferOptions) (*lifecycle.TransferResult, error) {
	return s.Lifecycle.Transfer(ctx, a, recipientAddress, opts)
}

// Deactivate inscribes a deactivation marker on an inscribed asset's
// satoshi, after which it accepts no further updates or migrations.
func (s *SDK) Deactivate(ctx context.Context, a *asset.OriginalsAsset, opts lifecycle.DeactivateOptions) (*asset.OriginalsAsset, error) {
	return s.Lifecycle.Deactivate(ctx, a, opts)
}

// CreateAssetBatch creates draft assets for a batch of resource groups
// with bounded concurrency, per spec §4.6's batch operations.
func (s *SDK) CreateAssetBatch(ctx context.Context, items []lifecycle.CreateBatchItem, concurrency int) lifecycle.BatchResult[*asset.OriginalsAsset] {
	return s.Lifecycle.CreateBatch(ctx, items, concurrency)
}

// PublishBatch publishes a batch of assets to did:webvh with bounded
// concurrency.
func (s *SDK) PublishBatch(ctx context.Context, items []lifecycle.PublishBatchItem, concurrency int) lifecycle.BatchResult[*asset.OriginalsAsset] {
	return s.Lifecycle.PublishBatch(ctx, items, concurrency)
}

// InscribeBatch inscribes a batch of assets to did:btco with bounded
// concurrency.
func (s *SDK) InscribeBatch(ctx context.Context, items []lifecycle.InscribeBatchItem, concurrency int) lifecycle.BatchResult[*asset.OriginalsAsset] {
	return s.Lifecycle.InscribeBatch(ctx, items, concurrency)
}

// TransferBatch transfers ownership of a batch of inscribed assets with
// bounded concurrency.
func (s *SDK) TransferBatch(ctx context.Context, items []lifecycle.TransferBatchItem, concurrency int) lifecycle.BatchResult[*lifecycle.TransferResult] {
	return s.Lifecycle.TransferBatch(ctx, items, concurrency)
}

// Verify checks every credential attached to an asset.
func (s *SDK) Verify(ctx context.Context, a *asset.OriginalsAsset) asset.VerifyResult {
	return s.Lifecycle.Verify(ctx, a)
}

// Resolve resolves any supported DID method to its document.
func (s *SDK) Resolve(ctx context.Context, id string) (*did.Document, error) {
	return s.Resolver.ResolveDID(ctx, id)
}

// DefaultKeyType maps the configured default key type string into the
// crypto package's typed form.
func (s *SDK) DefaultKeyType() (crypto.KeyType, error) {
	return did.MapSettingsKeyType(s.Settings.DefaultKeyType)
}
