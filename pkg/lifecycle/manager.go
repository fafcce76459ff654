// Package lifecycle implements the Lifecycle Manager: orchestration of an
// OriginalsAsset across its peer → webvh → btco identity layers, progress
// reporting, credential issuance, and provenance recording.
package lifecycle

import (
	"sync"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/bitcoin"
	"github.com/originals-sdk/sdk/pkg/credential"
	"github.com/originals-sdk/sdk/pkg/crypto"
	"github.com/originals-sdk/sdk/pkg/did"
	"github.com/originals-sdk/sdk/pkg/kind"
	"github.com/originals-sdk/sdk/pkg/resource"
	"github.com/originals-sdk/sdk/settings"
	"github.com/originals-sdk/sdk/ulogger"
)

// record is the Lifecycle Manager's private bookkeeping for one asset: the
// Mutator handle (never exposed outside this package), the signing key for
// the asset's current layer, and a per-asset lock serializing every
// lifecycle operation touching it, per spec §5.
type record struct {
	mu          sync.Mutex
	asset       *asset.OriginalsAsset
	mutator     *asset.Mutator
	signer      crypto.Signer
	vmID        string
	doc         *did.Document
	latestVC    *credential.VerifiableCredential
	history     []MigrationEvent
	deactivated bool
}

// MigrationEvent is one entry of a per-asset migration history, returned
// by GetMigrationHistory.
type MigrationEvent struct {
	FromLayer asset.Layer
	ToLayer   asset.Layer
	Timestamp time.Time
}

// Manager is the Lifecycle Manager. It owns no global state beyond the
// per-asset records it creates; every external dependency is injected.
type Manager struct {
	settings  *settings.Settings
	resources *resource.Manager
	bitcoin   *bitcoin.Manager
	storage   adapters.StorageAdapter
	resolver  *did.Resolver
	logger    ulogger.Logger

	mu      sync.RWMutex
	byID    map[string]*record
}

// New constructs a Lifecycle Manager. logger may be nil, in which case a
// discarding logger is used.
func New(s *settings.Settings, resources *resource.Manager, bc *bitcoin.Manager, storage adapters.StorageAdapter, resolver *did.Resolver, logger ulogger.Logger) *Manager {
	if logger == nil {
		logger = ulogger.Nop()
	}
	initPrometheusMetrics()
	return &Manager{
		settings:  s,
		resources: resources,
		bitcoin:   bc,
		storage:   storage,
		resolver:  resolver,
		logger:    logger,
		byID:      make(map[string]*record),
	}
}

func (m *Manager) index(ids ...string) *record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range ids {
		if id == "" {
			continue
		}
		if r, ok := m.byID[id]; ok {
			return r
		}
	}
	return nil
}

func (m *Manager) register(r *record, ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if id != "" {
			m.byID[id] = r
		}
	}
}

func (m *Manager) lookup(a *asset.OriginalsAsset) (*record, error) {
	peerID := ""
	if p := a.Bindings().PeerDID; p != nil {
		peerID = *p
	}

	r := m.index(a.ID(), peerID)
	if r == nil {
		return nil, errors.NewStateError("asset %q is not tracked by this lifecycle manager", a.ID())
	}
	return r, nil
}

// requireActive is like lookup but additionally refuses an asset whose
// current binding has been deactivated, per spec §3's did:btco
// deactivation boundary: a deactivated document rejects both further
// updates and further migrations.
func (m *Manager) requireActive(a *asset.OriginalsAsset) (*record, error) {
	rec, err := m.lookup(a)
	if err != nil {
		return nil, err
	}
	if rec.deactivated {
		return nil, errors.NewStateError("asset %q is deactivated and accepts no further updates or migrations", a.ID())
	}
	return rec, nil
}

// CreateDraftOptions configures CreateDraft.
type CreateDraftOptions struct {
	Creator    string
	KeyType    crypto.KeyType
	OnProgress OnProgress
}

// CreateDraft creates a did:peer asset from already-built resources, per
// spec §4.6's createDraft shortcut.
func (m *Manager) CreateDraft(resources []*resource.Resource, opts CreateDraftOptions) (*asset.OriginalsAsset, error) {
	report(opts.OnProgress, PhaseValidating, 0, "validating resources", nil)

	if len(resources) == 0 {
		err := errors.NewValidationError("createDraft requires at least one resource")
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	keyType := opts.KeyType
	if keyType == "" {
		kt, err := did.MapSettingsKeyType(m.settings.DefaultKeyType)
		if err != nil {
			report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
			return nil, err
		}
		keyType = kt
	}

	doc, kp, err := did.CreatePeerDID(keyType)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	assetResources := make([]asset.AssetResource, 0, len(resources))
	for _, r := range resources {
		ar := asset.AssetResource{ID: r.ID, Type: string(r.Type), ContentType: r.ContentType, Hash: r.Hash}
		if r.Size > 0 {
			size := int(r.Size)
			ar.Size = &size
		}
		if r.URL != "" {
			url := r.URL
			ar.URL = &url
		}
		assetResources = append(assetResources, ar)
	}

	creator := opts.Creator
	if creator == "" {
		creator = doc.ID
	}

	a, mut := asset.New(doc.ID, assetResources, creator, time.Now())

	rec := &record{asset: a, mutator: mut, signer: kp.Signer, vmID: kp.VerificationMethodID, doc: doc}
	m.register(rec, doc.ID)

	report(opts.OnProgress, PhaseCompleted, 100, "draft asset created", map[string]interface{}{"did": doc.ID})

	return a, nil
}

// CreateTypedOriginalOptions configures CreateTypedOriginal.
type CreateTypedOriginalOptions struct {
	Creator       string
	KeyType       crypto.KeyType
	StrictMode    bool
	SkipValidation bool
	OnProgress    OnProgress
}

// CreateTypedOriginal validates a manifest against the Kind Registry, then
// creates a draft asset carrying the manifest's resources plus the
// manifest itself, per spec §4.6.
func (m *Manager) CreateTypedOriginal(manifest *kind.Manifest, resources []*resource.Resource, opts CreateTypedOriginalOptions) (*asset.OriginalsAsset, error) {
	if !opts.SkipValidation {
		result := kind.Validate(manifest, kind.ValidateOptions{StrictMode: opts.StrictMode})
		if !result.Valid {
			return nil, errors.NewValidationError("manifest validation failed: %v", result.Errors)
		}
	}

	a, err := m.CreateDraft(resources, CreateDraftOptions{Creator: opts.Creator, KeyType: opts.KeyType, OnProgress: opts.OnProgress})
	if err != nil {
		return nil, err
	}

	rec, err := m.lookup(a)
	if err != nil {
		return nil, err
	}
	rec.mutator.SetManifest(manifest)

	return a, nil
}

// ValidationChecks is the set of boolean checks validateMigration reports.
type ValidationChecks struct {
	LayerTransitionAllowed bool
	HasRequiredCredentials bool
	ResourcesPresent       bool
	BindingsConsistent     bool
}

// MigrationValidation is returned by ValidateMigration.
type MigrationValidation struct {
	Valid        bool
	CurrentLayer asset.Layer
	TargetLayer  asset.Layer
	Checks       ValidationChecks
	Errors       []string
	Warnings     []string
}

var allowedTransitions = map[asset.Layer]map[asset.Layer]bool{
	asset.LayerPeer:  {asset.LayerWebVH: true, asset.LayerBTCO: true},
	asset.LayerWebVH: {asset.LayerBTCO: true},
}

// ValidateMigration is a pure function with no side effects, per spec
// §4.6.
func (m *Manager) ValidateMigration(a *asset.OriginalsAsset, target asset.Layer) MigrationValidation {
	result := MigrationValidation{CurrentLayer: a.CurrentLayer(), TargetLayer: target, Valid: true}

	allowed := allowedTransitions[a.CurrentLayer()][target]
	result.Checks.LayerTransitionAllowed = allowed
	if !allowed {
		result.Valid = false
		result.Errors = append(result.Errors, "layer transition "+string(a.CurrentLayer())+" -> "+string(target)+" is not permitted")
	}

	result.Checks.ResourcesPresent = len(a.Resources()) > 0
	if !result.Checks.ResourcesPresent {
		result.Valid = false
		result.Errors = append(result.Errors, "asset has no resources")
	}

	b := a.Bindings()
	bindingsConsistent := true
	switch a.CurrentLayer() {
	case asset.LayerPeer:
		bindingsConsistent = b.PeerDID != nil && *b.PeerDID == a.ID()
	case asset.LayerWebVH:
		bindingsConsistent = b.WebVHDID != nil && *b.WebVHDID == a.ID()
	case asset.LayerBTCO:
		bindingsConsistent = b.BTCODID != nil && *b.BTCODID == a.ID()
	}
	result.Checks.BindingsConsistent = bindingsConsistent
	if !bindingsConsistent {
		result.Valid = false
		result.Errors = append(result.Errors, "current binding does not match current id")
	}

	result.Checks.HasRequiredCredentials = true
	if len(a.Credentials()) == 0 && a.CurrentLayer() != asset.LayerPeer {
		result.Checks.HasRequiredCredentials = false
		result.Warnings = append(result.Warnings, "asset has migrated without attached credentials")
	}

	return result
}
