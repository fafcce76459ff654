// Package asset implements OriginalsAsset, the runtime entity holding an
// asset's resources, DID bindings, credentials and provenance across its
// peer → webvh → btco lifecycle.
package asset

import (
	"context"
	"strings"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/credential"
	"github.com/originals-sdk/sdk/pkg/did"
	"github.com/originals-sdk/sdk/pkg/kind"
)

// Layer identifies the asset's current identity layer.
type Layer string

const (
	LayerPeer  Layer = "peer"
	LayerWebVH Layer = "webvh"
	LayerBTCO  Layer = "btco"
)

// AssetResource is the subset of a resource carried with an asset.
type AssetResource struct {
	ID          string
	Type        string
	ContentType string
	Hash        string
	Size        *int
	URL         *string
}

// Bindings records each layer's historical identifier. Bindings are
// append-only: once set for a layer, it must never be overwritten.
type Bindings struct {
	PeerDID  *string
	WebVHDID *string
	BTCODID  *string
}

// OriginalsAsset is the runtime asset entity described in spec §3/§4.7.
// Its public surface is read-only; mutation is routed exclusively through
// the Mutator handle returned by New, held by the Lifecycle
// Manager — the dependency-inversion resolution for the asset↔lifecycle
// cyclic reference.
type OriginalsAsset struct {
	id           string
	currentLayer Layer
	resources    []AssetResource
	bindings     Bindings
	credentials  []*credential.VerifiableCredential
	provenance   Chain
	manifest     *kind.Manifest
	bus          *Bus
}

// New constructs a freshly created OriginalsAsset (always on the peer
// layer — createDraft's shortcut) and the Mutator handle used to route
// all subsequent mutations, emitting asset:created.
func New(peerDID string, resources []AssetResource, creator string, createdAt time.Time) (*OriginalsAsset, *Mutator) {
	a := &OriginalsAsset{
		id:           peerDID,
		currentLayer: LayerPeer,
		resources:    append([]AssetResource{}, resources...),
		bindings:     Bindings{PeerDID: &peerDID},
		bus:          NewBus(),
		provenance: Chain{
			Creation: CreationRecord{Creator: creator, Timestamp: createdAt},
		},
	}

	a.bus.Emit(Event{Type: EventAssetCreated, AssetID: a.id, Data: a.provenance.Creation})

	return a, &Mutator{asset: a}
}

// ID returns the asset's current DID.
func (a *OriginalsAsset) ID() string { return a.id }

// CurrentLayer returns the asset's current identity layer.
func (a *OriginalsAsset) CurrentLayer() Layer { return a.currentLayer }

// Resources returns a copy of the asset's resource list.
func (a *OriginalsAsset) Resources() []AssetResource {
	return append([]AssetResource{}, a.resources...)
}

// Bindings returns the asset's layer bindings.
func (a *OriginalsAsset) Bindings() Bindings { return a.bindings }

// Credentials returns the asset's attached credentials.
func (a *OriginalsAsset) Credentials() []*credential.VerifiableCredential {
	return append([]*credential.VerifiableCredential{}, a.credentials...)
}

// Provenance returns the full provenance chain.
func (a *OriginalsAsset) Provenance() Chain { return a.provenance }

// ProvenanceSummary returns the compact provenance summary.
func (a *OriginalsAsset) ProvenanceSummary() Summary {
	return a.provenance.Summarize(a.currentLayer)
}

// Manifest returns the typed manifest attached at creation, if any.
func (a *OriginalsAsset) Manifest() *kind.Manifest { return a.manifest }

// On subscribes to a typed asset event.
func (a *OriginalsAsset) On(t EventType, sub Subscriber) { a.bus.On(t, sub) }

// VerifyResult is the outcome of Verify.
type VerifyResult struct {
	Valid  bool
	Errors []string
}

// Verify checks every attached credential against the DID bindings: each
// credential's verification method must resolve (via resolver) to a key
// belonging to the asset's current (or a prior) DID, and its signature
// must validate.
func (a *OriginalsAsset) Verify(ctx context.Context, resolver *did.Resolver) VerifyResult {
	result := VerifyResult{Valid: true}

	for _, vc := range a.credentials {
		ok, err := credential.VerifyCredential(ctx, vc, credential.VerifyOptions{Resolver: resolver})
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, "credential "+vc.Proof.VerificationMethod+" failed signature verification")
			continue
		}
		signerDID, _, _ := strings.Cut(vc.Proof.VerificationMethod, "#")
		b := a.bindings
		bound := (b.PeerDID != nil && *b.PeerDID == signerDID) ||
			(b.WebVHDID != nil && *b.WebVHDID == signerDID) ||
			(b.BTCODID != nil && *b.BTCODID == signerDID)
		if !bound {
			result.Valid = false
			result.Errors = append(result.Errors, "credential "+vc.Proof.VerificationMethod+" is not signed by one of the asset's DIDs")
		}
	}

	return result
}

// Mutator is the private handle through which the Lifecycle Manager
// routes all mutations to an OriginalsAsset; no other caller is expected
// to hold one. It is returned only by New alongside the
// asset it mutates.
type Mutator struct {
	asset *OriginalsAsset
}

// SetBinding records a layer's identifier. Returns a ConflictError if the
// layer's binding is already set (bindings are append-only).
func (m *Mutator) SetBinding(layer Layer, value string) error {
	b := &m.asset.bindings
	switch layer {
	case LayerPeer:
		if b.PeerDID != nil {
			return errors.NewConflictError("peer binding is already set to %q", *b.PeerDID)
		}
		b.PeerDID = &value
	case LayerWebVH:
		if b.WebVHDID != nil {
			return errors.NewConflictError("webvh binding is already set to %q", *b.WebVHDID)
		}
		b.WebVHDID = &value
	case LayerBTCO:
		if b.BTCODID != nil {
			return errors.NewConflictError("btco binding is already set to %q", *b.BTCODID)
		}
		b.BTCODID = &value
	default:
		return errors.NewValidationError("unknown layer %q", layer)
	}
	return nil
}

// SetCurrentLayer advances the asset's current layer and current id.
func (m *Mutator) SetCurrentLayer(layer Layer, id string) {
	m.asset.currentLayer = layer
	m.asset.id = id
}

// SetManifest attaches a typed manifest at creation time.
func (m *Mutator) SetManifest(manifest *kind.Manifest) {
	m.asset.manifest = manifest
}

// AppendCredential attaches a signed credential and emits
// credential:issued.
func (m *Mutator) AppendCredential(vc *credential.VerifiableCredential) {
	m.asset.credentials = append(m.asset.credentials, vc)
	m.asset.bus.Emit(Event{Type: EventCredentialIssued, AssetID: m.asset.id, Data: vc})
}

// RecordMigration appends a migration record and emits asset:migrated.
func (m *Mutator) RecordMigration(rec MigrationRecord) {
	m.asset.provenance.Migrations = append(m.asset.provenance.Migrations, rec)
	m.asset.bus.Emit(Event{Type: EventAssetMigrated, AssetID: m.asset.id, Data: rec})
}

// RecordTransfer appends a transfer record and emits asset:transferred.
func (m *Mutator) RecordTransfer(rec TransferRecord) {
	m.asset.provenance.Transfers = append(m.asset.provenance.Transfers, rec)
	m.asset.bus.Emit(Event{Type: EventAssetTransferred, AssetID: m.asset.id, Data: rec})
}

// RecordDeactivation stamps the asset's provenance with its deactivation
// marker and emits asset:deactivated. It does not guard against a second
// call: each call replaces the stored record and emits the event again.
func (m *Mutator) RecordDeactivation(rec DeactivationRecord) {
	m.asset.provenance.Deactivation = &rec
	m.asset.bus.Emit(Event{Type: EventAssetDeactivated, AssetID: m.asset.id, Data: rec})
}

// RecordResourceUpdate appends a resource-update record and updates the
// stored AssetResource's hash, emitting resource:updated.
func (m *Mutator) RecordResourceUpdate(rec ResourceUpdateRecord, updated AssetResource) error {
	found := false
	for i, r := range m.asset.resources {
		if r.ID == updated.ID {
			m.asset.resources[i] = updated
			found = true
			break
		}
	}
	if !found {
		return errors.NewResourceNotFoundError("asset has no resource %q", updated.ID)
	}

	m.asset.provenance.ResourceUpdates = append(m.asset.provenance.ResourceUpdates, rec)
	m.asset.bus.Emit(Event{Type: EventResourceUpdated, AssetID: m.asset.id, Data: rec})
	return nil
}

// Asset returns the underlying asset this Mutator is bound to.
func (m *Mutator) Asset() *OriginalsAsset { return m.asset }
