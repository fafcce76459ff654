package lifecycle

import (
	"context"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/credential"
	"github.com/originals-sdk/sdk/pkg/did"
)

// PublishOptions configures Publish.
type PublishOptions struct {
	Domain     string
	Path       string
	Slug       string
	OnProgress OnProgress
}

// Publish uploads resource bytes to the Storage Adapter under the target
// domain, mints a did:webvh identifier, records the webvh binding, and
// issues a MigrationCompleted credential plus, for each hosted resource,
// a ResourceMigrated credential. Requires the asset's current layer to be
// peer.
func (m *Manager) Publish(ctx context.Context, a *asset.OriginalsAsset, opts PublishOptions) (*asset.OriginalsAsset, error) {
	rec, err := m.requireActive(a)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	report(opts.OnProgress, PhaseValidating, 0, "validating migration", nil)

	if a.CurrentLayer() != asset.LayerPeer {
		err := errors.NewStateError("publish requires the current layer to be peer, got %s", a.CurrentLayer())
		report(opts.OnProgress, PhaseFailed, 0, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseUploading, 20, "uploading resources", nil)

	hostedCount := 0
	for _, r := range a.Resources() {
		content, ok := m.contentFor(r)
		if !ok {
			continue
		}
		if _, err := m.storage.Put(ctx, r.Hash, content, r.ContentType, nil); err != nil {
			report(opts.OnProgress, PhaseFailed, 20, err.Error(), nil)
			return nil, err
		}
		hostedCount++
	}

	keyType, err := did.MapSettingsKeyType(m.settings.DefaultKeyType)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 20, err.Error(), nil)
		return nil, err
	}

	result, err := did.CreateWebVH(keyType, did.CreateWebVHOptions{Domain: opts.Domain, Path: opts.Path, Slug: opts.Slug})
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 20, err.Error(), nil)
		return nil, err
	}

	if err := rec.mutator.SetBinding(asset.LayerWebVH, result.DID); err != nil {
		report(opts.OnProgress, PhaseFailed, 20, err.Error(), nil)
		return nil, err
	}

	report(opts.OnProgress, PhaseIssuing, 70, "issuing migration credential", nil)

	subject := map[string]interface{}{
		"id":           result.DID,
		"targetDid":    result.DID,
		"fromLayer":    string(asset.LayerPeer),
		"toLayer":      string(asset.LayerWebVH),
		"hostedCount":  hostedCount,
	}

	vc, err := credential.IssueMigrationCredential(subject, a.ID(), rec.latestVC, rec.signer, rec.vmID)
	if err != nil {
		report(opts.OnProgress, PhaseFailed, 70, err.Error(), nil)
		return nil, err
	}
	rec.mutator.AppendCredential(vc)
	rec.latestVC = vc

	for _, r := range a.Resources() {
		if _, ok := m.contentFor(r); !ok {
			continue
		}
		resourceSubject := map[string]interface{}{
			"id":        r.ID,
			"targetUrl": m.storage.URLFor(r.Hash),
		}
		rvc, err := credential.IssueResourceMigrationCredential(resourceSubject, a.ID(), rec.latestVC, rec.signer, rec.vmID)
		if err != nil {
			report(opts.OnProgress, PhaseFailed, 70, err.Error(), nil)
			return nil, err
		}
		rec.mutator.AppendCredential(rvc)
		rec.latestVC = rvc
	}

	rec.mutator.SetCurrentLayer(asset.LayerWebVH, result.DID)
	rec.signer = result.KeyPair.Signer
	rec.vmID = result.KeyPair.VerificationMethodID
	rec.doc = result.Document

	rec.mutator.RecordMigration(asset.MigrationRecord{
		FromLayer: asset.LayerPeer,
		ToLayer:   asset.LayerWebVH,
		Timestamp: time.Now(),
	})
	rec.history = append(rec.history, MigrationEvent{FromLayer: asset.LayerPeer, ToLayer: asset.LayerWebVH, Timestamp: time.Now()})

	m.register(rec, result.DID)

	prometheusMigrationsCompleted.Inc()
	report(opts.OnProgress, PhaseCompleted, 100, "published to webvh", map[string]interface{}{"did": result.DID})

	return a, nil
}

// contentFor looks up a resource's raw bytes from the Resource Manager by
// hash, returning ok=false if the resource store has no content for it
// (e.g. the resource was created with only a URL).
func (m *Manager) contentFor(r asset.AssetResource) ([]byte, bool) {
	full := m.resources.ByHash(r.Hash)
	if full == nil || full.Content == nil {
		return nil, false
	}
	return full.Content, true
}
