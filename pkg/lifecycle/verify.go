package lifecycle

import (
	"context"

	"github.com/originals-sdk/sdk/pkg/asset"
)

// Verify checks every credential attached to an asset against its DID
// bindings, using the Lifecycle Manager's configured DID Resolver.
func (m *Manager) Verify(ctx context.Context, a *asset.OriginalsAsset) asset.VerifyResult {
	result := a.Verify(ctx, m.resolver)

	prometheusCredentialVerifications.Inc()
	if !result.Valid {
		prometheusCredentialVerifyFailed.Inc()
	}

	return result
}
