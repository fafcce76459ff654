package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/lifecycle"
	"github.com/originals-sdk/sdk/pkg/resource"
	"github.com/originals-sdk/sdk/settings"
)

func newTestSDK(t *testing.T) *SDK {
	t.Helper()
	s := settings.Default()
	s.Network = settings.NetworkRegtest
	out, err := New(s, Dependencies{})
	require.NoError(t, err)
	return out
}

func TestNewFallsBackToMockAdapters(t *testing.T) {
	out := newTestSDK(t)
	assert.NotNil(t, out.Bitcoin)
	assert.NotNil(t, out.Resolver)
	assert.NotNil(t, out.Lifecycle)
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := settings.Default()
	s.Network = "fictional"
	_, err := New(s, Dependencies{})
	assert.Error(t, err)
}

func TestEndToEndLifecycleThroughFacade(t *testing.T) {
	out := newTestSDK(t)

	r, err := out.AddResource([]byte(`{"greeting":"hello"}`), resource.CreateOptions{Type: resource.TypeData, ContentType: "application/json"})
	require.NoError(t, err)

	a, err := out.CreateAsset([]*resource.Resource{r}, lifecycle.CreateDraftOptions{Creator: "alice"})
	require.NoError(t, err)
	assert.Equal(t, asset.LayerPeer, a.CurrentLayer())

	a, err = out.Publish(context.Background(), a, lifecycle.PublishOptions{Domain: "example.com", Slug: "asset-01"})
	require.NoError(t, err)
	assert.Equal(t, asset.LayerWebVH, a.CurrentLayer())

	a, err = out.Inscribe(context.Background(), a, lifecycle.InscribeOptions{FeeRate: 10})
	require.NoError(t, err)
	assert.Equal(t, asset.LayerBTCO, a.CurrentLayer())

	result := out.Verify(context.Background(), a)
	assert.True(t, result.Valid, "%v", result.Errors)
}
