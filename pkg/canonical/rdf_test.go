package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRDFDatasetCanonicalizeIsDeterministic(t *testing.T) {
	doc := map[string]interface{}{
		"@context": map[string]interface{}{
			"name": "http://schema.org/name",
		},
		"@id":  "https://example.com/subject",
		"name": "Alice",
	}

	first, err := RDFDatasetCanonicalize(doc, nil)
	require.NoError(t, err)

	second, err := RDFDatasetCanonicalize(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Alice")
}

func TestStaticDocumentLoaderServesCachedContext(t *testing.T) {
	ctxDoc := map[string]interface{}{
		"@context": map[string]interface{}{"name": "http://schema.org/name"},
	}

	loader := NewStaticDocumentLoader(map[string]interface{}{
		"https://example.com/context.jsonld": ctxDoc,
	})

	remote, err := loader.LoadDocument("https://example.com/context.jsonld")
	require.NoError(t, err)
	assert.Equal(t, ctxDoc, remote.Document)

	_, err = loader.LoadDocument("https://example.com/missing.jsonld")
	require.Error(t, err)
}
