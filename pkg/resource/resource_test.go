package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/crypto"
)

func TestCreateUpdateVerifyChain(t *testing.T) {
	m := NewManager()

	r1, err := m.Create([]byte("Hello, World!"), CreateOptions{
		ID: "hello.txt", Type: TypeText, ContentType: "text/plain",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Version)
	assert.Empty(t, r1.PreviousVersionHash)
	assert.Equal(t, crypto.HashContent([]byte("Hello, World!")), r1.Hash)

	r2, err := m.Update("hello.txt", []byte("Hello, World!!"), CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Version)
	assert.Equal(t, r1.Hash, r2.PreviousVersionHash)

	chain := m.VerifyChain("hello.txt")
	assert.True(t, chain.Valid)
	assert.Empty(t, chain.Errors)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	m := NewManager()

	_, err := m.Create([]byte("x"), CreateOptions{ContentType: "text/plain"})
	require.Error(t, err)

	_, err = m.Create([]byte("x"), CreateOptions{Type: TypeText})
	require.Error(t, err)

	_, err = m.Create([]byte("x"), CreateOptions{Type: TypeText, ContentType: "badformat"})
	require.Error(t, err)
}

func TestCreateRejectsOversizedContent(t *testing.T) {
	m := NewManager()

	content := make([]byte, 100)
	_, err := m.Create(content, CreateOptions{
		Type: TypeData, ContentType: "application/octet-stream", MaxContentSize: 100,
	})
	require.NoError(t, err)

	oversized := make([]byte, 101)
	_, err = m.Create(oversized, CreateOptions{
		ID: "other", Type: TypeData, ContentType: "application/octet-stream", MaxContentSize: 100,
	})
	require.Error(t, err)
}

func TestUpdateRejectsNoopAndUnknown(t *testing.T) {
	m := NewManager()
	_, err := m.Create([]byte("v1"), CreateOptions{ID: "r", Type: TypeText, ContentType: "text/plain"})
	require.NoError(t, err)

	_, err = m.Update("r", []byte("v1"), CreateOptions{})
	require.Error(t, err)

	_, err = m.Update("missing", []byte("v1"), CreateOptions{})
	require.Error(t, err)
}

func TestHistoryVersionAtCurrentByHash(t *testing.T) {
	m := NewManager()
	r1, err := m.Create([]byte("a"), CreateOptions{ID: "r", Type: TypeText, ContentType: "text/plain"})
	require.NoError(t, err)
	r2, err := m.Update("r", []byte("b"), CreateOptions{})
	require.NoError(t, err)

	assert.Len(t, m.History("r"), 2)
	assert.Equal(t, r1, m.VersionAt("r", 1))
	assert.Equal(t, r2, m.Current("r"))
	assert.Equal(t, r2, m.ByHash(r2.Hash))
}

func TestVerifyChainDetectsBrokenLink(t *testing.T) {
	m := NewManager()
	_, err := m.Create([]byte("a"), CreateOptions{ID: "r", Type: TypeText, ContentType: "text/plain"})
	require.NoError(t, err)
	_, err = m.Update("r", []byte("b"), CreateOptions{})
	require.NoError(t, err)

	m.histories["r"][1].PreviousVersionHash = "tampered"

	chain := m.VerifyChain("r")
	assert.False(t, chain.Valid)
	assert.NotEmpty(t, chain.Errors)
}

func TestDeleteRemovesResource(t *testing.T) {
	m := NewManager()
	_, err := m.Create([]byte("a"), CreateOptions{ID: "r", Type: TypeText, ContentType: "text/plain"})
	require.NoError(t, err)

	assert.True(t, m.Delete("r"))
	assert.False(t, m.Delete("r"))
	assert.Nil(t, m.Current("r"))
}

func TestImportExportRoundTrip(t *testing.T) {
	src := NewManager()
	r1, err := src.Create([]byte("a"), CreateOptions{ID: "r", Type: TypeText, ContentType: "text/plain"})
	require.NoError(t, err)

	dst := NewManager()
	imported, err := dst.Import(r1)
	require.NoError(t, err)
	assert.Equal(t, r1, imported)

	// Re-importing an identical version is a no-op, not a duplicate.
	_, err = dst.Import(r1)
	require.NoError(t, err)
	assert.Len(t, dst.Export(), 1)
}

func TestImportRejectsConflictingHash(t *testing.T) {
	m := NewManager()
	r1, err := m.Create([]byte("a"), CreateOptions{ID: "r", Type: TypeText, ContentType: "text/plain"})
	require.NoError(t, err)

	conflicting := *r1
	conflicting.Hash = "different"
	_, err = m.Import(&conflicting)
	require.Error(t, err)
}
