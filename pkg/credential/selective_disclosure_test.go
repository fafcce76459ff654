package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/crypto"
)

func TestPrepareAndDeriveDisclosure(t *testing.T) {
	signer, vmID := newSigner(t, crypto.BLS12381G2)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{
		"id":   "did:peer:0subject",
		"name": "Alice",
		"age":  "30",
	}, "did:peer:0issuer")

	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)
	assert.Equal(t, "bbs-2023", signed.Proof.Cryptosuite)

	prepared, err := PrepareSelectiveDisclosure(signed, []string{"/name", "/age"})
	require.NoError(t, err)

	derived, err := DeriveDisclosure(prepared, DisclosureRequest{RevealedPaths: []string{"/name"}})
	require.NoError(t, err)
	assert.Equal(t, "Alice", derived.CredentialSubject["name"])
	assert.NotContains(t, derived.CredentialSubject, "age")
}

func TestDeriveDisclosureRejectsUnauthorizedPath(t *testing.T) {
	signer, vmID := newSigner(t, crypto.BLS12381G2)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{
		"id": "did:peer:0subject", "name": "Alice",
	}, "did:peer:0issuer")
	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)

	prepared, err := PrepareSelectiveDisclosure(signed, []string{"/name"})
	require.NoError(t, err)

	_, err = DeriveDisclosure(prepared, DisclosureRequest{RevealedPaths: []string{"/ssn"}})
	require.Error(t, err)
}

func TestPrepareSelectiveDisclosureRequiresBBSCredential(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)
	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "did:peer:0a"}, "did:peer:0issuer")
	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)

	_, err = PrepareSelectiveDisclosure(signed, []string{"/name"})
	require.Error(t, err)
}

func TestGetFieldByPointer(t *testing.T) {
	subject := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "a"},
			map[string]interface{}{"id": "b"},
		},
	}

	v, err := GetFieldByPointer(subject, "/items/1/id")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = GetFieldByPointer(subject, "/items/9/id")
	require.Error(t, err)
}
