package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/crypto"
)

func TestToJWSRoundTripsWithFromJWS(t *testing.T) {
	signer, err := crypto.GenerateKeyPair(crypto.Ed25519)
	require.NoError(t, err)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "res-1"}, "did:peer:issuer")

	compact, err := ToJWS(vc, signer)
	require.NoError(t, err)
	assert.NotEmpty(t, compact)

	roundTripped, err := FromJWS(compact, signer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, vc.Issuer, roundTripped.Issuer)
	assert.Equal(t, vc.CredentialSubject["id"], roundTripped.CredentialSubject["id"])
}

func TestFromJWSRejectsTamperedSignature(t *testing.T) {
	signer, err := crypto.GenerateKeyPair(crypto.Ed25519)
	require.NoError(t, err)
	other, err := crypto.GenerateKeyPair(crypto.Ed25519)
	require.NoError(t, err)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "res-1"}, "did:peer:issuer")
	compact, err := ToJWS(vc, signer)
	require.NoError(t, err)

	_, err = FromJWS(compact, other.PublicKey())
	assert.Error(t, err)
}

func TestToJWSRejectsNonEd25519Signer(t *testing.T) {
	signer, err := crypto.GenerateKeyPair(crypto.Secp256k1)
	require.NoError(t, err)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "res-1"}, "did:peer:issuer")
	_, err = ToJWS(vc, signer)
	assert.Error(t, err)
}
