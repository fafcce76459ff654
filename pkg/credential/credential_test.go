package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/crypto"
)

func newSigner(t *testing.T, kt crypto.KeyType) (crypto.Signer, string) {
	signer, err := crypto.GenerateKeyPair(kt)
	require.NoError(t, err)

	multikey, err := crypto.EncodeMultikey(kt, signer.PublicKey(), false)
	require.NoError(t, err)

	return signer, "did:peer:0" + multikey + "#" + multikey
}

func TestSignAndVerifyCredentialEd25519(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{
		"id":   "did:peer:0abc",
		"hash": "deadbeef",
	}, "did:peer:0issuer")

	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)
	require.NotNil(t, signed.Proof)
	assert.Equal(t, "eddsa-jcs-2022", signed.Proof.Cryptosuite)

	ok, err := VerifyCredential(context.Background(), signed, VerifyOptions{PublicKeyMultibase: mustMultikey(t, signer)})
	require.NoError(t, err)
	assert.True(t, ok)
}

func mustMultikey(t *testing.T, signer crypto.Signer) string {
	mk, err := crypto.EncodeMultikey(signer.KeyType(), signer.PublicKey(), false)
	require.NoError(t, err)
	return mk
}

func TestVerifyCredentialFailsOnTamperedSubject(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)

	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "did:peer:0abc"}, "did:peer:0issuer")
	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)

	signed.CredentialSubject["id"] = "did:peer:0tampered"

	ok, err := VerifyCredential(context.Background(), signed, VerifyOptions{PublicKeyMultibase: mustMultikey(t, signer)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSecp256k1AndP256Cryptosuites(t *testing.T) {
	for kt, suite := range map[crypto.KeyType]string{
		crypto.Secp256k1: "ecdsa-jcs-2022",
		crypto.P256:      "ecdsa-jcs-2022",
	} {
		signer, vmID := newSigner(t, kt)
		vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "did:peer:0x"}, "did:peer:0issuer")

		signed, err := SignCredential(vc, signer, vmID)
		require.NoError(t, err, kt)
		assert.Equal(t, suite, signed.Proof.Cryptosuite, kt)

		ok, err := VerifyCredential(context.Background(), signed, VerifyOptions{PublicKeyMultibase: mustMultikey(t, signer)})
		require.NoError(t, err, kt)
		assert.True(t, ok, kt)
	}
}

func TestChainedCredentialsVerify(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)

	a, err := IssueResourceCredential(map[string]interface{}{"id": "did:peer:0a"}, "did:peer:0issuer", nil, signer, vmID)
	require.NoError(t, err)

	b, err := IssueResourceUpdateCredential(map[string]interface{}{"id": "did:peer:0b"}, "did:peer:0issuer", a, signer, vmID)
	require.NoError(t, err)

	c, err := IssueMigrationCredential(map[string]interface{}{"id": "did:peer:0c"}, "did:peer:0issuer", b, signer, vmID)
	require.NoError(t, err)

	chain := VerifyCredentialChain(context.Background(), []*VerifiableCredential{a, b, c}, VerifyOptions{PublicKeyMultibase: mustMultikey(t, signer)})
	assert.True(t, chain.Valid)
	assert.Equal(t, 3, chain.ChainLength)
}

func TestChainBreaksOnTamperedHash(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)

	a, err := IssueResourceCredential(map[string]interface{}{"id": "did:peer:0a"}, "did:peer:0issuer", nil, signer, vmID)
	require.NoError(t, err)
	b, err := IssueResourceUpdateCredential(map[string]interface{}{"id": "did:peer:0b"}, "did:peer:0issuer", a, signer, vmID)
	require.NoError(t, err)
	c, err := IssueMigrationCredential(map[string]interface{}{"id": "did:peer:0c"}, "did:peer:0issuer", b, signer, vmID)
	require.NoError(t, err)

	pc := c.CredentialSubject["previousCredential"].(PreviousCredential)
	aHash, err := ComputeCredentialHash(a)
	require.NoError(t, err)
	pc.Hash = aHash
	c.CredentialSubject["previousCredential"] = pc

	chain := VerifyCredentialChain(context.Background(), []*VerifiableCredential{a, b, c}, VerifyOptions{PublicKeyMultibase: mustMultikey(t, signer)})
	assert.False(t, chain.Valid)
	assert.NotEmpty(t, chain.Errors)
}

func TestComputeCredentialHashIsStable(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)
	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "did:peer:0a"}, "did:peer:0issuer")
	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)

	h1, err := ComputeCredentialHash(signed)
	require.NoError(t, err)
	h2, err := ComputeCredentialHash(signed)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestCreatePresentation(t *testing.T) {
	signer, vmID := newSigner(t, crypto.Ed25519)
	vc := CreateResourceCredential(ResourceCreated, map[string]interface{}{"id": "did:peer:0a"}, "did:peer:0issuer")
	signed, err := SignCredential(vc, signer, vmID)
	require.NoError(t, err)

	vp := CreatePresentation([]*VerifiableCredential{signed}, "did:peer:0holder")
	assert.Equal(t, "did:peer:0holder", vp.Holder)
	assert.Len(t, vp.VerifiableCredential, 1)
}
