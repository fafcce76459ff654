package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519SignVerifyRoundTrip(t *testing.T) {
	signer, err := GenerateKeyPair(Ed25519)
	require.NoError(t, err)

	digest := Sum256([]byte("hello originals"))
	sig, err := signer.Sign(digest[:])
	require.NoError(t, err)

	ok, err := VerifyEd25519(signer.PublicKey(), digest[:], sig)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := append([]byte{}, digest[:]...)
	tampered[0] ^= 0xff
	ok, err = VerifyEd25519(signer.PublicKey(), tampered, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSecp256k1SignVerifyRoundTrip(t *testing.T) {
	signer, err := GenerateKeyPair(Secp256k1)
	require.NoError(t, err)

	digest := Sum256([]byte("inscribe me"))
	sig, err := signer.Sign(digest[:])
	require.NoError(t, err)

	ok, err := VerifySecp256k1(signer.PublicKey(), digest[:], sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySecp256k1(signer.PublicKey(), digest[:], sig[:len(sig)-1])
	require.Error(t, err)
	assert.False(t, ok)
}

func TestP256SignVerifyRoundTrip(t *testing.T) {
	signer, err := GenerateKeyPair(P256)
	require.NoError(t, err)

	digest := Sum256([]byte("webvh log entry"))
	sig, err := signer.Sign(digest[:])
	require.NoError(t, err)
	require.Len(t, sig, 64)

	ok, err := VerifyP256(signer.PublicKey(), digest[:], sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBLSSignVerifyRoundTrip(t *testing.T) {
	signer, err := GenerateKeyPair(BLS12381G2)
	require.NoError(t, err)

	digest := Sum256([]byte("selective disclosure scaffold"))
	sig, err := signer.Sign(digest[:])
	require.NoError(t, err)

	ok, err := VerifyBLS(signer.PublicKey(), digest[:], sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyBLS(signer.PublicKey(), []byte("different digest of 32 bytes!!!"), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateKeyPairUnsupportedType(t *testing.T) {
	_, err := GenerateKeyPair(KeyType("bogus"))
	require.Error(t, err)
}

func TestKeyTypeEncodesThroughMultikey(t *testing.T) {
	for _, kt := range []KeyType{Ed25519, Secp256k1, P256, BLS12381G2} {
		signer, err := GenerateKeyPair(kt)
		require.NoError(t, err)

		encoded, err := EncodeMultikey(kt, signer.PublicKey(), false)
		require.NoError(t, err, kt)

		gotType, gotKey, err := DecodeMultikey(encoded)
		require.NoError(t, err, kt)
		assert.Equal(t, kt, gotType)
		assert.Equal(t, signer.PublicKey(), gotKey)
	}
}
