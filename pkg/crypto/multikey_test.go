package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMultikeyRoundTrip(t *testing.T) {
	cases := []struct {
		keyType KeyType
		private bool
		length  int
	}{
		{Ed25519, false, 32},
		{Secp256k1, false, 33},
		{P256, false, 33},
		{BLS12381G2, false, 96},
	}

	for _, c := range cases {
		key := make([]byte, c.length)
		for i := range key {
			key[i] = byte(i)
		}

		encoded, err := EncodeMultikey(c.keyType, key, c.private)
		require.NoError(t, err, c.keyType)

		gotType, gotKey, err := DecodeMultikey(encoded)
		require.NoError(t, err, c.keyType)
		assert.Equal(t, c.keyType, gotType)
		assert.Equal(t, key, gotKey)
	}
}

func TestEncodeMultikeyRejectsWrongLength(t *testing.T) {
	_, err := EncodeMultikey(Ed25519, make([]byte, 16), false)
	require.Error(t, err)
}

func TestEncodeMultikeyUnsupportedKeyType(t *testing.T) {
	_, err := EncodeMultikey(KeyType("bogus"), make([]byte, 32), false)
	require.Error(t, err)
}

func TestDecodeMultikeyRejectsGarbage(t *testing.T) {
	_, _, err := DecodeMultikey("not-a-multibase-string")
	require.Error(t, err)
}

func TestDecodeMultikeyRejectsTruncatedKey(t *testing.T) {
	encoded, err := EncodeMultikey(Ed25519, make([]byte, 32), false)
	require.NoError(t, err)

	_, _, err = DecodeMultikey(encoded[:len(encoded)-10])
	require.Error(t, err)
}
