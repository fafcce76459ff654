package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcsuite/btcd/btcec/v2"
)

func testInternalKey(t *testing.T) []byte {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey().SerializeCompressed()
	return pub[1:] // drop the parity prefix byte to get the x-only key
}

func TestTweakedOutputKeyIsDeterministic(t *testing.T) {
	internal := testInternalKey(t)
	leafHash := TapLeafHash([]byte("leaf script"))

	key1, parity1, err := TweakedOutputKey(internal, leafHash)
	require.NoError(t, err)
	key2, parity2, err := TweakedOutputKey(internal, leafHash)
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Equal(t, parity1, parity2)
	assert.Len(t, key1, 32)
}

func TestTweakedOutputKeyVariesWithLeaf(t *testing.T) {
	internal := testInternalKey(t)

	keyA, _, err := TweakedOutputKey(internal, TapLeafHash([]byte("a")))
	require.NoError(t, err)
	keyB, _, err := TweakedOutputKey(internal, TapLeafHash([]byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, keyA, keyB)
}

func TestTweakedOutputKeyRejectsBadInternalKeyLength(t *testing.T) {
	_, _, err := TweakedOutputKey([]byte{0x01}, TapLeafHash([]byte("x")))
	require.Error(t, err)
}

func TestControlBlockEncodesParityAndInternalKey(t *testing.T) {
	internal := testInternalKey(t)
	cb := ControlBlock(internal, 1)

	assert.Equal(t, byte(0xc0|1), cb[0])
	assert.Equal(t, internal, cb[1:])
	assert.Len(t, cb, 33)
}

func TestP2TRScriptPubKeyShape(t *testing.T) {
	key := testInternalKey(t)
	script := P2TRScriptPubKey(key)

	assert.Len(t, script, 34)
	assert.Equal(t, byte(0x51), script[0])
	assert.Equal(t, byte(0x20), script[1])
}
