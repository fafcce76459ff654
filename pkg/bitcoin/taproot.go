package bitcoin

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/originals-sdk/sdk/errors"
)

// taggedHash implements BIP340's tagged hash: SHA256(SHA256(tag) ||
// SHA256(tag) || msg).
func taggedHash(tag string, msg []byte) []byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	return h.Sum(nil)
}

// TapLeafHash computes a BIP341 tapleaf hash for a version-0xc0 tapscript
// leaf.
func TapLeafHash(script []byte) []byte {
	const leafVersion = 0xc0
	buf := append([]byte{leafVersion}, encodeCompactSize(len(script))...)
	buf = append(buf, script...)
	return taggedHash("TapLeaf", buf)
}

func encodeCompactSize(n int) []byte {
	switch {
	case n < 0xfd:
		return []byte{byte(n)}
	case n <= 0xffff:
		return []byte{0xfd, byte(n), byte(n >> 8)}
	default:
		return []byte{0xfe, byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	}
}

// TweakedOutputKey computes the BIP341 Taproot output key for an internal
// key and a single tapscript leaf (no script-tree branching — one leaf is
// sufficient for an inscription commitment): Q = P + H(P||leafHash)*G, and
// the output's parity byte.
func TweakedOutputKey(internalKeyXOnly []byte, leafHash []byte) (outputKeyXOnly []byte, parity byte, err error) {
	if len(internalKeyXOnly) != 32 {
		return nil, 0, errors.NewValidationError("taproot internal key must be 32 bytes")
	}

	internalKey, err := schnorrParsePubKey(internalKeyXOnly)
	if err != nil {
		return nil, 0, errors.NewCryptoError("invalid taproot internal key: %v", err)
	}

	tweak := taggedHash("TapTweak", append(append([]byte{}, internalKeyXOnly...), leafHash...))

	var tweakScalar btcec.ModNScalar
	if overflow := tweakScalar.SetByteSlice(tweak); overflow {
		return nil, 0, errors.NewCryptoError("taproot tweak scalar overflow")
	}

	var internalJacobian, tweakJacobian, outputJacobian btcec.JacobianPoint
	internalKey.AsJacobian(&internalJacobian)
	btcec.ScalarBaseMultNonConst(&tweakScalar, &tweakJacobian)
	btcec.AddNonConst(&internalJacobian, &tweakJacobian, &outputJacobian)
	outputJacobian.ToAffine()

	outputParity := byte(0)
	if outputJacobian.Y.IsOdd() {
		outputParity = 1
	}

	xBytes := outputJacobian.X.Bytes()
	return xBytes[:], outputParity, nil
}

// schnorrParsePubKey parses a 32-byte x-only key as a btcec public key
// with an even-Y lift, matching BIP340's pubkey parsing rule.
func schnorrParsePubKey(xOnly []byte) (*btcec.PublicKey, error) {
	var buf [33]byte
	buf[0] = 0x02 // even-Y compressed prefix; BIP340 always lifts to even Y
	copy(buf[1:], xOnly)
	return btcec.ParsePubKey(buf[:])
}

// ControlBlock builds a BIP341 control block for a single-leaf script
// tree: leading byte (leaf version | output parity), followed by the
// internal key. With a single leaf there is no merkle proof path.
func ControlBlock(internalKeyXOnly []byte, outputParity byte) []byte {
	const leafVersion = 0xc0
	cb := make([]byte, 0, controlBlockSize(0))
	cb = append(cb, leafVersion|outputParity)
	cb = append(cb, internalKeyXOnly...)
	return cb
}

// P2TRScriptPubKey builds the scriptPubKey for a Taproot output:
// OP_1 <32-byte output key>.
func P2TRScriptPubKey(outputKeyXOnly []byte) []byte {
	script := make([]byte, 0, 34)
	script = append(script, 0x51) // OP_1 (witness version 1)
	script = append(script, 0x20) // 32-byte push
	script = append(script, outputKeyXOnly...)
	return script
}
