// Package crypto provides the SDK's cryptographic substrate: content
// hashing, multikey/multicodec/multibase encoding, and per-key-type
// signer/verifier implementations for Ed25519, Secp256k1 (ES256K), P-256
// (ES256) and BLS12-381-G2.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the hex-encoded SHA-256 digest of data. Equivalent
// string and []byte inputs must hash identically, so callers should always
// convert to []byte before calling this (HashString does that for them).
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString is a convenience wrapper that hashes the UTF-8 bytes of s.
func HashString(s string) string {
	return HashContent([]byte(s))
}

// Sum256 returns the raw SHA-256 digest of data, used where callers need
// bytes rather than the hex encoding (e.g. credential proof digests).
func Sum256(data []byte) [32]byte {
	return sha256.Sum256(data)
}
