package crypto

import (
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	varint "github.com/multiformats/go-varint"

	"github.com/originals-sdk/sdk/errors"
)

// KeyType identifies a supported verification-method key algorithm.
type KeyType string

const (
	Ed25519    KeyType = "Ed25519"
	Secp256k1  KeyType = "Secp256k1"
	P256       KeyType = "P256"
	BLS12381G2 KeyType = "Bls12381G2"
)

// publicKeyLength and privateKeyLength give the fixed encoded byte length
// for a key type in each role, per the VerificationMethod invariants in
// spec §3.
var publicKeyLength = map[KeyType]int{
	Ed25519:    32,
	Secp256k1:  33,
	P256:       33,
	BLS12381G2: 96,
}

var privateKeyLength = map[KeyType]int{
	Ed25519:    32,
	Secp256k1:  32,
	P256:       32,
	BLS12381G2: 32,
}

var publicMulticodec = map[KeyType]multicodec.Code{
	Ed25519:    multicodec.Ed25519Pub,
	Secp256k1:  multicodec.Secp256k1Pub,
	P256:       multicodec.P256Pub,
	BLS12381G2: multicodec.Bls12381G2Pub,
}

var privateMulticodec = map[KeyType]multicodec.Code{
	Ed25519:    multicodec.Ed25519Priv,
	Secp256k1:  multicodec.Secp256k1Priv,
	P256:       multicodec.P256Priv,
	BLS12381G2: multicodec.Bls12381G2Priv,
}

var codecToKeyType = func() map[multicodec.Code]KeyType {
	m := make(map[multicodec.Code]KeyType, len(publicMulticodec))
	for kt, code := range publicMulticodec {
		m[code] = kt
	}
	return m
}()

// EncodeMultikey prepends the multicodec header for keyType to key and
// encodes the result as a base58btc multibase string (the "multikey"
// format used for verificationMethod.publicKeyMultibase).
func EncodeMultikey(keyType KeyType, key []byte, private bool) (string, error) {
	table := publicMulticodec
	expected := publicKeyLength
	if private {
		table = privateMulticodec
		expected = privateKeyLength
	}

	code, ok := table[keyType]
	if !ok {
		return "", errors.NewCryptoError("unsupported key type %q", keyType)
	}

	if n, ok := expected[keyType]; ok && len(key) != n {
		return "", errors.NewCryptoError("key length mismatch for %q: expected %d bytes, got %d", keyType, n, len(key))
	}

	header := varint.ToUvarint(uint64(code))
	buf := append(append([]byte{}, header...), key...)

	encoded, err := multibase.Encode(multibase.Base58BTC, buf)
	if err != nil {
		return "", errors.NewCryptoError("multibase encode failed: %v", err)
	}

	return encoded, nil
}

// DecodeMultikey reverses EncodeMultikey, validating that the multicodec
// header matches one of the known public key codecs and that the decoded
// key has the fixed length for its key type.
func DecodeMultikey(encoded string) (KeyType, []byte, error) {
	_, data, err := multibase.Decode(encoded)
	if err != nil {
		return "", nil, errors.NewCryptoError("multibase decode failed: %v", err)
	}

	code, n, err := varint.FromUvarint(data)
	if err != nil {
		return "", nil, errors.NewCryptoError("multicodec header decode failed: %v", err)
	}

	keyType, ok := codecToKeyType[multicodec.Code(code)]
	if !ok {
		return "", nil, errors.NewCryptoError("unrecognized multicodec header 0x%x", code)
	}

	key := data[n:]
	if expected, ok := publicKeyLength[keyType]; ok && len(key) != expected {
		return "", nil, errors.NewCryptoError("key length mismatch for %q: expected %d bytes, got %d", keyType, expected, len(key))
	}

	return keyType, key, nil
}

// MulticodecHeaderLen returns the byte length of the varint multicodec
// header for code, used by callers that need to split header from payload
// without a full multicodec table lookup.
func MulticodecHeaderLen(code multicodec.Code) int {
	return len(varint.ToUvarint(uint64(code)))
}
