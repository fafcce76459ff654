package credential

import (
	"crypto/ed25519"
	"encoding/json"

	gojose "github.com/go-jose/go-jose/v4"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/crypto"
)

// opaqueSigner adapts this module's crypto.Signer to go-jose's
// OpaqueSigner interface, so a JWT-VC can be produced with the same key
// custody as a Data-Integrity proof, without go-jose ever touching a raw
// private key.
type opaqueSigner struct {
	signer crypto.Signer
}

func (o *opaqueSigner) Public() *gojose.JSONWebKey {
	return &gojose.JSONWebKey{
		Key:       ed25519.PublicKey(o.signer.PublicKey()),
		Algorithm: string(gojose.EdDSA),
		Use:       "sig",
	}
}

func (o *opaqueSigner) Algs() []gojose.SignatureAlgorithm {
	return []gojose.SignatureAlgorithm{gojose.EdDSA}
}

func (o *opaqueSigner) SignPayload(payload []byte, alg gojose.SignatureAlgorithm) ([]byte, error) {
	return o.signer.Sign(payload)
}

// ToJWS produces a compact JWS serialization of vc, an alternative
// transport representation alongside the Data-Integrity proof, per
// SPEC_FULL.md's JOSE/JWT credential representation. Only Ed25519-keyed
// issuers are supported: EdDSA is the one JOSE signature algorithm whose
// raw-bytes-in/raw-bytes-out shape matches this SDK's Signer abstraction
// without exposing private key material to go-jose.
func ToJWS(vc *VerifiableCredential, signer crypto.Signer) (string, error) {
	if signer.KeyType() != crypto.Ed25519 {
		return "", errors.NewValidationError("JWT-VC export supports Ed25519 issuers only, got %q", signer.KeyType())
	}

	unsigned := *vc
	unsigned.Proof = nil
	payload, err := json.Marshal(unsigned)
	if err != nil {
		return "", errors.NewCryptoError("jwt-vc payload marshal failed: %v", err)
	}

	jwsSigner, err := gojose.NewSigner(gojose.SigningKey{Algorithm: gojose.EdDSA, Key: &opaqueSigner{signer: signer}}, nil)
	if err != nil {
		return "", errors.NewCryptoError("jwt-vc signer construction failed: %v", err)
	}

	signed, err := jwsSigner.Sign(payload)
	if err != nil {
		return "", errors.NewCryptoError("jwt-vc signing failed: %v", err)
	}

	compact, err := signed.CompactSerialize()
	if err != nil {
		return "", errors.NewCryptoError("jwt-vc compact serialization failed: %v", err)
	}
	return compact, nil
}

// FromJWS verifies a compact JWS produced by ToJWS against issuerPublicKey
// and returns the embedded credential.
func FromJWS(compact string, issuerPublicKey []byte) (*VerifiableCredential, error) {
	parsed, err := gojose.ParseSigned(compact, []gojose.SignatureAlgorithm{gojose.EdDSA})
	if err != nil {
		return nil, errors.NewCryptoError("jwt-vc parse failed: %v", err)
	}

	payload, err := parsed.Verify(ed25519.PublicKey(issuerPublicKey))
	if err != nil {
		return nil, errors.NewCryptoError("jwt-vc signature verification failed: %v", err)
	}

	var vc VerifiableCredential
	if err := json.Unmarshal(payload, &vc); err != nil {
		return nil, errors.NewCryptoError("jwt-vc payload unmarshal failed: %v", err)
	}
	return &vc, nil
}
