package crypto

import (
	stdecdsa "crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/supranational/blst"

	"github.com/originals-sdk/sdk/errors"
)

// Signer signs a digest and reports the key type it signs for, so the
// credential manager can select a matching cryptosuite.
type Signer interface {
	KeyType() KeyType
	PublicKey() []byte
	Sign(digest []byte) ([]byte, error)
}

// Verifier verifies a signature over a digest produced by the matching
// Signer implementation.
type Verifier interface {
	Verify(publicKey, digest, signature []byte) (bool, error)
}

// GenerateKeyPair creates a fresh Signer/Verifier pair for keyType, used by
// did:peer creation and test fixtures.
func GenerateKeyPair(keyType KeyType) (Signer, error) {
	switch keyType {
	case Ed25519:
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.NewCryptoError("ed25519 keygen failed: %v", err)
		}
		return &ed25519Signer{pub: pub, priv: priv}, nil

	case Secp256k1:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, errors.NewCryptoError("secp256k1 keygen failed: %v", err)
		}
		return &secp256k1Signer{priv: priv}, nil

	case P256:
		priv, err := stdecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, errors.NewCryptoError("p256 keygen failed: %v", err)
		}
		return &p256Signer{priv: priv}, nil

	case BLS12381G2:
		return generateBLSKeyPair()

	default:
		return nil, errors.NewCryptoError("unsupported key type %q", keyType)
	}
}

// --- Ed25519 ---

type ed25519Signer struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func (s *ed25519Signer) KeyType() KeyType   { return Ed25519 }
func (s *ed25519Signer) PublicKey() []byte  { return []byte(s.pub) }
func (s *ed25519Signer) Sign(digest []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, digest), nil
}

// VerifyEd25519 verifies an eddsa-* cryptosuite signature.
func VerifyEd25519(publicKey, digest, signature []byte) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, errors.NewCryptoError("ed25519 public key length mismatch: got %d", len(publicKey))
	}
	return ed25519.Verify(publicKey, digest, signature), nil
}

// --- Secp256k1 / ES256K ---

type secp256k1Signer struct {
	priv *secp256k1.PrivateKey
}

func (s *secp256k1Signer) KeyType() KeyType { return Secp256k1 }
func (s *secp256k1Signer) PublicKey() []byte {
	return s.priv.PubKey().SerializeCompressed()
}

func (s *secp256k1Signer) Sign(digest []byte) ([]byte, error) {
	sig := dcecdsa.Sign(s.priv, digest)
	return sig.Serialize(), nil
}

// VerifySecp256k1 verifies an ecdsa-* cryptosuite signature produced over
// digest with a DER-encoded ECDSA signature.
func VerifySecp256k1(publicKey, digest, signature []byte) (bool, error) {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false, errors.NewCryptoError("secp256k1 public key parse failed: %v", err)
	}

	sig, err := dcecdsa.ParseDERSignature(signature)
	if err != nil {
		return false, errors.NewCryptoError("secp256k1 signature parse failed: %v", err)
	}

	return sig.Verify(digest, pub), nil
}

// --- P-256 / ES256 ---

type p256Signer struct {
	priv *stdecdsa.PrivateKey
}

func (s *p256Signer) KeyType() KeyType { return P256 }

func (s *p256Signer) PublicKey() []byte {
	return elliptic.MarshalCompressed(elliptic.P256(), s.priv.X, s.priv.Y)
}

func (s *p256Signer) Sign(digest []byte) ([]byte, error) {
	r, sVal, err := stdecdsa.Sign(rand.Reader, s.priv, digest)
	if err != nil {
		return nil, errors.NewCryptoError("p256 sign failed: %v", err)
	}

	return append(padTo32(r), padTo32(sVal)...), nil
}

// VerifyP256 verifies an ES256 (IEEE P1363, r||s) signature over digest.
func VerifyP256(publicKey, digest, signature []byte) (bool, error) {
	if len(signature) != 64 {
		return false, errors.NewCryptoError("p256 signature length mismatch: got %d", len(signature))
	}

	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), publicKey)
	if x == nil {
		return false, errors.NewCryptoError("p256 public key decode failed")
	}

	pub := &stdecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:])

	return stdecdsa.Verify(pub, digest, r, s), nil
}

func padTo32(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// --- BLS12-381-G2 (selective-disclosure scaffold) ---
//
// This signer is a placeholder: it produces and verifies plain BLS
// signatures over the raw digest using blst, which is sufficient to
// exercise the credential-chain and multikey plumbing in this SDK but is
// NOT a vetted BBS+ selective-disclosure suite. Replace with a proper
// BBS+ implementation (e.g. one satisfying the bbs-2023 cryptosuite)
// before using selective disclosure in production, per spec §9.
type blsSigner struct {
	secretKey *blst.SecretKey
	publicKey *blst.P2Affine
}

var blsDST = []byte("ORIGINALS-SDK-BLS12381G2-SIG-SCAFFOLD")

func generateBLSKeyPair() (Signer, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, errors.NewCryptoError("bls ikm generation failed: %v", err)
	}

	sk := blst.KeyGen(ikm[:])
	pub := new(blst.P2Affine).From(sk)

	return &blsSigner{secretKey: sk, publicKey: pub}, nil
}

func (s *blsSigner) KeyType() KeyType  { return BLS12381G2 }
func (s *blsSigner) PublicKey() []byte { return s.publicKey.Compress() }

func (s *blsSigner) Sign(digest []byte) ([]byte, error) {
	sig := new(blst.P1Affine).Sign(s.secretKey, digest, blsDST)
	return sig.Compress(), nil
}

// VerifyBLS verifies the scaffold BLS signature described above.
func VerifyBLS(publicKey, digest, signature []byte) (bool, error) {
	pub := new(blst.P2Affine).Uncompress(publicKey)
	if pub == nil {
		return false, errors.NewCryptoError("bls public key decode failed")
	}

	sig := new(blst.P1Affine).Uncompress(signature)
	if sig == nil {
		return false, errors.NewCryptoError("bls signature decode failed")
	}

	return sig.Verify(true, pub, false, digest, blsDST), nil
}
