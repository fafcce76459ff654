// Package credential implements the W3C Verifiable Credential layer:
// building, signing with Data-Integrity proofs, verifying, and chaining
// credentials that witness every asset state change.
package credential

import (
	"context"
	"fmt"
	"time"

	"github.com/multiformats/go-multibase"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/pkg/canonical"
	"github.com/originals-sdk/sdk/pkg/crypto"
	"github.com/originals-sdk/sdk/pkg/did"
)

// Subtype is the credential's specific VC type, alongside
// "VerifiableCredential".
type Subtype string

const (
	ResourceCreated    Subtype = "ResourceCreated"
	ResourceUpdated    Subtype = "ResourceUpdated"
	ResourceMigrated   Subtype = "ResourceMigrated"
	MigrationCompleted Subtype = "MigrationCompleted"
	OwnershipTransferred Subtype = "OwnershipTransferred"
	Deactivated        Subtype = "Deactivated"
)

// DefaultContext is the JSON-LD context every credential carries.
var DefaultContext = []interface{}{
	"https://www.w3.org/ns/credentials/v2",
	"https://originals-sdk.org/contexts/v1",
}

// PreviousCredential references the predecessor in a credential chain.
type PreviousCredential struct {
	ID   string `json:"id,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// Proof is a W3C Data-Integrity proof.
type Proof struct {
	Type               string `json:"type"`
	Cryptosuite        string `json:"cryptosuite"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue,omitempty"`
}

// VerifiableCredential is a W3C VC carrying a Data-Integrity proof.
type VerifiableCredential struct {
	Context           []interface{}          `json:"@context"`
	Type              []string               `json:"type"`
	Issuer            string                 `json:"issuer"`
	IssuanceDate      time.Time              `json:"issuanceDate"`
	ExpirationDate    *time.Time             `json:"expirationDate,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject"`
	Proof             *Proof                 `json:"proof,omitempty"`
}

// CreateResourceCredential is the generic unsigned-VC builder every typed
// issuer below uses.
func CreateResourceCredential(subtype Subtype, subject map[string]interface{}, issuer string) *VerifiableCredential {
	return &VerifiableCredential{
		Context:           append([]interface{}{}, DefaultContext...),
		Type:              []string{"VerifiableCredential", string(subtype)},
		Issuer:            issuer,
		IssuanceDate:      time.Now().UTC(),
		CredentialSubject: subject,
	}
}

// chain sets subject.previousCredential on an unsigned credential when a
// predecessor is supplied.
func chain(vc *VerifiableCredential, previous *VerifiableCredential) error {
	if previous == nil {
		return nil
	}
	hash, err := ComputeCredentialHash(previous)
	if err != nil {
		return err
	}
	previousID, _ := previous.CredentialSubject["id"].(string)
	vc.CredentialSubject["previousCredential"] = PreviousCredential{
		ID:   previousID,
		Hash: hash,
	}
	return nil
}

// IssueResourceCredential builds, chains, and signs a ResourceCreated VC.
func IssueResourceCredential(subject map[string]interface{}, issuer string, previous *VerifiableCredential, signer crypto.Signer, vmID string) (*VerifiableCredential, error) {
	vc := CreateResourceCredential(ResourceCreated, subject, issuer)
	if err := chain(vc, previous); err != nil {
		return nil, err
	}
	return SignCredential(vc, signer, vmID)
}

// IssueResourceUpdateCredential builds, chains, and signs a
// ResourceUpdated VC.
func IssueResourceUpdateCredential(subject map[string]interface{}, issuer string, previous *VerifiableCredential, signer crypto.Signer, vmID string) (*VerifiableCredential, error) {
	vc := CreateResourceCredential(ResourceUpdated, subject, issuer)
	if err := chain(vc, previous); err != nil {
		return nil, err
	}
	return SignCredential(vc, signer, vmID)
}

// IssueResourceMigrationCredential builds, chains, and signs a
// ResourceMigrated VC, issued once per hosted resource during publish.
func IssueResourceMigrationCredential(subject map[string]interface{}, issuer string, previous *VerifiableCredential, signer crypto.Signer, vmID string) (*VerifiableCredential, error) {
	vc := CreateResourceCredential(ResourceMigrated, subject, issuer)
	if err := chain(vc, previous); err != nil {
		return nil, err
	}
	return SignCredential(vc, signer, vmID)
}

// IssueMigrationCredential builds, chains, and signs a MigrationCompleted
// VC, issued exactly once per layer migration per spec §4.6.
func IssueMigrationCredential(subject map[string]interface{}, issuer string, previous *VerifiableCredential, signer crypto.Signer, vmID string) (*VerifiableCredential, error) {
	vc := CreateResourceCredential(MigrationCompleted, subject, issuer)
	if err := chain(vc, previous); err != nil {
		return nil, err
	}
	return SignCredential(vc, signer, vmID)
}

// IssueOwnershipCredential builds, chains, and signs an
// OwnershipTransferred VC, issued exactly once per Bitcoin-layer transfer.
func IssueOwnershipCredential(subject map[string]interface{}, issuer string, previous *VerifiableCredential, signer crypto.Signer, vmID string) (*VerifiableCredential, error) {
	vc := CreateResourceCredential(OwnershipTransferred, subject, issuer)
	if err := chain(vc, previous); err != nil {
		return nil, err
	}
	return SignCredential(vc, signer, vmID)
}

// IssueDeactivationCredential builds, chains, and signs a Deactivated VC,
// issued exactly once when a did:btco document is deactivated.
func IssueDeactivationCredential(subject map[string]interface{}, issuer string, previous *VerifiableCredential, signer crypto.Signer, vmID string) (*VerifiableCredential, error) {
	vc := CreateResourceCredential(Deactivated, subject, issuer)
	if err := chain(vc, previous); err != nil {
		return nil, err
	}
	return SignCredential(vc, signer, vmID)
}

// cryptosuiteFor returns the Data-Integrity cryptosuite identifier for a
// key type, defaulting to the JCS-canonicalized family since it needs no
// external JSON-LD context resolution.
func cryptosuiteFor(keyType crypto.KeyType) (string, error) {
	switch keyType {
	case crypto.Ed25519:
		return "eddsa-jcs-2022", nil
	case crypto.Secp256k1, crypto.P256:
		return "ecdsa-jcs-2022", nil
	case crypto.BLS12381G2:
		return "bbs-2023", nil
	default:
		return "", errors.NewCryptoError("no cryptosuite mapped for key type %q", keyType)
	}
}

func usesRDF(cryptosuite string) bool {
	switch cryptosuite {
	case "eddsa-rdfc-2022", "ecdsa-rdfc-2019":
		return true
	default:
		return false
	}
}

// canonicalizeForSuite produces the canonical byte form of v per the cryptosuite's
// canonicalization scheme (JCS by default, RDF dataset canonicalization for
// the *-rdfc-* suite family).
func canonicalizeForSuite(cryptosuite string, v map[string]interface{}) ([]byte, error) {
	if usesRDF(cryptosuite) {
		nquads, err := canonical.RDFDatasetCanonicalize(v, vcDocumentLoader)
		if err != nil {
			return nil, err
		}
		return []byte(nquads), nil
	}
	return canonical.JCS(v)
}

// toMap round-trips v through JSON to a plain map, the representation
// both canonicalization schemes operate on.
func toMap(v interface{}) (map[string]interface{}, error) {
	raw, err := jsonMarshal(v)
	if err != nil {
		return nil, errors.NewCryptoError("credential marshal failed: %v", err)
	}
	m, err := jsonUnmarshalMap(raw)
	if err != nil {
		return nil, errors.NewCryptoError("credential reparse failed: %v", err)
	}
	return m, nil
}

// digestFor implements spec §4.4's signing algorithm: canonicalize the
// credential sans proof, canonicalize the proof sans proofValue (with the
// credential's @context injected), SHA-256 each, and concatenate
// (proof-hash || credential-hash) as the digest to sign.
func digestFor(vc *VerifiableCredential, proof *Proof) ([]byte, error) {
	vcCopy := *vc
	vcCopy.Proof = nil
	vcMap, err := toMap(&vcCopy)
	if err != nil {
		return nil, err
	}
	vcCanonical, err := canonicalizeForSuite(proof.Cryptosuite, vcMap)
	if err != nil {
		return nil, err
	}

	proofCopy := *proof
	proofCopy.ProofValue = ""
	proofMap, err := toMap(&proofCopy)
	if err != nil {
		return nil, err
	}
	proofMap["@context"] = vc.Context
	proofCanonical, err := canonicalizeForSuite(proof.Cryptosuite, proofMap)
	if err != nil {
		return nil, err
	}

	credHash := crypto.Sum256(vcCanonical)
	proofHash := crypto.Sum256(proofCanonical)

	digest := append(append([]byte{}, proofHash[:]...), credHash[:]...)
	return digest, nil
}

// SignCredential produces a Data-Integrity proof using a local Signer.
func SignCredential(vc *VerifiableCredential, signer crypto.Signer, verificationMethodID string) (*VerifiableCredential, error) {
	suite, err := cryptosuiteFor(signer.KeyType())
	if err != nil {
		return nil, err
	}

	proof := &Proof{
		Type:               "DataIntegrityProof",
		Cryptosuite:        suite,
		Created:            time.Now().UTC().Format(time.RFC3339),
		VerificationMethod: verificationMethodID,
		ProofPurpose:       "assertionMethod",
	}

	digest, err := digestFor(vc, proof)
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}

	encoded, err := multibase.Encode(multibase.Base64url, sig)
	if err != nil {
		return nil, errors.NewCryptoError("proof value encode failed: %v", err)
	}
	proof.ProofValue = encoded

	signed := *vc
	signed.Proof = proof
	return &signed, nil
}

// SignCredentialWithExternalSigner delegates proof production to an
// external signer (HSM/MPC/hardware), per spec §4.4's external signer
// contract: the manager prepares the unsigned document and proof stub and
// lets the signer produce the proof value.
func SignCredentialWithExternalSigner(ctx context.Context, vc *VerifiableCredential, cryptosuite string, signer adapters.ExternalSigner) (*VerifiableCredential, error) {
	proof := &Proof{
		Type:               "DataIntegrityProof",
		Cryptosuite:        cryptosuite,
		Created:            time.Now().UTC().Format(time.RFC3339),
		VerificationMethod: signer.GetVerificationMethodID(),
		ProofPurpose:       "assertionMethod",
	}

	docMap, err := toMap(vc)
	if err != nil {
		return nil, err
	}
	proofMap, err := toMap(proof)
	if err != nil {
		return nil, err
	}

	result, err := signer.Sign(ctx, adapters.SignRequest{Document: docMap, Proof: proofMap})
	if err != nil {
		return nil, err
	}

	proof.ProofValue = result.ProofValue

	signed := *vc
	signed.Proof = proof
	return &signed, nil
}

// VerifyOptions configures VerifyCredential's key resolution strategy.
type VerifyOptions struct {
	Resolver           *did.Resolver
	PublicKeyMultibase string
}

// VerifyCredential checks a credential's Data-Integrity proof, resolving
// the signer's public key either from opts.PublicKeyMultibase (an inline
// key carried alongside the proof) or, if a Resolver is supplied, from the
// DID document the proof's verificationMethod belongs to.
func VerifyCredential(ctx context.Context, vc *VerifiableCredential, opts VerifyOptions) (bool, error) {
	if vc.Proof == nil {
		return false, errors.NewValidationError("credential has no proof")
	}

	digest, err := digestFor(vc, vc.Proof)
	if err != nil {
		return false, err
	}

	_, sig, err := multibase.Decode(vc.Proof.ProofValue)
	if err != nil {
		return false, errors.NewCryptoError("proof value decode failed: %v", err)
	}

	keyType, pub, err := resolvePublicKey(ctx, vc.Proof, opts)
	if err != nil {
		return false, err
	}

	switch keyType {
	case crypto.Ed25519:
		return crypto.VerifyEd25519(pub, digest, sig)
	case crypto.Secp256k1:
		return crypto.VerifySecp256k1(pub, digest, sig)
	case crypto.P256:
		return crypto.VerifyP256(pub, digest, sig)
	case crypto.BLS12381G2:
		return crypto.VerifyBLS(pub, digest, sig)
	default:
		return false, errors.NewCryptoError("unsupported key type %q for verification", keyType)
	}
}

func resolvePublicKey(ctx context.Context, proof *Proof, opts VerifyOptions) (crypto.KeyType, []byte, error) {
	if opts.PublicKeyMultibase != "" {
		return crypto.DecodeMultikey(opts.PublicKeyMultibase)
	}

	if opts.Resolver == nil {
		return "", nil, errors.NewConfigurationError("credential verification requires either an inline public key or a DID resolver")
	}

	controllerDID, vmID := splitDIDURL(proof.VerificationMethod)

	doc, err := opts.Resolver.ResolveDID(ctx, controllerDID)
	if err != nil {
		return "", nil, err
	}

	vm, ok := doc.FindVerificationMethod(proof.VerificationMethod)
	if !ok {
		return "", nil, errors.NewResourceNotFoundError("verification method %q not found on %q", vmID, controllerDID)
	}

	return crypto.DecodeMultikey(vm.PublicKeyMultibase)
}

// ComputeCredentialHash returns the canonical SHA-256 hash of a (signed or
// unsigned) credential, used both as a stability check and as the value
// referenced by a successor's previousCredential.hash.
func ComputeCredentialHash(vc *VerifiableCredential) (string, error) {
	m, err := toMap(vc)
	if err != nil {
		return "", err
	}
	canonicalBytes, err := canonical.JCS(m)
	if err != nil {
		return "", err
	}
	return crypto.HashContent(canonicalBytes), nil
}

// ChainResult is returned by VerifyCredentialChain.
type ChainResult struct {
	Valid       bool
	Errors      []string
	ChainLength int
}

// VerifyCredentialChain checks that every credential verifies
// individually and that each entry's previousCredential (if present)
// correctly references its predecessor, per spec §4.4 and §8.
func VerifyCredentialChain(ctx context.Context, vcs []*VerifiableCredential, opts VerifyOptions) ChainResult {
	result := ChainResult{Valid: true, ChainLength: len(vcs)}

	for i, vc := range vcs {
		ok, err := VerifyCredential(ctx, vc, opts)
		if err != nil || !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d failed verification", i))
			continue
		}

		if i == 0 {
			continue
		}

		prevRef, hasRef := vc.CredentialSubject["previousCredential"]
		if !hasRef {
			continue
		}

		pc, ok := normalizePreviousCredential(prevRef)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d has a malformed previousCredential", i))
			continue
		}
		if pc.ID == "" && pc.Hash == "" {
			continue
		}

		predecessorID, _ := vcs[i-1].CredentialSubject["id"].(string)
		predecessorHash, err := ComputeCredentialHash(vcs[i-1])
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d: chain broken, could not hash predecessor", i))
			continue
		}

		if pc.ID != predecessorID || pc.Hash != predecessorHash {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d: chain broken", i))
		}
	}

	return result
}

func normalizePreviousCredential(v interface{}) (PreviousCredential, bool) {
	switch vv := v.(type) {
	case PreviousCredential:
		return vv, true
	case map[string]interface{}:
		id, _ := vv["id"].(string)
		hash, _ := vv["hash"].(string)
		return PreviousCredential{ID: id, Hash: hash}, true
	default:
		return PreviousCredential{}, false
	}
}

// Presentation is a minimal W3C Verifiable Presentation wrapping a set of
// credentials for a holder.
type Presentation struct {
	Context              []interface{}           `json:"@context"`
	Type                 []string                `json:"type"`
	Holder               string                  `json:"holder"`
	VerifiableCredential []*VerifiableCredential `json:"verifiableCredential"`
}

// CreatePresentation wraps credentials into a VP for holderDID.
func CreatePresentation(vcs []*VerifiableCredential, holderDID string) *Presentation {
	return &Presentation{
		Context:              append([]interface{}{}, DefaultContext...),
		Type:                 []string{"VerifiablePresentation"},
		Holder:               holderDID,
		VerifiableCredential: vcs,
	}
}
