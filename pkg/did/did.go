// Package did implements DID creation and resolution for the three layers
// this SDK manages: did:peer (self-certifying), did:webvh (append-only log
// at an HTTPS URL), and did:btco (Bitcoin satoshi-anchored).
package did

import (
	"fmt"
	"strings"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/crypto"
	"github.com/originals-sdk/sdk/settings"
)

// Purpose names a verification relationship a VerificationMethod is
// registered for.
type Purpose string

const (
	PurposeAuthentication      Purpose = "authentication"
	PurposeAssertionMethod     Purpose = "assertionMethod"
	PurposeCapabilityInvocation Purpose = "capabilityInvocation"
	PurposeCapabilityDelegation Purpose = "capabilityDelegation"
)

// VerificationMethod is a public-key binding on a DID document.
type VerificationMethod struct {
	ID                 string         `json:"id"`
	Controller         string         `json:"controller"`
	KeyType            crypto.KeyType `json:"type"`
	PublicKeyMultibase string         `json:"publicKeyMultibase"`
}

// Document is a DID document as defined in spec §3.
type Document struct {
	ID                   string               `json:"id"`
	Controller           []string             `json:"controller,omitempty"`
	VerificationMethod   []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication       []string             `json:"authentication,omitempty"`
	AssertionMethod      []string             `json:"assertionMethod,omitempty"`
	CapabilityInvocation []string             `json:"capabilityInvocation,omitempty"`
	CapabilityDelegation []string             `json:"capabilityDelegation,omitempty"`

	// Populated only for did:btco documents, and never rewritten once set.
	Satoshi       uint64 `json:"satoshi,omitempty"`
	InscriptionID string `json:"inscriptionId,omitempty"`
	RevealTxID    string `json:"revealTxId,omitempty"`
	Deactivated   bool   `json:"deactivated,omitempty"`
}

// KeyPair bundles the generated signer with its DID document verification
// method id, returned from every create* operation.
type KeyPair struct {
	Signer               crypto.Signer
	VerificationMethodID string
}

// MapSettingsKeyType converts the configuration-level algorithm name
// (settings.KeyType: Ed25519/ES256K/ES256/Bls12381G2) into the curve-style
// crypto.KeyType used for VerificationMethod encoding. These are
// deliberately separate vocabularies (see DESIGN.md) because spec.md uses
// both in different sections.
func MapSettingsKeyType(k settings.KeyType) (crypto.KeyType, error) {
	switch k {
	case settings.KeyTypeEd25519:
		return crypto.Ed25519, nil
	case settings.KeyTypeES256K:
		return crypto.Secp256k1, nil
	case settings.KeyTypeES256:
		return crypto.P256, nil
	case settings.KeyTypeBLS12381G2:
		return crypto.BLS12381G2, nil
	default:
		return "", errors.NewConfigurationError("unsupported default key type %q", k)
	}
}

// CreatePeerDID generates a fresh key pair and derives a did:peer
// identifier from its public key, so the DID can always be re-derived
// from the key alone.
func CreatePeerDID(keyType crypto.KeyType) (*Document, *KeyPair, error) {
	signer, err := crypto.GenerateKeyPair(keyType)
	if err != nil {
		return nil, nil, err
	}

	multikey, err := crypto.EncodeMultikey(keyType, signer.PublicKey(), false)
	if err != nil {
		return nil, nil, err
	}

	did := "did:peer:0" + multikey
	vmID := did + "#" + multikey

	doc := &Document{
		ID: did,
		VerificationMethod: []VerificationMethod{
			{ID: vmID, Controller: did, KeyType: keyType, PublicKeyMultibase: multikey},
		},
		Authentication:  []string{vmID},
		AssertionMethod: []string{vmID},
	}

	return doc, &KeyPair{Signer: signer, VerificationMethodID: vmID}, nil
}

// WebVHLogEntry is one entry of a did:webvh append-only update log.
type WebVHLogEntry struct {
	VersionID   string                 `json:"versionId"`
	VersionTime string                 `json:"versionTime,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
	State       *Document              `json:"state"`
	Proof       []byte                 `json:"proof,omitempty"`
}

// CreateWebVHOptions configures CreateWebVH.
type CreateWebVHOptions struct {
	Domain string
	Path   string
	Slug   string
}

// CreateWebVHResult is returned by CreateWebVH.
type CreateWebVHResult struct {
	DID        string
	Document   *Document
	KeyPair    *KeyPair
	LogEntries []WebVHLogEntry
}

// CreateWebVH mints a did:webvh identifier of the form
// did:webvh:<domain>[:<path>]:<slug> and produces the first entry of its
// append-only log, authorized by a freshly generated key. Rotation of the
// authorization key is not implemented at creation time (see DESIGN.md's
// Open Question decisions); follow-up log entries would append a new
// WebVHLogEntry carrying the rotated key.
func CreateWebVH(keyType crypto.KeyType, opts CreateWebVHOptions) (*CreateWebVHResult, error) {
	if opts.Domain == "" {
		return nil, errors.NewValidationError("webvh domain is required")
	}
	if opts.Slug == "" {
		return nil, errors.NewValidationError("webvh slug is required")
	}

	signer, err := crypto.GenerateKeyPair(keyType)
	if err != nil {
		return nil, err
	}

	multikey, err := crypto.EncodeMultikey(keyType, signer.PublicKey(), false)
	if err != nil {
		return nil, err
	}

	parts := []string{"did:webvh", opts.Domain}
	if opts.Path != "" {
		parts = append(parts, strings.Split(opts.Path, "/")...)
	}
	parts = append(parts, opts.Slug)
	did := strings.Join(parts, ":")

	vmID := did + "#" + multikey
	doc := &Document{
		ID: did,
		VerificationMethod: []VerificationMethod{
			{ID: vmID, Controller: did, KeyType: keyType, PublicKeyMultibase: multikey},
		},
		Authentication:  []string{vmID},
		AssertionMethod: []string{vmID},
	}

	entry := WebVHLogEntry{
		VersionID:  "1-" + crypto.HashString(did),
		Parameters: map[string]interface{}{"method": "did:webvh:1.0", "updateKeys": []string{multikey}},
		State:      doc,
	}

	return &CreateWebVHResult{
		DID:        did,
		Document:   doc,
		KeyPair:    &KeyPair{Signer: signer, VerificationMethodID: vmID},
		LogEntries: []WebVHLogEntry{entry},
	}, nil
}

// WebURL returns the canonical HTTPS location a did:webvh log resolves at.
func (r *CreateWebVHResult) WebURL() string {
	did := r.DID
	rest := strings.TrimPrefix(did, "did:webvh:")
	segments := strings.Split(rest, ":")
	domain := segments[0]
	path := segments[1:]
	if len(path) == 0 {
		return fmt.Sprintf("https://%s/.well-known/did.json", domain)
	}
	return fmt.Sprintf("https://%s/%s/did.json", domain, strings.Join(path, "/"))
}

// BTCODID formats a did:btco identifier for a given network and satoshi.
func BTCODID(network settings.Network, satoshi uint64) string {
	return fmt.Sprintf("did:btco:%s:%d", btcoNetworkTag(network), satoshi)
}

func btcoNetworkTag(n settings.Network) string {
	if n == settings.NetworkMainnet {
		return "1"
	}
	return string(n)
}

// CreateBTCODocument builds the DID document for a freshly inscribed
// did:btco identifier. The satoshi, inscription id, and reveal txid are
// permanent once set, per spec §3's did:btco invariants.
func CreateBTCODocument(network settings.Network, keyType crypto.KeyType, signer crypto.Signer, satoshi uint64, inscriptionID, revealTxID string) (*Document, error) {
	did := BTCODID(network, satoshi)

	multikey, err := crypto.EncodeMultikey(keyType, signer.PublicKey(), false)
	if err != nil {
		return nil, err
	}

	vmID := did + "#" + multikey
	return &Document{
		ID: did,
		VerificationMethod: []VerificationMethod{
			{ID: vmID, Controller: did, KeyType: keyType, PublicKeyMultibase: multikey},
		},
		Authentication:  []string{vmID},
		AssertionMethod: []string{vmID},
		Satoshi:         satoshi,
		InscriptionID:   inscriptionID,
		RevealTxID:      revealTxID,
	}, nil
}

// DeactivationMarker is the CBOR envelope content inscribed on the same
// satoshi to deactivate a did:btco document, per DESIGN.md's Open Question
// decision: {didDocument: null, deactivated: true}.
type DeactivationMarker struct {
	DIDDocument interface{} `cbor:"didDocument"`
	Deactivated bool        `cbor:"deactivated"`
}

// NewDeactivationMarker builds the marker payload.
func NewDeactivationMarker() DeactivationMarker {
	return DeactivationMarker{DIDDocument: nil, Deactivated: true}
}

// FindVerificationMethod looks up a verification method by its full DID
// URL within a document.
func (d *Document) FindVerificationMethod(id string) (*VerificationMethod, bool) {
	for i := range d.VerificationMethod {
		if d.VerificationMethod[i].ID == id {
			return &d.VerificationMethod[i], true
		}
	}
	return nil, false
}
