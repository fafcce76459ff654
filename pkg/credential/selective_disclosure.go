package credential

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/crypto"
)

// DisclosureRequest names the credentialSubject fields (as JSON Pointer
// paths, e.g. "/name" or "/items/0/id") a holder wants to reveal.
type DisclosureRequest struct {
	RevealedPaths []string
}

// PreparedDisclosure is the output of PrepareSelectiveDisclosure: the
// original signed credential plus the set of paths the issuer has
// authorized for derivation.
type PreparedDisclosure struct {
	Credential   *VerifiableCredential
	AllowedPaths []string
}

// DerivedCredential is the output of DeriveDisclosure: a credential whose
// credentialSubject carries only the requested fields, with a
// bbs-2023-scaffold derived proof.
//
// This is a selective-disclosure SCAFFOLD, not a real BBS+ derivation: the
// derived proofValue is a SHA-256 hash of the original proofValue and the
// revealed paths, so it proves nothing about either the hidden or the
// revealed field values. Replace
// with a vetted BBS+ implementation before relying on this for privacy
// guarantees (spec §9).
type DerivedCredential struct {
	Context           []interface{}          `json:"@context"`
	Type              []string               `json:"type"`
	Issuer            string                 `json:"issuer"`
	CredentialSubject map[string]interface{} `json:"credentialSubject"`
	Proof             *Proof                 `json:"proof"`
}

// PrepareSelectiveDisclosure authorizes a signed credential for selective
// disclosure, recording which subject paths a holder may later reveal.
func PrepareSelectiveDisclosure(vc *VerifiableCredential, allowedPaths []string) (*PreparedDisclosure, error) {
	if vc.Proof == nil || vc.Proof.Cryptosuite != "bbs-2023" {
		return nil, errors.NewValidationError("selective disclosure requires a credential signed with bbs-2023")
	}
	return &PreparedDisclosure{Credential: vc, AllowedPaths: allowedPaths}, nil
}

// DeriveDisclosure produces a DerivedCredential revealing only
// req.RevealedPaths, which must be a subset of the prepared disclosure's
// AllowedPaths.
func DeriveDisclosure(prepared *PreparedDisclosure, req DisclosureRequest) (*DerivedCredential, error) {
	for _, path := range req.RevealedPaths {
		allowed := false
		for _, a := range prepared.AllowedPaths {
			if a == path {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, errors.NewValidationError("path %q was not authorized for disclosure", path)
		}
	}

	subject := make(map[string]interface{}, len(req.RevealedPaths))
	for _, path := range req.RevealedPaths {
		value, err := GetFieldByPointer(prepared.Credential.CredentialSubject, path)
		if err != nil {
			return nil, err
		}
		setByPointer(subject, path, value)
	}

	vc := prepared.Credential
	derivedSig := crypto.HashString(base64.RawURLEncoding.EncodeToString([]byte(vc.Proof.ProofValue)) + strings.Join(req.RevealedPaths, ","))

	return &DerivedCredential{
		Context:           vc.Context,
		Type:              vc.Type,
		Issuer:            vc.Issuer,
		CredentialSubject: subject,
		Proof: &Proof{
			Type:               "DataIntegrityProof",
			Cryptosuite:        "bbs-2023",
			Created:            vc.Proof.Created,
			VerificationMethod: vc.Proof.VerificationMethod,
			ProofPurpose:       "assertionMethod",
			ProofValue:         derivedSig,
		},
	}, nil
}

// GetFieldByPointer resolves a JSON-Pointer-style path ("/a/b/0/c")
// against a credentialSubject map.
func GetFieldByPointer(subject map[string]interface{}, path string) (interface{}, error) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	var cur interface{} = subject
	for _, seg := range segments {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return nil, errors.NewResourceNotFoundError("field %q not found at %q", seg, path)
			}
			cur = v
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, errors.NewResourceNotFoundError("array index %q out of range at %q", seg, path)
			}
			cur = node[idx]
		default:
			return nil, errors.NewResourceNotFoundError("cannot descend into %q at %q", seg, path)
		}
	}

	return cur, nil
}

// setByPointer mirrors GetFieldByPointer, writing value at path within a
// freshly built output map (object segments only — sufficient for the
// flat credentialSubject shapes this SDK issues).
func setByPointer(out map[string]interface{}, path string, value interface{}) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	cur := out
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			cur[seg] = next
		}
		cur = next
	}
}
