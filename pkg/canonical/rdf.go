package canonical

import (
	"github.com/piprate/json-gold/ld"

	"github.com/originals-sdk/sdk/errors"
)

// RDFDatasetCanonicalize normalizes a JSON-LD document into URDNA2015
// canonical N-Quads, the representation the *-rdfc-2019/2022 cryptosuites
// hash and sign. docLoader may be nil to use json-gold's default HTTP
// document loader; callers resolving local or cached contexts (e.g. the VC
// context) should supply one backed by an adapters.DIDDocumentLoader-style
// cache instead of hitting the network on every credential signed.
func RDFDatasetCanonicalize(doc map[string]interface{}, docLoader ld.DocumentLoader) (string, error) {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = "application/n-quads"
	options.Algorithm = ld.AlgorithmURDNA2015

	if docLoader != nil {
		options.DocumentLoader = docLoader
	}

	normalized, err := proc.Normalize(doc, options)
	if err != nil {
		return "", errors.NewCryptoError("rdf dataset canonicalization failed: %v", err)
	}

	nquads, ok := normalized.(string)
	if !ok {
		return "", errors.NewCryptoError("rdf dataset canonicalization returned unexpected type %T", normalized)
	}

	return nquads, nil
}

// StaticDocumentLoader serves a fixed set of JSON-LD contexts from memory,
// so repeatedly signing/verifying credentials against the W3C VC context
// doesn't require a network fetch per call.
type StaticDocumentLoader struct {
	docs map[string]interface{}
}

// NewStaticDocumentLoader builds a loader over the given url -> parsed
// JSON-LD document map.
func NewStaticDocumentLoader(docs map[string]interface{}) *StaticDocumentLoader {
	return &StaticDocumentLoader{docs: docs}
}

// LoadDocument implements ld.DocumentLoader.
func (l *StaticDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	doc, ok := l.docs[u]
	if !ok {
		return nil, errors.NewResourceNotFoundError("no cached JSON-LD context for %q", u)
	}

	return &ld.RemoteDocument{
		DocumentURL: u,
		Document:    doc,
	}, nil
}
