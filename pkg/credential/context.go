package credential

import (
	"strings"

	"github.com/originals-sdk/sdk/pkg/canonical"
)

// splitDIDURL splits a verificationMethod DID URL ("did:peer:z6M...#z6M...")
// into its controller DID and fragment (without the leading "#").
func splitDIDURL(vmID string) (controller, fragment string) {
	idx := strings.Index(vmID, "#")
	if idx < 0 {
		return vmID, ""
	}
	return vmID[:idx], vmID[idx+1:]
}

// vcDocumentLoader serves the base VC v2 context from memory for the
// *-rdfc-* cryptosuite family, using "@vocab" as a catch-all so credential
// subject fields don't each need an explicit term definition. This keeps
// RDF canonicalization fully offline and deterministic within this SDK,
// at the cost of not being byte-compatible with the real w3.org context
// document (see DESIGN.md).
var vcDocumentLoader = canonical.NewStaticDocumentLoader(map[string]interface{}{
	"https://www.w3.org/ns/credentials/v2": map[string]interface{}{
		"@context": map[string]interface{}{
			"@vocab": "https://www.w3.org/ns/credentials#",
		},
	},
	"https://originals-sdk.org/contexts/v1": map[string]interface{}{
		"@context": map[string]interface{}{
			"@vocab": "https://originals-sdk.org/vocab#",
		},
	},
})
