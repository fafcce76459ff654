package bitcoin

import (
	"github.com/fxamacker/cbor/v2"
)

// MetadataEnvelope is the CBOR-encoded map carried as tag-5 metadata in the
// inscription envelope: the current DID document and the primary
// verifiable credential (either a JSON object or a JWT string).
// Deactivated marks a did:btco deactivation marker inscribed on the same
// satoshi as the document it supersedes; DIDDocument is nil when set.
type MetadataEnvelope struct {
	DIDDocument          interface{} `cbor:"didDocument"`
	VerifiableCredential interface{} `cbor:"verifiableCredential"`
	Deactivated          bool        `cbor:"deactivated,omitempty"`
}

// EncodeMetadataEnvelope CBOR-encodes the envelope per spec §6's bit-exact
// metadata format; the returned byte length is what the size estimator
// uses to size the tag-5 metadata pushes.
func EncodeMetadataEnvelope(env MetadataEnvelope) ([]byte, error) {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		return nil, err
	}
	return mode.Marshal(env)
}

// DecodeMetadataEnvelope reverses EncodeMetadataEnvelope.
func DecodeMetadataEnvelope(data []byte) (MetadataEnvelope, error) {
	var env MetadataEnvelope
	err := cbor.Unmarshal(data, &env)
	return env, err
}
