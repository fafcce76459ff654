package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMetadataEnvelopeRoundTrip(t *testing.T) {
	env := MetadataEnvelope{
		DIDDocument:          map[string]interface{}{"id": "did:btco:1:5000000"},
		VerifiableCredential: map[string]interface{}{"type": []interface{}{"VerifiableCredential"}},
	}

	data, err := EncodeMetadataEnvelope(env)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	decoded, err := DecodeMetadataEnvelope(data)
	require.NoError(t, err)
	assert.NotNil(t, decoded.DIDDocument)
	assert.NotNil(t, decoded.VerifiableCredential)
}

func TestEncodeMetadataEnvelopeAcceptsJWTString(t *testing.T) {
	env := MetadataEnvelope{
		DIDDocument:          map[string]interface{}{"id": "did:peer:0abc"},
		VerifiableCredential: "eyJhbGciOiJFZERTQSJ9.eyJzdWIiOiJ4In0.sig",
	}

	data, err := EncodeMetadataEnvelope(env)
	require.NoError(t, err)

	decoded, err := DecodeMetadataEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env.VerifiableCredential, decoded.VerifiableCredential)
}
