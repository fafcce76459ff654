package bitcoin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnvelopeScriptRoundTripsStructure(t *testing.T) {
	content := InscriptionContent{Data: []byte("hello world"), ContentType: "text/plain"}

	script, err := BuildEnvelopeScript(content)
	require.NoError(t, err)

	assert.Equal(t, byte(opFALSE), script[0])
	assert.Equal(t, byte(opIF), script[1])
	assert.Equal(t, byte(opENDIF), script[len(script)-1])
	assert.True(t, bytes.Contains(script, []byte("ord")))
	assert.True(t, bytes.Contains(script, []byte("text/plain")))
	assert.True(t, bytes.Contains(script, []byte("hello world")))
}

func TestEnvelopeScriptSizeMatchesBuiltScript(t *testing.T) {
	content := InscriptionContent{
		Data:         bytes.Repeat([]byte{0xAB}, 1200), // spans multiple 520-byte chunks
		ContentType:  "application/json",
		Metaprotocol: "originals",
	}

	script, err := BuildEnvelopeScript(content)
	require.NoError(t, err)
	assert.Equal(t, len(script), EnvelopeScriptSize(content))
}

func TestBuildEnvelopeScriptRequiresContentType(t *testing.T) {
	_, err := BuildEnvelopeScript(InscriptionContent{Data: []byte("x")})
	require.Error(t, err)
}

func TestPushDataSizingThresholds(t *testing.T) {
	assert.Equal(t, 1+10, pushDataSize(10))
	assert.Equal(t, 2+200, pushDataSize(200))
	assert.Equal(t, 3+600, pushDataSize(600))
}

func TestBuildTapLeafScriptPrependsCheckSig(t *testing.T) {
	key := bytes.Repeat([]byte{0x02}, 32)
	script, err := BuildTapLeafScript(key, InscriptionContent{Data: []byte("x"), ContentType: "text/plain"})
	require.NoError(t, err)

	assert.Equal(t, byte(32), script[0])
	assert.Equal(t, key, script[1:33])
	assert.Equal(t, byte(opCHECKSIG), script[33])
}

func TestBuildTapLeafScriptRejectsBadKeyLength(t *testing.T) {
	_, err := BuildTapLeafScript([]byte{0x01, 0x02}, InscriptionContent{Data: []byte("x"), ContentType: "text/plain"})
	require.Error(t, err)
}
