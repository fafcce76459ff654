package bitcoin

import (
	"github.com/originals-sdk/sdk/errors"
)

// Raw script opcodes used by the inscription envelope. Defined locally
// rather than imported from bscript: go-bt/v2's opcode table targets
// BSV's (pre-segwit) script dialect, and the handful this envelope needs
// are invariant across both chains' base opcode set.
const (
	opFALSE     = 0x00
	op0         = 0x00
	opIF        = 0x63
	opENDIF     = 0x68
	opPUSHDATA1 = 0x4c
	opPUSHDATA2 = 0x4d
	opCHECKSIG  = 0xac
)

const (
	maxPushBytes1 = 75  // direct OP_PUSHBYTES_N range
	maxPushData1  = 255 // OP_PUSHDATA1 range
	maxTapPush    = 520 // tapscript per-push limit
)

var (
	tagMetaprotocol = []byte{0x07}
	tagContentType  = []byte{0x01}
	tagMetadata     = []byte{0x05}
)

// pushData appends a length-prefixed data push using OP_PUSHBYTES_N,
// OP_PUSHDATA1 or OP_PUSHDATA2 depending on size, per spec's bit-exact
// envelope sizing rule.
func pushData(buf []byte, data []byte) []byte {
	n := len(data)
	switch {
	case n <= maxPushBytes1:
		buf = append(buf, byte(n))
	case n <= maxPushData1:
		buf = append(buf, opPUSHDATA1, byte(n))
	default:
		buf = append(buf, opPUSHDATA2, byte(n), byte(n>>8))
	}
	return append(buf, data...)
}

// pushDataSize returns the number of bytes pushData would emit for data of
// length n, without building the bytes — used by the fee estimator.
func pushDataSize(n int) int {
	switch {
	case n <= maxPushBytes1:
		return 1 + n
	case n <= maxPushData1:
		return 2 + n
	default:
		return 3 + n
	}
}

// chunk splits data into ≤520-byte pieces, the tapscript push limit.
func chunk(data []byte, size int) [][]byte {
	if len(data) == 0 {
		return nil
	}
	var chunks [][]byte
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[i:end])
	}
	return chunks
}

// BuildEnvelopeScript assembles the bit-exact inscription envelope: OP_FALSE
// OP_IF, "ord", an optional metaprotocol tag, the content-type tag (a
// content type is required), optional metadata tags, OP_0, chunked
// content, OP_ENDIF.
func BuildEnvelopeScript(content InscriptionContent) ([]byte, error) {
	if content.ContentType == "" {
		return nil, errors.NewValidationError("inscription content type is required")
	}

	script := []byte{opFALSE, opIF}
	script = pushData(script, []byte("ord"))

	if content.Metaprotocol != "" {
		script = pushData(script, tagMetaprotocol)
		script = pushData(script, []byte(content.Metaprotocol))
	}

	script = pushData(script, tagContentType)
	script = pushData(script, []byte(content.ContentType))

	if len(content.Metadata) > 0 {
		script = pushData(script, tagMetadata)
		for _, c := range chunk(content.Metadata, maxTapPush) {
			script = pushData(script, c)
		}
	}

	script = append(script, op0)

	for _, c := range chunk(content.Data, maxTapPush) {
		script = pushData(script, c)
	}

	script = append(script, opENDIF)

	return script, nil
}

// EnvelopeScriptSize computes the byte length BuildEnvelopeScript would
// produce without allocating it, for fee estimation.
func EnvelopeScriptSize(content InscriptionContent) int {
	size := 2 // OP_FALSE OP_IF
	size += pushDataSize(len("ord"))

	if content.Metaprotocol != "" {
		size += pushDataSize(len(tagMetaprotocol))
		size += pushDataSize(len(content.Metaprotocol))
	}

	size += pushDataSize(len(tagContentType))
	size += pushDataSize(len(content.ContentType))

	if len(content.Metadata) > 0 {
		size += pushDataSize(len(tagMetadata))
		for _, c := range chunk(content.Metadata, maxTapPush) {
			size += pushDataSize(len(c))
		}
	}

	size++ // OP_0 separator

	for _, c := range chunk(content.Data, maxTapPush) {
		size += pushDataSize(len(c))
	}

	size++ // OP_ENDIF

	return size
}

// BuildTapLeafScript wraps the inscription envelope in the tapscript leaf's
// spending condition: <x-only pubkey> OP_CHECKSIG, followed by the
// envelope. The checksig branch is taken on spend; the OP_FALSE IF branch
// never executes and only carries the inscribed data.
func BuildTapLeafScript(internalKeyXOnly []byte, content InscriptionContent) ([]byte, error) {
	if len(internalKeyXOnly) != 32 {
		return nil, errors.NewValidationError("taproot internal key must be 32 bytes, got %d", len(internalKeyXOnly))
	}

	envelope, err := BuildEnvelopeScript(content)
	if err != nil {
		return nil, err
	}

	script := pushData(nil, internalKeyXOnly)
	script = append(script, opCHECKSIG)
	script = append(script, envelope...)

	return script, nil
}
