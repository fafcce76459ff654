package bitcoin

import (
	"strings"

	"github.com/originals-sdk/sdk/errors"
)

// Bech32/bech32m encoding (BIP173/BIP350), hand-rolled: no example repo in
// this SDK's lineage carries a bech32 dependency (BSV uses base58check,
// not segwit addresses), and the algorithm is short enough that a
// purpose-built third-party dependency would be disproportionate.

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const bech32mConst = 0x2bc830a3

func bech32Polymod(values []byte) uint32 {
	gen := []uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		b := byte(chk >> 25)
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func bech32HRPExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		out = append(out, byte(c)>>5)
	}
	out = append(out, 0)
	for _, c := range hrp {
		out = append(out, byte(c)&31)
	}
	return out
}

func bech32CreateChecksum(hrp string, data []byte) []byte {
	values := append(bech32HRPExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := bech32Polymod(values) ^ bech32mConst
	checksum := make([]byte, 6)
	for i := 0; i < 6; i++ {
		checksum[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return checksum
}

// convertBits re-groups a byte slice between bit widths, used to pack an
// 8-bit witness program into 5-bit bech32 groups and back.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	acc := uint32(0)
	bits := uint(0)
	maxv := uint32(1)<<toBits - 1
	var out []byte

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, errors.NewValidationError("invalid byte for bit conversion")
		}
		acc = (acc << fromBits) | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte((acc<<(toBits-bits))&maxv))
		}
	} else if bits >= fromBits || (acc<<(toBits-bits))&maxv != 0 {
		return nil, errors.NewValidationError("invalid padding in bit conversion")
	}

	return out, nil
}

// EncodeTaprootAddress encodes a 32-byte x-only output key as a bech32m
// P2TR address (witness version 1) for the given network.
func EncodeTaprootAddress(hrp string, outputKeyXOnly []byte) (string, error) {
	if len(outputKeyXOnly) != 32 {
		return "", errors.NewValidationError("taproot output key must be 32 bytes")
	}

	program, err := convertBits(outputKeyXOnly, 8, 5, true)
	if err != nil {
		return "", err
	}

	data := append([]byte{1}, program...) // witness version 1
	checksum := bech32CreateChecksum(hrp, data)
	combined := append(data, checksum...)

	var sb strings.Builder
	sb.WriteString(hrp)
	sb.WriteString("1")
	for _, b := range combined {
		sb.WriteByte(bech32Charset[b])
	}

	return sb.String(), nil
}

// DecodeTaprootAddress parses a bech32m P2TR address, returning the HRP and
// the 32-byte x-only output key. Validates the checksum and witness
// version/program length per BIP341/BIP350.
func DecodeTaprootAddress(address string) (hrp string, outputKeyXOnly []byte, err error) {
	pos := strings.LastIndex(address, "1")
	if pos < 1 || pos+7 > len(address) {
		return "", nil, errors.NewValidationError("malformed bech32 address: %q", address)
	}

	hrp = strings.ToLower(address[:pos])
	dataPart := strings.ToLower(address[pos+1:])

	data := make([]byte, len(dataPart))
	for i, c := range dataPart {
		idx := strings.IndexRune(bech32Charset, c)
		if idx < 0 {
			return "", nil, errors.NewValidationError("invalid bech32 character %q", c)
		}
		data[i] = byte(idx)
	}

	if len(data) < 6 {
		return "", nil, errors.NewValidationError("bech32 address too short")
	}

	payload := data[:len(data)-6]
	checksum := data[len(data)-6:]
	expected := bech32CreateChecksum(hrp, payload)
	for i := range checksum {
		if checksum[i] != expected[i] {
			return "", nil, errors.NewValidationError("bech32 checksum mismatch")
		}
	}

	if len(payload) < 1 {
		return "", nil, errors.NewValidationError("missing witness version")
	}

	witnessVersion := payload[0]
	if witnessVersion != 1 {
		return "", nil, errors.NewValidationError("unsupported witness version %d for a taproot address", witnessVersion)
	}

	program, err := convertBits(payload[1:], 5, 8, false)
	if err != nil {
		return "", nil, err
	}

	if len(program) != 32 {
		return "", nil, errors.NewValidationError("taproot witness program must be 32 bytes, got %d", len(program))
	}

	return hrp, program, nil
}
