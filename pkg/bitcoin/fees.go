package bitcoin

import (
	"github.com/libsv/go-bt/v2"
)

// Fixed vbyte costs from spec §4.5.
const (
	baseOverheadVBytes   = 10.5
	p2trKeyPathInputVB   = 58
	p2trOutputVB         = 31
	nonWitnessInputBytes = 41 // outpoint(36) + sequence(4) + empty scriptSig length(1)
)

// varIntSize returns the byte length of a Bitcoin varint encoding n,
// reusing the teacher's bt.VarInt for the actual byte-length computation
// rather than re-deriving the 1/3/5/9-byte thresholds by hand.
func varIntSize(n uint64) int {
	return len(bt.VarInt(n).Bytes())
}

// scriptPathWitnessVBytes computes the weight-discounted vbyte contribution
// of a script-path-spend witness stack: [signature, tapscript, control
// block], each prefixed by its own varint length, with an overall
// item-count varint — then divided by 4 (witness weight discount) and
// rounded up.
func scriptPathWitnessVBytes(tapscript []byte, controlBlockLen int, hasSignature bool) int {
	sigLen := 0
	if hasSignature {
		sigLen = 64 // schnorr signature, default SIGHASH_DEFAULT (no trailing byte)
	}

	itemCount := 2
	if hasSignature {
		itemCount = 3
	}

	weight := varIntSize(uint64(itemCount))
	if hasSignature {
		weight += varIntSize(uint64(sigLen)) + sigLen
	}
	weight += varIntSize(uint64(len(tapscript))) + len(tapscript)
	weight += varIntSize(uint64(controlBlockLen)) + controlBlockLen

	return (weight + 3) / 4
}

// EstimateVBytes computes the transaction vbyte size per spec §4.5: base
// overhead, P2TR key-path inputs, P2TR outputs, and — when an inscription
// reveal is present — the script-path input's control-block and envelope
// witness contribution.
func EstimateVBytes(keyPathInputs, outputs int, reveal *InscriptionContent, internalKeyXOnly []byte) (int, error) {
	total := baseOverheadVBytes
	total += float64(keyPathInputs) * p2trKeyPathInputVB
	total += float64(outputs) * p2trOutputVB

	if reveal != nil {
		leaf, err := BuildTapLeafScript(internalKeyXOnly, *reveal)
		if err != nil {
			return 0, err
		}

		total += nonWitnessInputBytes
		total += float64(scriptPathWitnessVBytes(leaf, controlBlockSize(0), true))
	}

	return int(total + 0.999999), nil
}

// EstimateFee converts a vbyte size to a satoshi fee at the given sat/vB
// rate, rounding up (fee rates must never under-pay).
func EstimateFee(vbytes int, satPerVByte float64) uint64 {
	return uint64(float64(vbytes)*satPerVByte + 0.999999)
}

// controlBlockSize returns the control block length for a script-path
// spend with the given merkle-proof depth: 1 leading byte (version+parity)
// + 32-byte internal key + depth*32-byte proof steps.
func controlBlockSize(depth int) int {
	return 1 + 32 + depth*32
}
