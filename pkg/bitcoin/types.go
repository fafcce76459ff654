// Package bitcoin implements the Bitcoin Manager: UTXO selection, vbyte fee
// estimation, inscription envelope and CBOR metadata construction, and
// Taproot commit/reveal/transfer transaction assembly for did:btco.
package bitcoin

import (
	"github.com/originals-sdk/sdk/settings"
)

// DustThreshold is the minimum satoshi value a P2TR output may safely carry;
// below this a UTXO selection treats the excess as fee rather than change.
const DustThreshold = 330

// RevealDustValue is the conventional inscription-output value used by the
// commit/reveal pair, set above DustThreshold for broad relay acceptance.
const RevealDustValue = 546

// UTXO is a spendable Taproot output, named after the teacher's bt.UTXO
// (TxID/Vout/Satoshis) but carrying the Taproot-specific fields (internal
// key, merkle root) go-bt/v2's BSV-oriented UTXO type has no use for.
type UTXO struct {
	TxID          string
	Vout          uint32
	Satoshis      uint64
	ScriptPubKey  []byte
	InternalKey   []byte // x-only, 32 bytes; nil for non-inscription funding UTXOs
	TapMerkleRoot []byte // nil for key-path-only outputs
}

// NetworkParams carries the address/HRP conventions for a Bitcoin network,
// generalizing the teacher's per-network chain-config tables (it carried
// BSV magic bytes; this carries the bech32m Taproot HRPs instead).
type NetworkParams struct {
	Name           settings.Network
	Bech32HRP      string
	WitnessVersion byte
}

var networkParams = map[settings.Network]NetworkParams{
	settings.NetworkMainnet: {Name: settings.NetworkMainnet, Bech32HRP: "bc", WitnessVersion: 1},
	settings.NetworkTestnet: {Name: settings.NetworkTestnet, Bech32HRP: "tb", WitnessVersion: 1},
	settings.NetworkSignet:  {Name: settings.NetworkSignet, Bech32HRP: "tb", WitnessVersion: 1},
	settings.NetworkRegtest: {Name: settings.NetworkRegtest, Bech32HRP: "bcrt", WitnessVersion: 1},
}

// ParamsFor returns the NetworkParams for a settings.Network, or false if
// the network is not recognized.
func ParamsFor(n settings.Network) (NetworkParams, bool) {
	p, ok := networkParams[n]
	return p, ok
}

// InscriptionContent is the payload to be inscribed: raw bytes, a MIME
// content type, and an optional metaprotocol tag.
type InscriptionContent struct {
	Data          []byte
	ContentType   string
	Metaprotocol  string
	Metadata      []byte // pre-encoded CBOR, see metadata.go
}

// FeeEstimate is the result of EstimateVBytes/EstimateFee.
type FeeEstimate struct {
	VBytes     int
	FeeRate    float64 // sat/vB
	TotalSats  uint64
}
