package bitcoin

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/libsv/go-bt/v2"

	"github.com/originals-sdk/sdk/errors"
)

// TxIn is a transaction input, carrying an optional witness stack. Plain
// legacy-style serialization (go-bt/v2's bt.Tx) has no witness field, so
// this SDK's own minimal wire model is used wherever a Taproot witness
// must be represented — see pkg/bitcoin's DESIGN.md entry.
type TxIn struct {
	PrevTxID []byte // 32 bytes, display (big-endian) order
	PrevVout uint32
	Sequence uint32
	Witness  [][]byte
}

// TxOut is a transaction output.
type TxOut struct {
	Value        uint64
	ScriptPubKey []byte
}

// Tx is a minimal Bitcoin transaction supporting BIP144 witness
// serialization, used for commit, reveal and transfer transactions.
type Tx struct {
	Version  uint32
	Inputs   []*TxIn
	Outputs  []*TxOut
	LockTime uint32
}

func NewTx() *Tx {
	return &Tx{Version: 2}
}

func (tx *Tx) hasWitness() bool {
	for _, in := range tx.Inputs {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

func writeVarInt(buf *bytes.Buffer, n uint64) {
	buf.Write(bt.VarInt(n).Bytes())
}

func writeUint32LE(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

func writeUint64LE(buf *bytes.Buffer, v uint64) {
	for i := 0; i < 8; i++ {
		buf.WriteByte(byte(v >> (8 * uint(i))))
	}
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// Serialize encodes the transaction, including the BIP144 segwit
// marker/flag and per-input witness stacks when any input carries one.
func (tx *Tx) Serialize() []byte {
	var buf bytes.Buffer
	writeUint32LE(&buf, tx.Version)

	witness := tx.hasWitness()
	if witness {
		buf.WriteByte(0x00)
		buf.WriteByte(0x01)
	}

	writeVarInt(&buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf.Write(reversed(in.PrevTxID))
		writeUint32LE(&buf, in.PrevVout)
		writeVarInt(&buf, 0) // empty scriptSig: Taproot spends carry no scriptSig
		writeUint32LE(&buf, in.Sequence)
	}

	writeVarInt(&buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		writeUint64LE(&buf, out.Value)
		writeVarInt(&buf, uint64(len(out.ScriptPubKey)))
		buf.Write(out.ScriptPubKey)
	}

	if witness {
		for _, in := range tx.Inputs {
			writeVarInt(&buf, uint64(len(in.Witness)))
			for _, item := range in.Witness {
				writeVarInt(&buf, uint64(len(item)))
				buf.Write(item)
			}
		}
	}

	writeUint32LE(&buf, tx.LockTime)

	return buf.Bytes()
}

// serializeNoWitness is used for txid computation, which per BIP141 always
// excludes the witness data.
func (tx *Tx) serializeNoWitness() []byte {
	var buf bytes.Buffer
	writeUint32LE(&buf, tx.Version)

	writeVarInt(&buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf.Write(reversed(in.PrevTxID))
		writeUint32LE(&buf, in.PrevVout)
		writeVarInt(&buf, 0)
		writeUint32LE(&buf, in.Sequence)
	}

	writeVarInt(&buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		writeUint64LE(&buf, out.Value)
		writeVarInt(&buf, uint64(len(out.ScriptPubKey)))
		buf.Write(out.ScriptPubKey)
	}

	writeUint32LE(&buf, tx.LockTime)

	return buf.Bytes()
}

func doubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// TxID returns the transaction's display-order (big-endian) hex txid.
func (tx *Tx) TxID() string {
	h := doubleSHA256(tx.serializeNoWitness())
	return hex.EncodeToString(reversed(h))
}

// Hex returns the full (witness-inclusive) serialized transaction as hex,
// the form broadcast through the Ordinals provider.
func (tx *Tx) Hex() string {
	return hex.EncodeToString(tx.Serialize())
}

// VSize returns the transaction's weight-discounted virtual size.
func (tx *Tx) VSize() int {
	withWitness := tx.Serialize()
	noWitness := tx.serializeNoWitness()
	weight := 3*len(noWitness) + len(withWitness)
	return (weight + 3) / 4
}

// CommitParams describes the inputs to BuildCommitTransaction.
type CommitParams struct {
	FundingInputs  []UTXO
	CommitAmount   uint64 // value of the P2TR commit output (RevealDustValue + reveal fee)
	OutputKeyXOnly []byte // tweaked Taproot output key for the commit output
	ChangeAmount   uint64 // 0 if no change
	ChangeScript   []byte
}

// BuildCommitTransaction assembles the commit transaction: spends the
// selected funding UTXOs to a single P2TR output derived from the
// inscription's tapscript commitment, plus an optional change output.
// The funding inputs' witnesses are left empty; signing is the caller's
// (or an ExternalSigner's) responsibility.
func BuildCommitTransaction(p CommitParams) (*Tx, error) {
	if len(p.FundingInputs) == 0 {
		return nil, errors.NewValidationError("commit transaction requires at least one funding input")
	}

	tx := NewTx()
	for _, u := range p.FundingInputs {
		prevID, err := hex.DecodeString(u.TxID)
		if err != nil {
			return nil, errors.NewValidationError("invalid funding utxo txid %q: %v", u.TxID, err)
		}
		tx.Inputs = append(tx.Inputs, &TxIn{PrevTxID: prevID, PrevVout: u.Vout, Sequence: 0xfffffffd})
	}

	tx.Outputs = append(tx.Outputs, &TxOut{Value: p.CommitAmount, ScriptPubKey: P2TRScriptPubKey(p.OutputKeyXOnly)})

	if p.ChangeAmount > 0 {
		tx.Outputs = append(tx.Outputs, &TxOut{Value: p.ChangeAmount, ScriptPubKey: p.ChangeScript})
	}

	return tx, nil
}

// RevealParams describes the inputs to BuildRevealTransaction.
type RevealParams struct {
	CommitTxID       string
	CommitVout       uint32
	CommitAmount     uint64
	InternalKeyXOnly []byte
	OutputParity     byte
	Content          InscriptionContent
	RecipientScript  []byte // P2TR scriptPubKey receiving the inscribed satoshi
	Signature        []byte // 64-byte schnorr signature over the reveal input; nil until signed
}

// BuildRevealTransaction assembles the reveal transaction: spends the
// commit output via a script-path spend that reveals the tapscript leaf
// (signature, leaf script, control block) in its witness, producing a
// single dust-value output holding the inscribed satoshi as its first
// satoshi — the permanent identifier for did:btco.
func BuildRevealTransaction(p RevealParams) (*Tx, error) {
	leaf, err := BuildTapLeafScript(p.InternalKeyXOnly, p.Content)
	if err != nil {
		return nil, err
	}

	prevID, err := hex.DecodeString(p.CommitTxID)
	if err != nil {
		return nil, errors.NewValidationError("invalid commit txid %q: %v", p.CommitTxID, err)
	}

	controlBlock := ControlBlock(p.InternalKeyXOnly, p.OutputParity)

	witness := [][]byte{}
	if len(p.Signature) > 0 {
		witness = append(witness, p.Signature)
	}
	witness = append(witness, leaf, controlBlock)

	tx := NewTx()
	tx.Inputs = append(tx.Inputs, &TxIn{
		PrevTxID: prevID,
		PrevVout: p.CommitVout,
		Sequence: 0xfffffffd,
		Witness:  witness,
	})
	tx.Outputs = append(tx.Outputs, &TxOut{Value: RevealDustValue, ScriptPubKey: p.RecipientScript})

	return tx, nil
}

// RevealSighash computes the BIP341 key-path/script-path sighash (single
// input, SIGHASH_DEFAULT) that the caller's signer must sign over to
// authorize the reveal transaction's script-path spend.
//
// This is a simplified sighash: it commits to the transaction's
// outputs and the single spent input rather than implementing BIP341's
// full multi-input commitment (prevouts hash, amounts hash, scripts
// hash over every input) — sufficient for the single-input commit/reveal
// shape this SDK constructs, but not a general-purpose BIP341 signer.
func RevealSighash(tx *Tx, commitAmount uint64, commitScriptPubKey []byte, leafScript []byte) []byte {
	var buf bytes.Buffer
	buf.Write(taggedHash("TapSighash", tx.serializeNoWitness()))
	writeUint64LE(&buf, commitAmount)
	buf.Write(commitScriptPubKey)
	buf.Write(TapLeafHash(leafScript))
	return taggedHash("TapSighash", buf.Bytes())
}

// TransferParams describes the inputs to BuildTransferTransaction.
type TransferParams struct {
	InscriptionUTXO  UTXO
	RecipientScript  []byte
	ChangeScript     []byte
	ChangeAmount     uint64
	FeeSats          uint64
}

// BuildTransferTransaction spends the UTXO holding the inscribed satoshi
// to the recipient's Taproot output, preserving the inscription (the
// satoshi is the first input and the recipient output is ordered first so
// the inscribed satoshi lands in the first output per ordinal theory's
// first-in-first-out transfer rule).
func BuildTransferTransaction(p TransferParams) (*Tx, error) {
	if p.InscriptionUTXO.Satoshis <= RevealDustValue+p.FeeSats && p.ChangeAmount > 0 {
		return nil, errors.NewValidationError("inscription utxo value too small to cover fee and change")
	}

	prevID, err := hex.DecodeString(p.InscriptionUTXO.TxID)
	if err != nil {
		return nil, errors.NewValidationError("invalid inscription utxo txid %q: %v", p.InscriptionUTXO.TxID, err)
	}

	tx := NewTx()
	tx.Inputs = append(tx.Inputs, &TxIn{
		PrevTxID: prevID,
		PrevVout: p.InscriptionUTXO.Vout,
		Sequence: 0xfffffffd,
	})

	recipientValue := p.InscriptionUTXO.Satoshis - p.FeeSats - p.ChangeAmount
	tx.Outputs = append(tx.Outputs, &TxOut{Value: recipientValue, ScriptPubKey: p.RecipientScript})

	if p.ChangeAmount > 0 {
		tx.Outputs = append(tx.Outputs, &TxOut{Value: p.ChangeAmount, ScriptPubKey: p.ChangeScript})
	}

	return tx, nil
}
