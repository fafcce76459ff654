package bitcoin

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommitTransactionShape(t *testing.T) {
	outputKey := bytes.Repeat([]byte{0x44}, 32)

	tx, err := BuildCommitTransaction(CommitParams{
		FundingInputs:  []UTXO{{TxID: hex.EncodeToString(bytes.Repeat([]byte{0x01}, 32)), Vout: 0, Satoshis: 100_000}},
		CommitAmount:   10_000,
		OutputKeyXOnly: outputKey,
		ChangeAmount:   89_000,
		ChangeScript:   P2TRScriptPubKey(bytes.Repeat([]byte{0x55}, 32)),
	})
	require.NoError(t, err)

	require.Len(t, tx.Inputs, 1)
	require.Len(t, tx.Outputs, 2)
	assert.Equal(t, uint64(10_000), tx.Outputs[0].Value)
	assert.Equal(t, uint64(89_000), tx.Outputs[1].Value)
	assert.NotEmpty(t, tx.TxID())
	assert.False(t, tx.hasWitness())
}

func TestBuildRevealTransactionIncludesWitness(t *testing.T) {
	internal := bytes.Repeat([]byte{0x66}, 32)
	content := InscriptionContent{Data: []byte("hi"), ContentType: "text/plain"}

	tx, err := BuildRevealTransaction(RevealParams{
		CommitTxID:       hex.EncodeToString(bytes.Repeat([]byte{0x02}, 32)),
		CommitVout:       0,
		CommitAmount:     1000,
		InternalKeyXOnly: internal,
		OutputParity:     0,
		Content:          content,
		RecipientScript:  P2TRScriptPubKey(internal),
		Signature:        bytes.Repeat([]byte{0x99}, 64),
	})
	require.NoError(t, err)

	require.Len(t, tx.Inputs, 1)
	require.Len(t, tx.Inputs[0].Witness, 3) // signature, leaf script, control block
	assert.True(t, tx.hasWitness())
	assert.Equal(t, uint64(RevealDustValue), tx.Outputs[0].Value)

	raw := tx.Serialize()
	assert.Equal(t, byte(0x00), raw[4])
	assert.Equal(t, byte(0x01), raw[5])
}

func TestTxVSizeLessThanFullSerializedSize(t *testing.T) {
	internal := bytes.Repeat([]byte{0x77}, 32)
	content := InscriptionContent{Data: bytes.Repeat([]byte{0x01}, 300), ContentType: "text/plain"}

	tx, err := BuildRevealTransaction(RevealParams{
		CommitTxID:       hex.EncodeToString(bytes.Repeat([]byte{0x03}, 32)),
		InternalKeyXOnly: internal,
		Content:          content,
		RecipientScript:  P2TRScriptPubKey(internal),
		Signature:        bytes.Repeat([]byte{0x88}, 64),
	})
	require.NoError(t, err)

	assert.Less(t, tx.VSize(), len(tx.Serialize()))
}

func TestBuildTransferTransactionPreservesSatoshiOrdering(t *testing.T) {
	tx, err := BuildTransferTransaction(TransferParams{
		InscriptionUTXO: UTXO{TxID: hex.EncodeToString(bytes.Repeat([]byte{0x04}, 32)), Vout: 0, Satoshis: 1000},
		RecipientScript: P2TRScriptPubKey(bytes.Repeat([]byte{0x09}, 32)),
		FeeSats:         200,
	})
	require.NoError(t, err)

	require.Len(t, tx.Outputs, 1)
	assert.Equal(t, uint64(800), tx.Outputs[0].Value)
}
