package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/originals-sdk/sdk/pkg/adapters"
)

type fakeUTXOSource struct {
	utxos []UTXO
}

func (f *fakeUTXOSource) ListUTXOs(_ context.Context) ([]UTXO, error) {
	return f.utxos, nil
}

type fakeTapscriptSigner struct{}

func (fakeTapscriptSigner) SignTapscript(_ context.Context, _ []byte, _ []byte) ([]byte, error) {
	return bytes.Repeat([]byte{0x42}, 64), nil
}

type fakeBroadcaster struct {
	seen []string
}

func (b *fakeBroadcaster) Broadcast(_ context.Context, rawTxHex string) (string, error) {
	b.seen = append(b.seen, rawTxHex)
	return hex.EncodeToString(bytes.Repeat([]byte{byte(len(b.seen))}, 32)), nil
}

func TestLocalOrdinalsProviderCreateInscriptionEndToEnd(t *testing.T) {
	utxos := &fakeUTXOSource{utxos: []UTXO{
		{TxID: hex.EncodeToString(bytes.Repeat([]byte{0x01}, 32)), Vout: 0, Satoshis: 100_000},
	}}
	broadcaster := &fakeBroadcaster{}
	internalKey := bytes.Repeat([]byte{0x07}, 32)
	changeScript := P2TRScriptPubKey(bytes.Repeat([]byte{0x08}, 32))

	provider := NewLocalOrdinalsProvider(utxos, fakeTapscriptSigner{}, broadcaster, internalKey, changeScript, 1.0)

	ins, err := provider.CreateInscription(context.Background(), inscriptionRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, ins.InscriptionID)
	assert.NotEmpty(t, ins.CommitTxID)
	assert.NotEmpty(t, ins.RevealTxID)
	assert.Len(t, broadcaster.seen, 2) // commit then reveal

	found, err := provider.GetInscriptionByID(context.Background(), ins.InscriptionID)
	require.NoError(t, err)
	assert.Equal(t, ins.Satoshi, found.Satoshi)

	bySat, err := provider.GetInscriptionsBySatoshi(context.Background(), ins.Satoshi)
	require.NoError(t, err)
	assert.Len(t, bySat, 1)
}

func TestLocalOrdinalsProviderCreateInscriptionInsufficientFunds(t *testing.T) {
	utxos := &fakeUTXOSource{utxos: []UTXO{{TxID: hex.EncodeToString(bytes.Repeat([]byte{0x01}, 32)), Vout: 0, Satoshis: 100}}}
	provider := NewLocalOrdinalsProvider(utxos, fakeTapscriptSigner{}, &fakeBroadcaster{}, bytes.Repeat([]byte{0x07}, 32), nil, 1.0)

	_, err := provider.CreateInscription(context.Background(), inscriptionRequest())
	require.Error(t, err)
}

func inscriptionRequest() adapters.CreateInscriptionRequest {
	return adapters.CreateInscriptionRequest{Data: []byte("hello"), ContentType: "text/plain", FeeRate: 1.0}
}
