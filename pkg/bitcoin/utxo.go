package bitcoin

import (
	"sort"

	"github.com/originals-sdk/sdk/errors"
)

// SelectionRequest is the input to SelectUTXOs.
type SelectionRequest struct {
	UTXOs            []UTXO
	RecipientAmount  uint64
	FeeRate          float64 // sat/vB
	OutputCount      int     // non-change outputs (recipient + any reveal output)
	Inscription      *InscriptionContent
	InternalKeyXOnly []byte
}

// Selection is the result of a successful SelectUTXOs call.
type Selection struct {
	Inputs          []UTXO
	RecipientAmount uint64
	ChangeAmount    uint64
	HasChange       bool
	Fee             uint64
	VBytes          int
}

// SelectUTXOs walks candidate UTXOs largest-first, recomputing the vbyte
// estimate for both a with-change and a without-change transaction at
// each step, per spec §4.5. A with-change selection is only accepted if
// the resulting change clears the P2TR dust threshold; otherwise the
// engine looks for a without-change selection where the excess folds
// entirely into the fee. Fails with InsufficientFunds if no UTXO subset
// covers either form.
func SelectUTXOs(req SelectionRequest) (*Selection, error) {
	candidates := make([]UTXO, len(req.UTXOs))
	copy(candidates, req.UTXOs)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Satoshis > candidates[j].Satoshis
	})

	var available uint64
	for i, u := range candidates {
		available += u.Satoshis
		inputs := candidates[:i+1]

		vbytesChange, err := EstimateVBytes(len(inputs), req.OutputCount+1, req.Inscription, req.InternalKeyXOnly)
		if err != nil {
			return nil, err
		}
		feeChange := EstimateFee(vbytesChange, req.FeeRate)

		if available > req.RecipientAmount+feeChange {
			changeAmount := available - req.RecipientAmount - feeChange
			if changeAmount >= DustThreshold {
				return &Selection{
					Inputs:          append([]UTXO{}, inputs...),
					RecipientAmount: req.RecipientAmount,
					ChangeAmount:    changeAmount,
					HasChange:       true,
					Fee:             feeChange,
					VBytes:          vbytesChange,
				}, nil
			}
		}

		vbytesNoChange, err := EstimateVBytes(len(inputs), req.OutputCount, req.Inscription, req.InternalKeyXOnly)
		if err != nil {
			return nil, err
		}

		if available >= req.RecipientAmount {
			feeNoChange := available - req.RecipientAmount
			minFee := EstimateFee(vbytesNoChange, req.FeeRate)
			if feeNoChange >= minFee {
				return &Selection{
					Inputs:          append([]UTXO{}, inputs...),
					RecipientAmount: req.RecipientAmount,
					ChangeAmount:    0,
					HasChange:       false,
					Fee:             feeNoChange,
					VBytes:          vbytesNoChange,
				}, nil
			}
		}
	}

	return nil, errors.NewInsufficientFundsError(
		"available %d sats cannot cover recipient amount %d plus fees", available, req.RecipientAmount)
}
