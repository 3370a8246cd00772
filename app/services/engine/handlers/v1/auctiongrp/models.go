package auctiongrp

import (
	"math/big"

	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/engine"
)

// submitBid is what a wallet sends to commit a sealed bid.
type submitBid struct {
	Hash   string   `json:"hash" validate:"required"`
	Amount uint64   `json:"amount" validate:"required"`
	V      *big.Int `json:"v" validate:"required"`
	R      *big.Int `json:"r" validate:"required"`
	S      *big.Int `json:"s" validate:"required"`
}

// submitReveal is what a wallet sends to disclose a committed bid. A zero
// nonce is a legal signing choice so only the signature fields are required.
type submitReveal struct {
	Nonce uint64   `json:"nonce"`
	Value uint64   `json:"value"`
	V     *big.Int `json:"v" validate:"required"`
	R     *big.Int `json:"r" validate:"required"`
	S     *big.Int `json:"s" validate:"required"`
}

// submitSigned is what a wallet sends for operations whose payload is just
// the operation kind, like withdraw and sweep.
type submitSigned struct {
	V *big.Int `json:"v" validate:"required"`
	R *big.Int `json:"r" validate:"required"`
	S *big.Int `json:"s" validate:"required"`
}

// =============================================================================

// bidResult is returned after a bid is accepted.
type bidResult struct {
	Account bank.AccountID `json:"account"`
	Name    string         `json:"name"`
	Amount  uint64         `json:"amount"`
	Status  string         `json:"status"`
}

// revealResult is returned after a reveal is processed. Valid reports the
// commitment check; a false value is a recorded outcome, not a failure.
type revealResult struct {
	Account      bank.AccountID `json:"account"`
	Name         string         `json:"name"`
	Value        uint64         `json:"value"`
	Valid        bool           `json:"valid"`
	BucketCount  int            `json:"bucket_count"`
	Unmatched    bool           `json:"unmatched"`
	Finished     bool           `json:"finished"`
	Winner       bank.AccountID `json:"winner,omitempty"`
	WinningValue uint64         `json:"winning_value,omitempty"`
}

// withdrawResult is returned after a deposit is released.
type withdrawResult struct {
	Account bank.AccountID `json:"account"`
	Name    string         `json:"name"`
	Amount  uint64         `json:"amount"`
	Status  string         `json:"status"`
}

// stateResult is the public view of the auction.
type stateResult struct {
	Phase           string         `json:"phase"`
	Height          uint64         `json:"height"`
	EndHeight       uint64         `json:"end_height"`
	Owner           bank.AccountID `json:"owner"`
	PrizeValue      uint64         `json:"prize_value"`
	RequiredDeposit uint64         `json:"required_deposit"`
	Participants    int            `json:"participants"`
	RevealedValues  int            `json:"revealed_values"`
	Winner          bank.AccountID `json:"winner,omitempty"`
	WinningValue    uint64         `json:"winning_value,omitempty"`
}

// toStateResult converts an engine state snapshot for the client.
func toStateResult(state engine.State) stateResult {
	return stateResult{
		Phase:           state.Phase.String(),
		Height:          state.Height,
		EndHeight:       state.EndHeight,
		Owner:           state.Owner,
		PrizeValue:      state.PrizeValue,
		RequiredDeposit: state.RequiredDeposit,
		Participants:    state.Participants,
		RevealedValues:  state.RevealedValues,
		Winner:          state.Winner,
		WinningValue:    state.WinningValue,
	}
}

// balanceResult is returned for account balance queries.
type balanceResult struct {
	Account bank.AccountID `json:"account"`
	Name    string         `json:"name"`
	Balance uint64         `json:"balance"`
}
