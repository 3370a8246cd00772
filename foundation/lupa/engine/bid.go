package engine

import (
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/commitment"
	"github.com/ardanlabs/lupa/foundation/lupa/journal"
	"github.com/ardanlabs/lupa/foundation/lupa/phase"
)

// Bid accepts a signed sealed bid for the auction. The full submitted
// amount is escrowed, never clamped to the required deposit; any excess is
// retained as part of the participant's deposit.
func (e *Engine) Bid(signedOp SignedOp) error {
	if err := signedOp.Validate(journal.OpBid); err != nil {
		return err
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return err
	}

	hash, err := commitment.ToHash(signedOp.Hash)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height.Height()

	undo, err := e.applyBid(account, hash, signedOp.Amount, height)
	if err != nil {
		return err
	}

	op := journal.OpData{
		Height:  height,
		Type:    journal.OpBid,
		Account: string(account),
		Hash:    signedOp.Hash,
		Amount:  signedOp.Amount,
	}
	if err := e.record(op, undo); err != nil {
		return err
	}

	e.evHandler("treasury: deposit received: account: %s amount: %d", account, signedOp.Amount)
	e.evHandler("ledger: commitment stored: account: %s hash: %s", account, hash)

	return nil
}

// applyBid performs the business logic for storing a commitment and
// escrowing the deposit. All bookkeeping is in place before the transfer is
// issued; a failed transfer leaves no trace of the bid.
func (e *Engine) applyBid(account bank.AccountID, hash commitment.Hash, amount uint64, height uint64) (func(), error) {
	if phase.Resolve(e.finished, height, e.endHeight) != phase.Bidding {
		return nil, ErrWrongPhase
	}

	if amount < e.requiredDeposit {
		return nil, ErrInsufficientDeposit
	}

	if _, exists := e.participants[account]; exists {
		return nil, ErrAlreadyCommitted
	}

	rec := commitment.Record{}
	if err := commitment.Commit(&rec, hash, amount); err != nil {
		return nil, err
	}
	e.participants[account] = &rec

	// The transfer is the last side effect. The bank moves the full amount
	// or nothing, so on failure dropping the record restores the exact
	// prior state.
	if err := e.bank.Transfer(account, EscrowAccount, amount); err != nil {
		delete(e.participants, account)
		return nil, err
	}

	undo := func() {
		delete(e.participants, account)
		e.bank.Transfer(EscrowAccount, account, amount)
	}

	return undo, nil
}
