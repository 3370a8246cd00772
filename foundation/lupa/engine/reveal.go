package engine

import (
	"errors"

	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/bidbook"
	"github.com/ardanlabs/lupa/foundation/lupa/commitment"
	"github.com/ardanlabs/lupa/foundation/lupa/journal"
	"github.com/ardanlabs/lupa/foundation/lupa/phase"
)

// RevealResult reports the outcome of a reveal back to the caller. A hash
// mismatch is a successful call with Valid false, not an error.
type RevealResult struct {
	Valid        bool
	Bucket       bidbook.Bucket
	Finished     bool
	Winner       bank.AccountID
	WinningValue uint64
}

// Reveal accepts a signed disclosure of a committed bid. The first reveal
// whose value lands in an unmatched bucket wins the auction on the spot:
// the prize pays out and the auction finishes. A numerically lower value
// revealed later can never win; settlement is first-unmatched in submission
// order, not global-lowest.
func (e *Engine) Reveal(signedOp SignedOp) (RevealResult, error) {
	if err := signedOp.Validate(journal.OpReveal); err != nil {
		return RevealResult{}, err
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return RevealResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height.Height()

	result, undo, err := e.applyReveal(account, signedOp.Nonce, signedOp.Value, height)
	if err != nil {
		return RevealResult{}, err
	}

	op := journal.OpData{
		Height:  height,
		Type:    journal.OpReveal,
		Account: string(account),
		Nonce:   signedOp.Nonce,
		Value:   signedOp.Value,
	}
	if err := e.record(op, undo); err != nil {
		return RevealResult{}, err
	}

	rec := e.participants[account]
	e.evHandler("ledger: reveal attempted: account: %s deposit: %d value: %d valid: %v", account, rec.Deposit, signedOp.Value, result.Valid)
	if result.Valid {
		e.evHandler("book: bucket updated: value: %d count: %d unmatched: %v", signedOp.Value, result.Bucket.Count, result.Bucket.Unmatched)
	}
	if result.Finished {
		e.evHandler("engine: auction finished: winner: %s value: %d", result.Winner, result.WinningValue)
	}

	return result, nil
}

// applyReveal performs the business logic for verifying a disclosure,
// updating the bid book and, on the first unmatched reveal, finalizing the
// auction. The winner, terminal flag and settled mark are all in place
// before the prize transfer is issued; if the transfer fails every mutation
// is restored and the auction stays open.
func (e *Engine) applyReveal(account bank.AccountID, nonce uint64, value uint64, height uint64) (RevealResult, func(), error) {
	if phase.Resolve(e.finished, height, e.endHeight) != phase.Reveal {
		return RevealResult{}, nil, ErrWrongPhase
	}

	rec, exists := e.participants[account]
	if !exists {
		return RevealResult{}, nil, ErrNoBidToReveal
	}

	// A settled record has no stake behind it. A participant who already
	// withdrew the deposit cannot come back and win with the same bid.
	if rec.Settled {
		return RevealResult{}, nil, ErrNoBidToReveal
	}

	prevRec := *rec

	valid, err := commitment.Reveal(rec, nonce, value)
	if err != nil {
		switch {
		case errors.Is(err, commitment.ErrNoCommitment):
			return RevealResult{}, nil, ErrNoBidToReveal
		case errors.Is(err, commitment.ErrAlreadyRevealed):
			return RevealResult{}, nil, ErrAlreadyRevealed
		}
		return RevealResult{}, nil, err
	}

	result := RevealResult{Valid: valid}

	// An invalid reveal is recorded on the ledger but never touches the
	// bid book. The deposit stays withdrawable; only winning is off the
	// table for this participant.
	if !valid {
		undo := func() {
			*rec = prevRec
		}
		return result, undo, nil
	}

	prevBucket, bucketExisted := e.book.Bucket(value)
	result.Bucket = e.book.Record(value)

	if !result.Bucket.Unmatched {
		undo := func() {
			e.book.Restore(value, prevBucket, bucketExisted)
			*rec = prevRec
		}
		return result, undo, nil
	}

	// First unmatched reveal: this participant wins right now. Mark all
	// bookkeeping terminal, then pay the prize as the last side effect.
	// The winner's deposit settles with the payout; the prize replaces it.
	e.finished = true
	e.winner = account
	e.winningValue = value
	rec.Settled = true

	rollback := func() {
		e.finished = false
		e.winner = ""
		e.winningValue = 0
		e.book.Restore(value, prevBucket, bucketExisted)
		*rec = prevRec
	}

	if err := e.bank.Transfer(EscrowAccount, account, e.prizeValue); err != nil {
		rollback()
		return RevealResult{}, nil, err
	}

	result.Finished = true
	result.Winner = account
	result.WinningValue = value

	undo := func() {
		e.bank.Transfer(account, EscrowAccount, e.prizeValue)
		rollback()
	}

	return result, undo, nil
}
