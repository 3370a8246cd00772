package engine

import (
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/commitment"
	"github.com/ardanlabs/lupa/foundation/lupa/journal"
	"github.com/ardanlabs/lupa/foundation/lupa/phase"
)

// Sweep moves the deposits of participants who never revealed into the
// owner account once the auction is finished. Only the owner may sweep.
// Participants who revealed, validly or not, are never swept; their
// deposits remain theirs to withdraw.
func (e *Engine) Sweep(signedOp SignedOp) (uint64, error) {
	if err := signedOp.Validate(journal.OpSweep); err != nil {
		return 0, err
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height.Height()

	total, undo, err := e.applySweep(account, height)
	if err != nil {
		return 0, err
	}

	op := journal.OpData{
		Height:  height,
		Type:    journal.OpSweep,
		Account: string(account),
		Amount:  total,
	}
	if err := e.record(op, undo); err != nil {
		return 0, err
	}

	e.evHandler("treasury: unrevealed deposits swept: owner: %s amount: %d", account, total)

	return total, nil
}

// applySweep performs the business logic for collecting unrevealed
// deposits. Every affected record is marked settled before the single
// transfer is issued; a failed transfer restores every mark.
func (e *Engine) applySweep(account bank.AccountID, height uint64) (uint64, func(), error) {
	if account != e.owner {
		return 0, nil, ErrNotOwner
	}

	if phase.Resolve(e.finished, height, e.endHeight) != phase.Finished {
		return 0, nil, ErrAuctionNotFinished
	}

	var total uint64
	var swept []*commitment.Record
	for _, rec := range e.participants {
		if rec.Revealed || rec.Settled || rec.Deposit == 0 {
			continue
		}
		rec.Settled = true
		total += rec.Deposit
		swept = append(swept, rec)
	}

	if total == 0 {
		return 0, func() {}, nil
	}

	restore := func() {
		for _, rec := range swept {
			rec.Settled = false
		}
	}

	if err := e.bank.Transfer(EscrowAccount, e.owner, total); err != nil {
		restore()
		return 0, nil, err
	}

	undo := func() {
		e.bank.Transfer(e.owner, EscrowAccount, total)
		restore()
	}

	return total, undo, nil
}
