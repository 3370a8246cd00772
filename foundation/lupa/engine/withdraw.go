package engine

import (
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/journal"
	"github.com/ardanlabs/lupa/foundation/lupa/phase"
)

// Withdraw returns a participant's escrowed deposit once bidding is over.
// A participant whose reveal was invalid may still withdraw; an invalid
// reveal disqualifies the bid from winning but does not forfeit the
// deposit. Withdrawing before revealing gives the bid up: the settled
// record can no longer reveal or win. Withdrawal works exactly once per
// participant.
func (e *Engine) Withdraw(signedOp SignedOp) (uint64, error) {
	if err := signedOp.Validate(journal.OpWithdraw); err != nil {
		return 0, err
	}

	account, err := signedOp.FromAccount()
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height.Height()

	amount, undo, err := e.applyWithdraw(account, height)
	if err != nil {
		return 0, err
	}

	op := journal.OpData{
		Height:  height,
		Type:    journal.OpWithdraw,
		Account: string(account),
		Amount:  amount,
	}
	if err := e.record(op, undo); err != nil {
		return 0, err
	}

	e.evHandler("treasury: deposit withdrawn: account: %s amount: %d", account, amount)

	return amount, nil
}

// applyWithdraw performs the business logic for releasing a deposit. The
// settled mark is in place before the transfer is issued so a payee can
// never observe an unsettled record mid-payout; a failed transfer restores
// the mark.
func (e *Engine) applyWithdraw(account bank.AccountID, height uint64) (uint64, func(), error) {
	if phase.Resolve(e.finished, height, e.endHeight) == phase.Bidding {
		return 0, nil, ErrAuctionNotFinished
	}

	rec, exists := e.participants[account]
	if !exists || rec.Deposit == 0 || rec.Settled {
		return 0, nil, ErrNoDepositToWithdraw
	}

	amount := rec.Deposit
	rec.Settled = true

	if err := e.bank.Transfer(EscrowAccount, account, amount); err != nil {
		rec.Settled = false
		return 0, nil, err
	}

	undo := func() {
		e.bank.Transfer(account, EscrowAccount, amount)
		rec.Settled = false
	}

	return amount, undo, nil
}
