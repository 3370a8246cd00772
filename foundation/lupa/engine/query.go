package engine

import (
	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/bidbook"
	"github.com/ardanlabs/lupa/foundation/lupa/commitment"
	"github.com/ardanlabs/lupa/foundation/lupa/phase"
)

// State is a point-in-time snapshot of the auction for queries. The phase
// is resolved from a single height reading taken for the snapshot.
type State struct {
	Phase           phase.Phase
	Height          uint64
	EndHeight       uint64
	Owner           bank.AccountID
	PrizeValue      uint64
	RequiredDeposit uint64
	Participants    int
	RevealedValues  int
	Finished        bool
	Winner          bank.AccountID
	WinningValue    uint64
}

// RetrieveState returns a snapshot of the current auction state.
func (e *Engine) RetrieveState() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height.Height()

	return State{
		Phase:           phase.Resolve(e.finished, height, e.endHeight),
		Height:          height,
		EndHeight:       e.endHeight,
		Owner:           e.owner,
		PrizeValue:      e.prizeValue,
		RequiredDeposit: e.requiredDeposit,
		Participants:    len(e.participants),
		RevealedValues:  e.book.Len(),
		Finished:        e.finished,
		Winner:          e.winner,
		WinningValue:    e.winningValue,
	}
}

// RetrieveParticipants makes a copy of the current participant records.
func (e *Engine) RetrieveParticipants() map[bank.AccountID]commitment.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	participants := make(map[bank.AccountID]commitment.Record, len(e.participants))
	for account, rec := range e.participants {
		participants[account] = *rec
	}
	return participants
}

// RetrieveBuckets makes a copy of the current bid book buckets.
func (e *Engine) RetrieveBuckets() map[uint64]bidbook.Bucket {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.Copy()
}

// Holdings returns the value currently custodied by the auction. At every
// quiescent point this equals the prize (while unpaid) plus the deposits of
// all unsettled participants.
func (e *Engine) Holdings() uint64 {
	return e.bank.Balance(EscrowAccount)
}

// Owner returns the account that created the auction.
func (e *Engine) Owner() bank.AccountID {
	return e.owner
}
