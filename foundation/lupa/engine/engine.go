// Package engine is the core API for the lowest-unmatched-price auction and
// implements all the business rules and processing.
//
// The engine serializes every operation behind a single mutex: each call
// reads the external height exactly once, resolves the phase from that
// reading, applies fully or rolls back fully, and only then returns. All
// value movement goes through the bank and is the last side effect of the
// operation, so a failed transfer can never leave partial bookkeeping
// behind.
package engine

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/bidbook"
	"github.com/ardanlabs/lupa/foundation/lupa/commitment"
	"github.com/ardanlabs/lupa/foundation/lupa/genesis"
	"github.com/ardanlabs/lupa/foundation/lupa/journal"
)

// EscrowAccount is the bank account the auction custodies deposits and the
// prize under. Nothing signs for this account; value only leaves it through
// auction operations.
const EscrowAccount = bank.AccountID("0x00000000000000000000000000000000000000E5")

// EventHandler defines a function that is called when events occur in the
// processing of auction operations.
type EventHandler func(v string, args ...any)

// HeightSource interface represents the behavior required to be implemented
// by any package providing the current external height.
type HeightSource interface {
	Height() uint64
}

// =============================================================================

// Config represents the configuration required to start the auction engine.
type Config struct {
	Genesis   genesis.Genesis
	Height    HeightSource
	Bank      *bank.Bank
	Storage   journal.Serializer
	EvHandler EventHandler
}

// Engine manages the auction state. The configuration fields are immutable
// after construction; all mutable state is guarded by the mutex.
type Engine struct {
	mu sync.Mutex

	owner           bank.AccountID
	endHeight       uint64
	prizeValue      uint64
	requiredDeposit uint64

	height    HeightSource
	bank      *bank.Bank
	storage   journal.Serializer
	evHandler EventHandler

	participants map[bank.AccountID]*commitment.Record
	book         *bidbook.Book
	finished     bool
	winner       bank.AccountID
	winningValue uint64

	seq       uint64
	replaying bool
}

// New constructs the auction engine. On first start the prize is escrowed
// from the owner account and the creation entry is journaled; on a restart
// the journal is replayed to rebuild identical state.
func New(cfg Config) (*Engine, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.Genesis.BiddingDurationBlocks == 0 || cfg.Genesis.RequiredDeposit == 0 || cfg.Genesis.PrizeValue == 0 {
		return nil, ErrInvalidValue
	}

	owner, err := bank.ToAccountID(cfg.Genesis.Owner)
	if err != nil {
		return nil, err
	}

	e := Engine{
		owner:           owner,
		prizeValue:      cfg.Genesis.PrizeValue,
		requiredDeposit: cfg.Genesis.RequiredDeposit,

		height:    cfg.Height,
		bank:      cfg.Bank,
		storage:   cfg.Storage,
		evHandler: ev,

		participants: make(map[bank.AccountID]*commitment.Record),
		book:         bidbook.New(),
	}

	// Replay any existing journal entries to rebuild the auction state.
	// Each entry is applied under the height it was recorded at.
	e.replaying = true
	iter := e.storage.ForEach()
	for op, err := iter.Next(); !iter.Done(); op, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := e.applyJournal(op, cfg.Genesis.BiddingDurationBlocks); err != nil {
			return nil, fmt.Errorf("replaying journal entry %d: %w", op.Seq, err)
		}

		e.seq = op.Seq
	}
	e.replaying = false

	// A fresh journal means the auction is being created right now. Escrow
	// the prize from the owner and journal the creation height.
	if e.seq == 0 {
		height := e.height.Height()
		e.endHeight = height + cfg.Genesis.BiddingDurationBlocks

		if err := e.bank.Transfer(e.owner, EscrowAccount, e.prizeValue); err != nil {
			return nil, fmt.Errorf("escrowing prize: %w", err)
		}

		create := journal.OpData{
			Seq:     1,
			Height:  height,
			Type:    journal.OpCreate,
			Account: string(e.owner),
			Amount:  e.prizeValue,
		}
		if err := e.storage.Write(create); err != nil {
			if rbErr := e.bank.Transfer(EscrowAccount, e.owner, e.prizeValue); rbErr != nil {
				return nil, fmt.Errorf("journaling creation: %w: reversing prize escrow: %w", err, rbErr)
			}
			return nil, fmt.Errorf("journaling creation: %w", err)
		}
		e.seq = 1

		e.evHandler("engine: created: owner: %s prize: %d deposit: %d end height: %d", e.owner, e.prizeValue, e.requiredDeposit, e.endHeight)
	}

	return &e, nil
}

// Shutdown cleanly brings the engine down.
func (e *Engine) Shutdown() error {
	e.storage.Close()
	return nil
}

// =============================================================================

// applyJournal re-applies a single journal entry during replay.
func (e *Engine) applyJournal(op journal.OpData, durationBlocks uint64) error {
	account, err := bank.ToAccountID(op.Account)
	if err != nil {
		return err
	}

	switch op.Type {
	case journal.OpCreate:
		if account != e.owner {
			return fmt.Errorf("creation account %s does not match genesis owner %s", account, e.owner)
		}
		e.endHeight = op.Height + durationBlocks
		return e.bank.Transfer(e.owner, EscrowAccount, e.prizeValue)

	case journal.OpBid:
		hash, err := commitment.ToHash(op.Hash)
		if err != nil {
			return err
		}
		_, err = e.applyBid(account, hash, op.Amount, op.Height)
		return err

	case journal.OpReveal:
		_, _, err := e.applyReveal(account, op.Nonce, op.Value, op.Height)
		return err

	case journal.OpWithdraw:
		_, _, err := e.applyWithdraw(account, op.Height)
		return err

	case journal.OpSweep:
		_, _, err := e.applySweep(account, op.Height)
		return err
	}

	return fmt.Errorf("unknown journal entry type %q", op.Type)
}

// record appends an applied operation to the journal. During replay the
// entries already exist so this is a no-op. The undo function reverses the
// operation when the append itself fails, keeping memory, bank and journal
// consistent with each other.
func (e *Engine) record(op journal.OpData, undo func()) error {
	if e.replaying {
		return nil
	}

	op.Seq = e.seq + 1
	if err := e.storage.Write(op); err != nil {
		undo()
		return fmt.Errorf("journaling operation: %w", err)
	}
	e.seq = op.Seq

	return nil
}
