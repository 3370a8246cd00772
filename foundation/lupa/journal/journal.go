// Package journal defines the append-only log of applied auction operations
// and the behavior required of any package that persists it. The engine
// writes one entry per successfully applied operation and replays the
// journal on startup to rebuild identical state.
package journal

// OpType identifies the kind of operation an entry records.
type OpType string

// The set of state-changing operations that get journaled. OpCreate is
// always the first entry and fixes the height the auction was created at.
const (
	OpCreate   OpType = "create"
	OpBid      OpType = "bid"
	OpReveal   OpType = "reveal"
	OpWithdraw OpType = "withdraw"
	OpSweep    OpType = "sweep"
)

// OpData represents one applied operation as it is serialized. The height is
// the single reading the operation executed under; replay resolves phases
// from it instead of the live height source.
type OpData struct {
	Seq     uint64 `json:"seq"`    // Position in the journal, starting at 1.
	Height  uint64 `json:"height"` // External height the operation was applied at.
	Type    OpType `json:"type"`
	Account string `json:"account"`
	Hash    string `json:"hash,omitempty"`   // Bid: commitment hash.
	Amount  uint64 `json:"amount,omitempty"` // Bid: escrowed amount.
	Nonce   uint64 `json:"nonce,omitempty"`  // Reveal: disclosed nonce.
	Value   uint64 `json:"value,omitempty"`  // Reveal: disclosed bid value.
}

// Serializer interface represents the behavior required to be implemented by
// any package providing support for storing and reading the journal.
type Serializer interface {
	Write(op OpData) error
	GetOp(seq uint64) (OpData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the journal entries.
type Iterator interface {
	Next() (OpData, error)
	Done() bool
}
