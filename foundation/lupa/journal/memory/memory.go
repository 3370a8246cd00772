// Package memory implements the ability to read and write journal entries
// to memory using a slice. Used by tests and local runs that don't need
// durability.
package memory

import (
	"errors"
	"sync"

	"github.com/ardanlabs/lupa/foundation/lupa/journal"
)

// Memory represents the serialization implementation for reading and storing
// journal entries in memory using a slice. This implements the
// journal.Serializer interface.
type Memory struct {
	mu  sync.RWMutex
	ops []journal.OpData
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified journal entry and stores it in memory.
func (m *Memory) Write(op journal.OpData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.ops))+1 != op.Seq {
		return errors.New("journal entry is out of order")
	}

	m.ops = append(m.ops, op)

	return nil
}

// GetOp searches the journal to locate and return the contents of the
// specified entry by sequence number.
func (m *Memory) GetOp(seq uint64) (journal.OpData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if seq == 0 || seq > uint64(len(m.ops)) {
		return journal.OpData{}, errors.New("journal entry does not exist")
	}

	return m.ops[seq-1], nil
}

// ForEach returns an iterator to walk through all the entries starting with
// sequence number 1.
func (m *Memory) ForEach() journal.Iterator {
	return &memoryIterator{storage: m}
}

// Reset will clear out the journal in memory.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = []journal.OpData{}
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking through
// and reading entries in memory. This implements the journal.Iterator
// interface.
type memoryIterator struct {
	storage *Memory // Access to the memory storage API.
	current uint64  // Current sequence number being iterated over.
	eoj     bool    // Represents the iterator is at the end of the journal.
}

// Next retrieves the next entry from memory.
func (mi *memoryIterator) Next() (journal.OpData, error) {
	if mi.eoj {
		return journal.OpData{}, errors.New("end of journal")
	}

	mi.current++
	op, err := mi.storage.GetOp(mi.current)
	if err != nil {
		mi.eoj = true
	}

	return op, err
}

// Done returns the end of journal value.
func (mi *memoryIterator) Done() bool {
	return mi.eoj
}
