// Package disk implements the ability to read and write journal entries in
// their own separate files on disk.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/ardanlabs/lupa/foundation/lupa/journal"
)

// Disk represents the serialization implementation for reading and storing
// journal entries in their own separate files on disk. This implements the
// journal.Serializer interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a new file is
// written to disk for each new entry and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// Write takes the specified journal entry and stores it on disk in a file
// labeled with the sequence number.
func (d *Disk) Write(op journal.OpData) error {

	// Marshal the entry for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(op, "", "  ")
	if err != nil {
		return err
	}

	// Create a new file for this entry and name it based on the sequence.
	f, err := os.OpenFile(d.getPath(op.Seq), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write the new entry to disk.
	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// GetOp searches the journal on disk to locate and return the contents of
// the specified entry by sequence number.
func (d *Disk) GetOp(seq uint64) (journal.OpData, error) {

	// Open the entry file for the specified sequence.
	f, err := os.OpenFile(d.getPath(seq), os.O_RDONLY, 0600)
	if err != nil {
		return journal.OpData{}, err
	}
	defer f.Close()

	// Decode the contents of the entry.
	var op journal.OpData
	if err := json.NewDecoder(f).Decode(&op); err != nil {
		return journal.OpData{}, err
	}

	return op, nil
}

// ForEach returns an iterator to walk through all the entries starting with
// sequence number 1.
func (d *Disk) ForEach() journal.Iterator {
	return &diskIterator{disk: d}
}

// Reset will clear out the journal on disk.
func (d *Disk) Reset() error {
	if err := os.RemoveAll(d.dbPath); err != nil {
		return err
	}

	return os.MkdirAll(d.dbPath, 0755)
}

// getPath forms the path to the specified entry.
func (d *Disk) getPath(seq uint64) string {
	name := strconv.FormatUint(seq, 10)
	return path.Join(d.dbPath, fmt.Sprintf("%s.json", name))
}

// =============================================================================

// diskIterator represents the iteration implementation for walking through
// and reading entries on disk. This implements the journal.Iterator
// interface.
type diskIterator struct {
	disk    *Disk  // Access to the disk storage API.
	current uint64 // Current sequence number being iterated over.
	eoj     bool   // Represents the iterator is at the end of the journal.
}

// Next retrieves the next entry from disk.
func (di *diskIterator) Next() (journal.OpData, error) {
	if di.eoj {
		return journal.OpData{}, errors.New("end of journal")
	}

	di.current++
	op, err := di.disk.GetOp(di.current)
	if errors.Is(err, fs.ErrNotExist) {
		di.eoj = true
	}

	return op, err
}

// Done returns the end of journal value.
func (di *diskIterator) Done() bool {
	return di.eoj
}
