// Package commitment implements the commit-reveal ledger for sealed bids.
// The package is a set of free functions operating on an explicit Record
// owned by the caller. The same binding function produces the commitment
// hash on the wallet side and verifies the disclosure on the engine side;
// mixing two hash primitives between the two sides silently breaks the
// privacy binding.
package commitment

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrAlreadyCommitted is returned on a second commit attempt. The
	// existing commitment is never overwritten.
	ErrAlreadyCommitted = errors.New("commitment already stored")

	// ErrNoCommitment is returned when a reveal arrives for a record
	// that never committed.
	ErrNoCommitment = errors.New("no commitment stored")

	// ErrAlreadyRevealed is returned when a record is revealed twice.
	ErrAlreadyRevealed = errors.New("commitment already revealed")
)

// HashSize is the byte length of a commitment hash.
const HashSize = 32

// Hash is the fixed-size commitment value stored at bid time.
type Hash [HashSize]byte

// String implements the fmt.Stringer interface.
func (h Hash) String() string {
	return hexutil.Encode(h[:])
}

// ToHash converts a hex-encoded string into a commitment hash and validates
// the string is formatted correctly.
func ToHash(hex string) (Hash, error) {
	data, err := hexutil.Decode(hex)
	if err != nil {
		return Hash{}, err
	}
	if len(data) != HashSize {
		return Hash{}, errors.New("invalid commitment hash length")
	}

	var h Hash
	copy(h[:], data)
	return h, nil
}

// Bind computes the commitment hash binding a nonce to a bid value. The
// encoding is 8 bytes of big endian nonce followed by 8 bytes of big endian
// value, hashed with Keccak-256.
func Bind(nonce uint64, value uint64) Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], nonce)
	binary.BigEndian.PutUint64(buf[8:], value)

	var h Hash
	copy(h[:], crypto.Keccak256(buf[:]))
	return h
}

// =============================================================================

// Record holds the commit-reveal state for a single participant. A record is
// created on first commit and mutated only through the functions in this
// package, always under the engine's serialization.
type Record struct {
	Hash     Hash   // Commitment stored at bid time, immutable once set.
	Deposit  uint64 // Amount escrowed at bid time, immutable once set.
	Revealed bool   // The participant disclosed a nonce/value pair.
	Value    uint64 // Disclosed bid value, meaningful only when Revealed.
	Valid    bool   // The disclosure matched the stored commitment.
	Settled  bool   // The deposit left custody. Monotone, never reversed.
}

// Commit stores the commitment hash and escrowed amount on a fresh record.
// A record that already carries a commitment is left untouched.
func Commit(rec *Record, hash Hash, deposit uint64) error {
	if rec.Deposit != 0 {
		return ErrAlreadyCommitted
	}

	rec.Hash = hash
	rec.Deposit = deposit
	return nil
}

// Reveal verifies a disclosed nonce/value pair against the stored commitment
// and records the outcome. A mismatch is not an error: the reveal is recorded
// with Valid false and the caller observes the result. Only the absence of a
// commitment or a duplicate reveal fails the call.
func Reveal(rec *Record, nonce uint64, value uint64) (bool, error) {
	if rec.Deposit == 0 {
		return false, ErrNoCommitment
	}
	if rec.Revealed {
		return false, ErrAlreadyRevealed
	}

	rec.Revealed = true
	rec.Value = value
	rec.Valid = Bind(nonce, value) == rec.Hash

	return rec.Valid, nil
}
