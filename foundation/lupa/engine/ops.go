package engine

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ardanlabs/lupa/foundation/lupa/bank"
	"github.com/ardanlabs/lupa/foundation/lupa/journal"
	"github.com/ardanlabs/lupa/foundation/lupa/signature"
)

// Op is the operation data a participant submits to the auction. The kind
// is part of the signed payload so a signature produced for one operation
// can never be replayed as another.
type Op struct {
	Kind   journal.OpType `json:"kind"`
	Hash   string         `json:"hash,omitempty"`   // Bid: hex-encoded commitment hash.
	Amount uint64         `json:"amount,omitempty"` // Bid: amount to escrow.
	Nonce  uint64         `json:"nonce,omitempty"`  // Reveal: secret nonce.
	Value  uint64         `json:"value,omitempty"`  // Reveal: disclosed bid value.
}

// NewBidOp constructs an operation that commits a sealed bid.
func NewBidOp(hash string, amount uint64) Op {
	return Op{Kind: journal.OpBid, Hash: hash, Amount: amount}
}

// NewRevealOp constructs an operation that discloses a committed bid.
func NewRevealOp(nonce uint64, value uint64) Op {
	return Op{Kind: journal.OpReveal, Nonce: nonce, Value: value}
}

// NewWithdrawOp constructs an operation that reclaims a deposit.
func NewWithdrawOp() Op {
	return Op{Kind: journal.OpWithdraw}
}

// NewSweepOp constructs the owner operation that collects the deposits of
// participants who never revealed.
func NewSweepOp() Op {
	return Op{Kind: journal.OpSweep}
}

// Sign uses the specified private key to sign the operation.
func (op Op) Sign(privateKey *ecdsa.PrivateKey) (SignedOp, error) {
	v, r, s, err := signature.Sign(op, privateKey)
	if err != nil {
		return SignedOp{}, err
	}

	return SignedOp{Op: op, V: v, R: r, S: s}, nil
}

// =============================================================================

// SignedOp is a signed version of the operation. This is how clients like
// the wallet provide operations for application to the auction.
type SignedOp struct {
	Op
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with the lupa id.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// Validate verifies the operation has a proper signature that conforms to
// our standards and carries the expected kind.
func (op SignedOp) Validate(kind journal.OpType) error {
	if op.Kind != kind {
		return fmt.Errorf("operation kind %q does not match endpoint %q", op.Kind, kind)
	}

	if op.V == nil || op.R == nil || op.S == nil {
		return errors.New("operation is missing its signature")
	}

	return signature.VerifySignature(op.V, op.R, op.S)
}

// FromAccount extracts the account id that signed the operation.
func (op SignedOp) FromAccount() (bank.AccountID, error) {
	address, err := signature.FromAddress(op.Op, op.V, op.R, op.S)
	return bank.AccountID(address), err
}

// SignatureString returns the signature as a string.
func (op SignedOp) SignatureString() string {
	return signature.SignatureString(op.V, op.R, op.S)
}

// String implements the fmt.Stringer interface for logging.
func (op SignedOp) String() string {
	account, err := op.FromAccount()
	if err != nil {
		account = "unknown"
	}

	return fmt.Sprintf("%s:%s", account, op.Kind)
}
