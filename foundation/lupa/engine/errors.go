package engine

import "errors"

// Set of error variables for auction operations. Each precondition failure
// aborts the whole triggering operation with no partial state change, so a
// caller can inspect the condition and re-submit once it no longer holds.
var (
	// ErrWrongPhase is returned when an operation is invoked outside its
	// required phase.
	ErrWrongPhase = errors.New("operation not allowed in current phase")

	// ErrInvalidValue is returned when a zero-valued configuration
	// parameter is provided at creation.
	ErrInvalidValue = errors.New("configuration value must be greater than zero")

	// ErrNotOwner is returned when an owner-restricted action is invoked
	// by a non-owner.
	ErrNotOwner = errors.New("action restricted to the auction owner")

	// ErrNoBidToReveal is returned when a reveal arrives with no prior
	// commitment.
	ErrNoBidToReveal = errors.New("no bid to reveal")

	// ErrAlreadyCommitted is returned on a second bid by a participant who
	// already has a commitment. The existing commitment and deposit are
	// left untouched.
	ErrAlreadyCommitted = errors.New("participant already committed")

	// ErrAlreadyRevealed is returned when a participant reveals twice.
	ErrAlreadyRevealed = errors.New("participant already revealed")

	// ErrInsufficientDeposit is returned when a bid amount is below the
	// required deposit.
	ErrInsufficientDeposit = errors.New("bid amount below required deposit")

	// ErrNoDepositToWithdraw is returned when a withdrawal is attempted
	// with no remaining or an already settled deposit.
	ErrNoDepositToWithdraw = errors.New("no deposit to withdraw")

	// ErrAuctionNotFinished is returned when an operation requiring
	// finalization is invoked while bidding is still open.
	ErrAuctionNotFinished = errors.New("auction not finished")
)
