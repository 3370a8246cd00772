// Package phase derives the externally observable auction phase from the
// terminal flag and the current external height. The phase is never stored;
// it is recomputed on every call from a single height reading.
package phase

// Phase represents the lifecycle position of the auction.
type Phase int

// The set of phases an auction moves through. Bidding flips to Reveal purely
// as a function of height. Finished is sticky and set only by finalization.
const (
	Bidding Phase = iota
	Reveal
	Finished
)

// Resolve computes the phase for the specified height reading. The terminal
// flag dominates the height check so a finished auction can never report
// Bidding or Reveal again.
func Resolve(terminal bool, height uint64, endHeight uint64) Phase {
	switch {
	case terminal:
		return Finished
	case height > endHeight:
		return Reveal
	default:
		return Bidding
	}
}

// String implements the fmt.Stringer interface.
func (p Phase) String() string {
	switch p {
	case Bidding:
		return "Bidding"
	case Reveal:
		return "Reveal"
	case Finished:
		return "Finished"
	}
	return "Unknown"
}
