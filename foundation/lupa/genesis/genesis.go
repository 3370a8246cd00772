// Package genesis maintains access to the auction genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the auction genesis file. The owner, duration, deposit
// and prize settings fix the auction configuration for the lifetime of the
// instance; they are never mutated after load.
type Genesis struct {
	Date                  time.Time         `json:"date"`
	Owner                 string            `json:"owner"`                   // Account that funds the prize and may sweep after finish.
	BiddingDurationBlocks uint64            `json:"bidding_duration_blocks"` // Number of external blocks the bidding phase stays open.
	RequiredDeposit       uint64            `json:"required_deposit"`        // Minimum stake every bidder must escrow with a bid.
	PrizeValue            uint64            `json:"prize_value"`             // Amount paid to the winner, escrowed at creation.
	Balances              map[string]uint64 `json:"balances"`                // Starting account balances on this node.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
