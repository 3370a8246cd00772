package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/lupa/foundation/lupa/commitment"
	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	bidNonce  uint64
	bidValue  uint64
	bidAmount uint64
)

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Commit a sealed bid",
	Long: `Computes the commitment hash binding your secret nonce to your bid
value, signs the bid operation, and escrows the deposit amount. Keep the
nonce: you need the exact same nonce and value to reveal later.`,
	Run: bidRun,
}

func init() {
	rootCmd.AddCommand(bidCmd)
	bidCmd.Flags().Uint64VarP(&bidNonce, "nonce", "n", 0, "Secret nonce binding the commitment.")
	bidCmd.Flags().Uint64VarP(&bidValue, "value", "v", 0, "Bid value to commit to.")
	bidCmd.Flags().Uint64VarP(&bidAmount, "amount", "m", 0, "Deposit amount to escrow.")
}

func bidRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	// The hash is computed locally; the nonce and value never leave
	// this machine until reveal time.
	hash := commitment.Bind(bidNonce, bidValue)

	signedOp, err := engine.NewBidOp(hash.String(), bidAmount).Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	var result map[string]any
	if err := post("/v1/auction/bid", signedOp, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Println("commitment:", hash)
	fmt.Println("status:", result["status"])
}
