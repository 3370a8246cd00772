package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var sweepURL string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Collect unrevealed deposits (owner only, private API)",
	Run:   sweepRun,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepURL, "private-url", "http://localhost:9080", "Url of the engine private API.")
}

func sweepRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	signedOp, err := engine.NewSweepOp().Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	var result struct {
		Amount uint64 `json:"amount"`
		Status string `json:"status"`
	}
	if err := postTo(sweepURL, "/v1/auction/sweep", signedOp, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d\n", result.Status, result.Amount)
}
