package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	revealNonce uint64
	revealValue uint64
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Disclose a committed bid",
	Run:   revealRun,
}

func init() {
	rootCmd.AddCommand(revealCmd)
	revealCmd.Flags().Uint64VarP(&revealNonce, "nonce", "n", 0, "Nonce used when the bid was committed.")
	revealCmd.Flags().Uint64VarP(&revealValue, "value", "v", 0, "Bid value used when the bid was committed.")
}

func revealRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	signedOp, err := engine.NewRevealOp(revealNonce, revealValue).Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	var result struct {
		Valid        bool   `json:"valid"`
		Finished     bool   `json:"finished"`
		Winner       string `json:"winner"`
		WinningValue uint64 `json:"winning_value"`
	}
	if err := post("/v1/auction/reveal", signedOp, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Println("valid:", result.Valid)
	if result.Finished {
		fmt.Printf("auction finished: winner %s at value %d\n", result.Winner, result.WinningValue)
	}
}
