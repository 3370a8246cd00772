package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/lupa/foundation/lupa/engine"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Reclaim your escrowed deposit",
	Run:   withdrawRun,
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
}

func withdrawRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	signedOp, err := engine.NewWithdrawOp().Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	var result struct {
		Amount uint64 `json:"amount"`
		Status string `json:"status"`
	}
	if err := post("/v1/auction/withdraw", signedOp, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d\n", result.Status, result.Amount)
}
