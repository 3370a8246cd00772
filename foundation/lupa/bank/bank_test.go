package bank_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/lupa/foundation/lupa/bank"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	accountA = bank.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	accountB = bank.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
)

func Test_Transfer(t *testing.T) {
	t.Log("Given the need to validate atomic transfers between accounts.")
	{
		t.Logf("\tTest 0:\tWhen transferring within balance.")
		{
			b, err := bank.New(map[string]uint64{string(accountA): 1000, string(accountB): 0})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the bank: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the bank.", success)

			if err := b.Transfer(accountA, accountB, 400); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to transfer: %v", failed, err)
			}

			if got := b.Balance(accountA); got != 600 {
				t.Fatalf("\t%s\tTest 0:\tShould debit the from account, got %d.", failed, got)
			}
			if got := b.Balance(accountB); got != 400 {
				t.Fatalf("\t%s\tTest 0:\tShould credit the to account, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould move the full amount between accounts.", success)
		}

		t.Logf("\tTest 1:\tWhen transferring beyond balance.")
		{
			b, err := bank.New(map[string]uint64{string(accountA): 100, string(accountB): 50})
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the bank: %v", failed, err)
			}

			err = b.Transfer(accountA, accountB, 400)
			if !errors.Is(err, bank.ErrInsufficientFunds) {
				t.Fatalf("\t%s\tTest 1:\tShould reject the transfer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the transfer.", success)

			if b.Balance(accountA) != 100 || b.Balance(accountB) != 50 {
				t.Fatalf("\t%s\tTest 1:\tShould leave both balances untouched.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave both balances untouched.", success)
		}

		t.Logf("\tTest 2:\tWhen constructing with a malformed account.")
		{
			if _, err := bank.New(map[string]uint64{"not-an-account": 10}); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject a malformed account.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a malformed account.", success)
		}
	}
}
