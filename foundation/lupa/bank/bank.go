// Package bank maintains the in-memory account balances that stand in for
// the value-moving substrate the auction runs atop. A transfer is atomic:
// it either moves the full amount or fails and changes nothing, which is
// what lets the engine treat transfers as the last side effect of every
// operation.
package bank

import (
	"errors"
	"sync"
)

// ErrInsufficientFunds is returned when the from account cannot cover a
// transfer.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Bank manages data related to accounts that hold value on this node.
type Bank struct {
	mu       sync.RWMutex
	accounts map[AccountID]Account
}

// New constructs a new bank and applies the starting balance information.
func New(balances map[string]uint64) (*Bank, error) {
	b := Bank{
		accounts: make(map[AccountID]Account),
	}

	for accountStr, balance := range balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		b.accounts[accountID] = Account{AccountID: accountID, Balance: balance}
	}

	return &b, nil
}

// Transfer moves the specified amount between two accounts. The transfer
// fully succeeds or fails without any state change.
func (b *Bank) Transfer(fromID AccountID, toID AccountID, amount uint64) error {
	if fromID == toID {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	from := b.accounts[fromID]
	if from.Balance < amount {
		return ErrInsufficientFunds
	}
	to := b.accounts[toID]

	from.Balance -= amount
	to.Balance += amount

	from.AccountID = fromID
	to.AccountID = toID

	b.accounts[fromID] = from
	b.accounts[toID] = to

	return nil
}

// Balance returns the current balance for the specified account. Accounts
// never seen by the bank report a zero balance.
func (b *Bank) Balance(accountID AccountID) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.accounts[accountID].Balance
}

// CopyAccounts makes a copy of the current accounts in the bank.
func (b *Bank) CopyAccounts() map[AccountID]Account {
	b.mu.RLock()
	defer b.mu.RUnlock()

	accounts := make(map[AccountID]Account, len(b.accounts))
	for accountID, account := range b.accounts {
		accounts[accountID] = account
	}
	return accounts
}
