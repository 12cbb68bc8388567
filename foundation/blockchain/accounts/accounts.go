// Package accounts maintains account balances and the rules for moving value
// between them.
package accounts

import (
	"math"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Accounts manages the balances of the accounts who have transacted on the
// ledger. A cloned value is used as a projection to validate a batch of
// transactions before they are committed.
type Accounts struct {
	balances map[string]uint64
	mu       sync.RWMutex
}

// New constructs the accounts with the specified starting balances.
func New(balances map[string]uint64) *Accounts {
	act := Accounts{
		balances: make(map[string]uint64, len(balances)),
	}

	for addr, balance := range balances {
		act.balances[addr] = balance
	}

	return &act
}

// Clone makes an independent copy of the current accounts.
func (act *Accounts) Clone() *Accounts {
	act.mu.RLock()
	defer act.mu.RUnlock()

	return New(act.balances)
}

// Copy makes a copy of the current balances for all accounts.
func (act *Accounts) Copy() map[string]uint64 {
	act.mu.RLock()
	defer act.mu.RUnlock()

	balances := make(map[string]uint64, len(act.balances))
	for addr, balance := range act.balances {
		balances[addr] = balance
	}
	return balances
}

// Balance returns the balance for the address and whether the account is known.
func (act *Accounts) Balance(address string) (uint64, bool) {
	act.mu.RLock()
	defer act.mu.RUnlock()

	balance, exists := act.balances[address]
	return balance, exists
}

// Transfer performs the business logic for applying a transaction to the
// balances. The checks are made in a fixed order and the first failure is
// returned as a *database.TxError with nothing changed. On success the
// sender is debited and the receiver credited immediately.
func (act *Accounts) Transfer(tx database.Tx) error {
	act.mu.Lock()
	defer act.mu.Unlock()

	if err := validate(act.balances, tx); err != nil {
		return err
	}

	act.balances[tx.Sender] -= tx.Amount
	act.balances[tx.Receiver] += tx.Amount

	return nil
}

// =============================================================================

// validate runs the transaction checks against the balances.
func validate(balances map[string]uint64, tx database.Tx) error {
	if tx.Sender == "" || tx.Receiver == "" {
		return &database.TxError{Kind: database.KindAddressEmpty}
	}

	if tx.Sender == tx.Receiver {
		return &database.TxError{Kind: database.KindSameSenderReceiver}
	}

	if tx.Amount == 0 {
		return &database.TxError{Kind: database.KindZeroAmount}
	}

	if balances[tx.Receiver] > math.MaxUint64-tx.Amount {
		return &database.TxError{Kind: database.KindBalanceOverflow}
	}

	available, exists := balances[tx.Sender]
	if !exists {
		return &database.TxError{Kind: database.KindSenderNotFound, Sender: tx.Sender}
	}

	if available < tx.Amount {
		return &database.TxError{
			Kind:      database.KindInsufficientBalance,
			Sender:    tx.Sender,
			Requested: tx.Amount,
			Available: available,
		}
	}

	return nil
}
