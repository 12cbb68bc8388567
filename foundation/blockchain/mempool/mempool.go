// Package mempool maintains the mempool for the blockchain.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents the queue of submitted transactions waiting to be
// included in a block. Transactions are kept in submission order and
// duplicates are allowed since transactions carry no identity.
type Mempool struct {
	pool []database.Tx
	mu   sync.RWMutex
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds a transaction to the back of the pool and returns the new
// number of transactions.
func (mp *Mempool) Upsert(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Requeue puts transactions back at the front of the pool ahead of anything
// submitted since, keeping their relative order.
func (mp *Mempool) Requeue(trans []database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	pool := make([]database.Tx, 0, len(trans)+len(mp.pool))
	pool = append(pool, trans...)
	mp.pool = append(pool, mp.pool...)

	return len(mp.pool)
}

// Copy returns a copy of the transactions in submission order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return append([]database.Tx(nil), mp.pool...)
}

// Drain returns all the transactions in submission order and leaves the
// pool empty.
func (mp *Mempool) Drain() []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	trans := mp.pool
	mp.pool = nil

	return trans
}
