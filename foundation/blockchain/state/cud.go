package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// UpsertMempool adds a transaction to the back of the mempool without any
// validation and returns the new mempool length. Validation happens when the
// next block is built.
func (s *State) UpsertMempool(tx database.Tx) int {
	n := s.mempool.Upsert(tx)
	s.evHandler("state: UpsertMempool: tx[%s]: mempool[%d]", tx, n)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return n
}
