package state

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// QueryTransactionHistory returns every committed transaction where the
// address is the sender or the receiver, in chain order and then in block
// order.
func (s *State) QueryTransactionHistory(address string) []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var trans []database.Tx
	for _, block := range s.chain {
		for _, tx := range block.Trans {
			if tx.Sender == address || tx.Receiver == address {
				trans = append(trans, tx)
			}
		}
	}

	return trans
}

// QueryBalance returns the committed balance for the address. An address
// that has never transacted has a zero balance.
func (s *State) QueryBalance(address string) uint64 {
	balance, _ := s.accounts.Balance(address)
	return balance
}

// QueryAccounts returns a copy of all the committed balances.
func (s *State) QueryAccounts() map[string]uint64 {
	return s.accounts.Copy()
}

// QueryMempoolLength returns the number of transactions waiting in the
// mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryMempool returns a copy of the transactions waiting in the mempool.
func (s *State) QueryMempool() []database.Tx {
	return s.mempool.Copy()
}

// QueryTransactionProof returns the merkle root of the block at the index
// along with the proof that the transaction is part of it.
func (s *State) QueryTransactionProof(index uint64, tx database.Tx) (string, [][]byte, []int64, error) {
	block, err := s.QueryBlock(index)
	if err != nil {
		return "", nil, nil, err
	}

	proof, order, err := block.Proof(tx)
	if err != nil {
		return "", nil, nil, fmt.Errorf("blk[%d]: %w", index, err)
	}

	return block.MerkleRoot(), proof, order, nil
}

// QueryBlock returns a copy of the block at the index.
func (s *State) QueryBlock(index uint64) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index >= uint64(len(s.chain)) {
		return database.Block{}, ErrBlockNotFound
	}

	return s.chain[index].Clone(), nil
}

// FormatBalance renders the committed balance for the address using the
// token's decimals.
func (s *State) FormatBalance(address string) string {
	return s.token.FormatAmount(s.QueryBalance(address))
}
