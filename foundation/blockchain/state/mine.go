package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// AddBlock takes everything in the mempool, keeps the transactions that are
// valid against the current balances, mines a block over them and appends
// it to the chain. The chain is re-verified before any balance changes; a
// block that breaks it is discarded and ErrChainInvalid returned.
func (s *State) AddBlock(ctx context.Context) (database.Block, error) {
	s.addMu.Lock()
	defer s.addMu.Unlock()

	s.evHandler("state: AddBlock: started")
	defer s.evHandler("state: AddBlock: completed")

	accepted := s.processMempool()
	if len(accepted) == 0 {
		s.evHandler("state: AddBlock: no valid transactions")
		return database.Block{}, ErrNoTransactions
	}

	latest := s.RetrieveLatestBlock()
	header := database.NewBlockHeader(latest.Index+1, latest.Hash, accepted)

	s.evHandler("state: AddBlock: MINING: blk[%d]: txs[%d]: difficulty[%d]", header.Index, len(accepted), s.difficulty)

	block, err := s.miner.Mine(ctx, header, s.difficulty)
	if err != nil {
		s.evHandler("state: AddBlock: MINING: ERROR: %s", err)
		s.requeue(accepted)
		return database.Block{}, err
	}

	if err := s.commit(block); err != nil {
		s.requeue(accepted)
		return database.Block{}, err
	}

	return block, nil
}

// =============================================================================

// processMempool drains the mempool and validates each transaction in
// submission order against a projection of the balances. Later transactions
// see the effect of earlier accepted ones. Rejected transactions are
// reported and dropped.
func (s *State) processMempool() []database.Tx {
	trans := s.mempool.Drain()
	projection := s.accounts.Clone()

	s.evHandler("state: processMempool: txs[%d]", len(trans))

	accepted := make([]database.Tx, 0, len(trans))
	for _, tx := range trans {
		if err := projection.Transfer(tx); err != nil {
			s.evHandler("state: processMempool: REJECTED: tx[%s]: %s", tx, err)
			continue
		}
		accepted = append(accepted, tx)
	}

	return accepted
}

// commit appends the block, re-verifies the chain and applies the block's
// transactions to the balances. The block is popped again if verification
// fails.
func (s *State) commit(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain = append(s.chain, block)

	if !s.isValid() {
		s.chain = s.chain[:len(s.chain)-1]
		s.evHandler("state: commit: ROLLBACK: blk[%d]: hash[%s]", block.Index, block.Hash)
		return ErrChainInvalid
	}

	for _, tx := range block.Trans {
		if err := s.accounts.Transfer(tx); err != nil {
			s.evHandler("state: commit: WARNING: tx[%s]: %s", tx, err)
		}
	}

	s.evHandler("state: commit: blk[%d]: hash[%s]: txs[%d]", block.Index, block.Hash, len(block.Trans))

	return nil
}

// requeue puts an accepted batch back at the front of the mempool when the
// ledger is configured to do so.
func (s *State) requeue(trans []database.Tx) {
	if !s.requeueOnFailure {
		s.evHandler("state: requeue: dropped txs[%d]", len(trans))
		return
	}

	n := s.mempool.Requeue(trans)
	s.evHandler("state: requeue: txs[%d]: mempool[%d]", len(trans), n)
}
