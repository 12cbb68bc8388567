package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/token"
)

// RetrieveChain returns a copy of the full chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chain := make([]database.Block, len(s.chain))
	for i, block := range s.chain {
		chain[i] = block.Clone()
	}

	return chain
}

// RetrieveLatestBlock returns a copy of the last block in the chain.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain[len(s.chain)-1].Clone()
}

// RetrieveToken returns the token the ledger accounts in.
func (s *State) RetrieveToken() token.Token {
	return s.token
}

// RetrieveDifficulty returns the number of leading zeros a block hash needs.
func (s *State) RetrieveDifficulty() uint {
	return s.difficulty
}
