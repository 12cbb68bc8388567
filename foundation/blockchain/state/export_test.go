package state

import "github.com/ardanlabs/ledger/foundation/blockchain/database"

// TamperBlock lets tests corrupt a committed block in place.
func (s *State) TamperBlock(index int, fn func(block *database.Block)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.chain[index])
}
