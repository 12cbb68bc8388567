package state

// IsValid walks the chain from the block after genesis and checks that each
// block points at the hash of the one before it and that its stored hash
// matches a recomputation from its fields. It stops at the first failure.
func (s *State) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isValid()
}

// isValid expects the caller to hold the lock.
func (s *State) isValid() bool {
	for i := 1; i < len(s.chain); i++ {
		prev := s.chain[i-1]
		block := s.chain[i]

		if block.PrevBlockHash != prev.Hash {
			s.evHandler("state: isValid: blk[%d]: prev hash mismatch: got[%s]: exp[%s]", block.Index, block.PrevBlockHash, prev.Hash)
			return false
		}

		if hash := block.Recompute(); block.Hash != hash {
			s.evHandler("state: isValid: blk[%d]: hash mismatch: got[%s]: exp[%s]", block.Index, block.Hash, hash)
			return false
		}
	}

	return true
}
