package database

import (
	"context"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/merkle"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// hashLength is the number of hex characters in a block hash.
const hashLength = 64

// ctxCheckInterval is how many nonces are tried between checks for
// cancellation.
const ctxCheckInterval = 1 << 10

// =============================================================================

// BlockHeader represents the fields of a block that are fixed before the
// proof of work search begins.
type BlockHeader struct {
	Index         uint64 `json:"index"`           // Position in the chain, genesis is 0.
	TimeStamp     string `json:"timestamp"`       // RFC3339 UTC time the block was created.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	Trans         []Tx   `json:"trans"`           // Ordered batch of transactions.
}

// NewBlockHeader constructs a header stamped with the current time.
func NewBlockHeader(index uint64, prevBlockHash string, trans []Tx) BlockHeader {
	return BlockHeader{
		Index:         index,
		TimeStamp:     time.Now().UTC().Format(time.RFC3339Nano),
		PrevBlockHash: prevBlockHash,
		Trans:         trans,
	}
}

// Block represents a group of transactions batched together and sealed by
// a hash that solves the proof of work puzzle.
type Block struct {
	Index         uint64 `json:"index"`
	TimeStamp     string `json:"timestamp"`
	Trans         []Tx   `json:"trans"`
	PrevBlockHash string `json:"prev_block_hash"`
	Hash          string `json:"hash"`
	Nonce         uint64 `json:"nonce"` // Value identified to solve the hash solution.
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle. The search starts at nonce 0 and
// increments by 1 until a solution is found or the context is cancelled.
func POW(ctx context.Context, header BlockHeader, difficulty uint, evHandler func(v string, args ...any)) (Block, error) {
	return SearchNonce(ctx, header, difficulty, 0, 1, evHandler)
}

// SearchNonce tries the nonces start, start+step, start+2*step, ... until
// the block hash has difficulty leading zeros. Searchers given the same step
// and distinct starts below step cover disjoint nonce ranges.
func SearchNonce(ctx context.Context, header BlockHeader, difficulty uint, start uint64, step uint64, evHandler func(v string, args ...any)) (Block, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	if difficulty > hashLength {
		return Block{}, ErrInvalidDifficulty
	}

	if step == 0 {
		step = 1
	}

	nb := Block{
		Index:         header.Index,
		TimeStamp:     header.TimeStamp,
		Trans:         header.Trans,
		PrevBlockHash: header.PrevBlockHash,
		Nonce:         start,
	}

	ev("database: POW: MINING: started: blk[%d]: start[%d]: step[%d]", nb.Index, start, step)

	var attempts uint64
	for {
		if attempts%ctxCheckInterval == 0 && ctx.Err() != nil {
			ev("database: POW: MINING: CANCELLED: blk[%d]: attempts[%d]", nb.Index, attempts)
			return Block{}, ctx.Err()
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: POW: MINING: blk[%d]: attempts[%d]", nb.Index, attempts)
		}

		// Hash the block and check if we have solved the puzzle.
		hash := nb.Recompute()
		if !isHashSolved(difficulty, hash) {
			nb.Nonce += step
			continue
		}

		nb.Hash = hash
		ev("database: POW: MINING: SOLVED: blk[%d]: prevBlk[%s]: newBlk[%s]: attempts[%d]", nb.Index, nb.PrevBlockHash, hash, attempts)

		return nb, nil
	}
}

// Recompute calculates the hash from the block's stored fields.
func (b Block) Recompute() string {
	return ComputeBlockHash(b.Index, b.TimeStamp, b.Trans, b.PrevBlockHash, b.Nonce)
}

// IsSolved reports whether the stored hash matches the stored fields and
// satisfies the difficulty.
func (b Block) IsSolved(difficulty uint) bool {
	return b.Hash == b.Recompute() && isHashSolved(difficulty, b.Hash)
}

// Clone returns a copy of the block that doesn't share the transactions.
func (b Block) Clone() Block {
	b.Trans = append([]Tx(nil), b.Trans...)
	return b
}

// MerkleTree builds a merkle tree over the block's transactions.
func (b Block) MerkleTree() (*merkle.Tree[Tx], error) {
	return merkle.NewTree(b.Trans)
}

// MerkleRoot returns the hex encoded merkle root of the block's
// transactions. A block without transactions has a root of zeros.
func (b Block) MerkleRoot() string {
	tree, err := b.MerkleTree()
	if err != nil {
		return "0x" + signature.ZeroHash
	}
	return tree.RootHex()
}

// Proof returns the merkle proof and sibling order that connects the
// transaction to the block's merkle root.
func (b Block) Proof(tx Tx) ([][]byte, []int64, error) {
	tree, err := b.MerkleTree()
	if err != nil {
		return nil, nil, err
	}
	return tree.Proof(tx)
}

// =============================================================================

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	if len(hash) != hashLength || difficulty > hashLength {
		return false
	}

	return strings.Count(hash[:difficulty], "0") == int(difficulty)
}
