// Package merkle provides a merkle tree over the transactions of a block so
// inclusion of a single transaction can be proven without the whole block.
package merkle

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"hash"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrEmptyTree is returned when a tree is requested for no values.
var ErrEmptyTree = errors.New("cannot construct tree with no content")

// ErrNotFound is returned when a proof is requested for a value that isn't
// a leaf of the tree.
var ErrNotFound = errors.New("unable to find data in tree")

// Hashable represents the behavior concrete data must exhibit to be used in
// the merkle tree.
type Hashable[T any] interface {
	Hash() ([]byte, error)
	Equals(other T) bool
}

// Proof order values. A Left entry is concatenated in front of the running
// hash, a Right entry behind it.
const (
	Left  int64 = 0
	Right int64 = 1
)

// =============================================================================

// Tree represents a merkle tree that uses data of some type T that exhibits the
// behavior defined by the Hashable constraint. Every level with an odd number
// of nodes duplicates its last node.
type Tree[T Hashable[T]] struct {
	values       []T
	levels       [][][]byte
	hashStrategy func() hash.Hash
}

// WithHashStrategy is used to change the default hash strategy of using sha256
// when constructing a new tree.
func WithHashStrategy[T Hashable[T]](hashStrategy func() hash.Hash) func(t *Tree[T]) {
	return func(t *Tree[T]) {
		t.hashStrategy = hashStrategy
	}
}

// NewTree constructs a new merkle tree from the ordered values.
func NewTree[T Hashable[T]](values []T, options ...func(t *Tree[T])) (*Tree[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyTree
	}

	t := Tree[T]{
		values:       append([]T(nil), values...),
		hashStrategy: sha256.New,
	}

	for _, option := range options {
		option(&t)
	}

	leaves := make([][]byte, 0, len(values)+1)
	for _, value := range values {
		h, err := value.Hash()
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, h)
	}

	level := pad(leaves)
	t.levels = append(t.levels, level)

	for len(level) > 1 {
		next := make([][]byte, 0, len(level)/2+1)
		for i := 0; i < len(level); i += 2 {
			next = append(next, t.hashPair(level[i], level[i+1]))
		}

		if len(next) > 1 {
			next = pad(next)
		}

		t.levels = append(t.levels, next)
		level = next
	}

	return &t, nil
}

// Root returns the merkle root hash.
func (t *Tree[T]) Root() []byte {
	return t.levels[len(t.levels)-1][0]
}

// RootHex converts the merkle root byte hash to a hex encoded string.
func (t *Tree[T]) RootHex() string {
	return hexutil.Encode(t.Root())
}

// Values returns a copy of the values the tree was constructed with.
func (t *Tree[T]) Values() []T {
	return append([]T(nil), t.values...)
}

// Proof returns the sibling hashes from the leaf up to the root for the first
// leaf equal to data, along with the order to concatenate each sibling.
//
// Given dataHash and the proof, the root is recomputed like this:
//
//	for i := range proof
//	    if order[i] == Left:  h = hash(proof[i] ++ h)
//	    if order[i] == Right: h = hash(h ++ proof[i])
//
// The final h must match the merkle root.
func (t *Tree[T]) Proof(data T) ([][]byte, []int64, error) {
	idx := -1
	for i, v := range t.values {
		if v.Equals(data) {
			idx = i
			break
		}
	}

	if idx == -1 {
		return nil, nil, ErrNotFound
	}

	var proof [][]byte
	var order []int64

	for _, level := range t.levels[:len(t.levels)-1] {
		if idx%2 == 0 {
			proof = append(proof, level[idx+1])
			order = append(order, Right)
		} else {
			proof = append(proof, level[idx-1])
			order = append(order, Left)
		}
		idx /= 2
	}

	return proof, order, nil
}

// VerifyData checks the data is a leaf of the tree and that its proof
// recomputes the merkle root.
func (t *Tree[T]) VerifyData(data T) error {
	proof, order, err := t.Proof(data)
	if err != nil {
		return err
	}

	leaf, err := data.Hash()
	if err != nil {
		return err
	}

	if !VerifyProof(leaf, proof, order, t.Root(), t.hashStrategy) {
		return errors.New("merkle root is not equivalent to the merkle root calculated on the critical path")
	}

	return nil
}

// =============================================================================

// VerifyProof recomputes the root from a leaf hash and its proof and compares
// it with the expected root. A nil hashStrategy means sha256.
func VerifyProof(leaf []byte, proof [][]byte, order []int64, root []byte, hashStrategy func() hash.Hash) bool {
	if len(proof) != len(order) {
		return false
	}

	if hashStrategy == nil {
		hashStrategy = sha256.New
	}

	h := leaf
	for i, sibling := range proof {
		hs := hashStrategy()
		switch order[i] {
		case Left:
			hs.Write(sibling)
			hs.Write(h)
		case Right:
			hs.Write(h)
			hs.Write(sibling)
		default:
			return false
		}
		h = hs.Sum(nil)
	}

	return bytes.Equal(h, root)
}

// hashPair hashes the concatenation of two child hashes.
func (t *Tree[T]) hashPair(left []byte, right []byte) []byte {
	h := t.hashStrategy()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// pad duplicates the last hash of a level with an odd number of nodes.
func pad(level [][]byte) [][]byte {
	if len(level)%2 == 1 {
		level = append(level, level[len(level)-1])
	}
	return level
}
