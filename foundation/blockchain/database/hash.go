package database

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ComputeBlockHash returns the lowercase hex sha256 digest of the block
// fields concatenated in order: index, timestamp, every transaction's
// canonical string, previous hash and nonce.
func ComputeBlockHash(index uint64, timeStamp string, trans []Tx, prevBlockHash string, nonce uint64) string {
	var b strings.Builder

	b.WriteString(strconv.FormatUint(index, 10))
	b.WriteString(timeStamp)
	for _, tx := range trans {
		b.WriteString(tx.CanonicalString())
	}
	b.WriteString(prevBlockHash)
	b.WriteString(strconv.FormatUint(nonce, 10))

	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}
