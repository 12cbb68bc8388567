package database

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Tx is a transfer of value between two accounts. Values are immutable once
// constructed and are compared with ==, so two transfers with the same
// fields are the same transaction.
type Tx struct {
	Sender    string `json:"sender" yaml:"sender"`                           // Address of the account paying.
	Receiver  string `json:"receiver" yaml:"receiver"`                       // Address of the account being paid.
	Amount    uint64 `json:"amount" yaml:"amount"`                           // Value in the token's smallest unit.
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"` // Optional signature by the sender.
}

// NewTx constructs a transaction. No validation takes place here, that is the
// responsibility of the ledger when the mempool is processed.
func NewTx(sender string, receiver string, amount uint64) Tx {
	return Tx{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}
}

// CanonicalString returns the deterministic form of the transaction used as
// hashing input. The signature is not included.
func (tx Tx) CanonicalString() string {
	return tx.Sender + tx.Receiver + strconv.FormatUint(tx.Amount, 10)
}

// Sign returns a copy of the transaction carrying a signature over the
// canonical string produced with the specified private key.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (Tx, error) {
	sig, err := signature.Sign([]byte(tx.CanonicalString()), privateKey)
	if err != nil {
		return Tx{}, err
	}

	tx.Signature = sig
	return tx, nil
}

// Verify checks the transaction was signed by the private key associated
// with the specified public key.
func (tx Tx) Verify(publicKey *ecdsa.PublicKey) bool {
	if tx.Signature == "" {
		return false
	}
	return signature.Verify([]byte(tx.CanonicalString()), tx.Signature, publicKey)
}

// Hash implements the merkle Hashable interface.
func (tx Tx) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(tx.CanonicalString()))
	return h[:], nil
}

// Equals implements the merkle Hashable interface.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx == otherTx
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%d", tx.Sender, tx.Receiver, tx.Amount)
}
