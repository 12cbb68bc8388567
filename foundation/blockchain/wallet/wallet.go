// Package wallet manages the private key of a ledger account and signs on
// its behalf.
package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet holds a secp256k1 private key.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
}

// New generates a wallet with a fresh private key.
func New() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	return &Wallet{privateKey: privateKey}, nil
}

// FromHex constructs a wallet from a hex encoded private key.
func FromHex(hexKey string) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}

	return &Wallet{privateKey: privateKey}, nil
}

// Load reads the private key stored in the file.
func Load(path string) (*Wallet, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("load key %q: %w", path, err)
	}

	return &Wallet{privateKey: privateKey}, nil
}

// Save writes the private key to the file as hex.
func (w *Wallet) Save(path string) error {
	if err := crypto.SaveECDSA(path, w.privateKey); err != nil {
		return fmt.Errorf("save key %q: %w", path, err)
	}

	return nil
}

// PublicKey returns the wallet's public key.
func (w *Wallet) PublicKey() *ecdsa.PublicKey {
	return &w.privateKey.PublicKey
}

// PrivateKeyHex returns the private key hex encoded.
func (w *Wallet) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(w.privateKey))
}

// Address returns the ledger address for the wallet.
func (w *Wallet) Address() string {
	return signature.Address(w.PublicKey())
}

// Sign returns a hex signature over the sha256 digest of the data.
func (w *Wallet) Sign(data []byte) (string, error) {
	return signature.Sign(data, w.privateKey)
}

// NewTx constructs a transaction from the wallet's address to the receiver
// and signs it.
func (w *Wallet) NewTx(receiver string, amount uint64) (database.Tx, error) {
	return database.NewTx(w.Address(), receiver, amount).Sign(w.privateKey)
}
