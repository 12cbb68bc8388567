// Package signature provides helper functions for handling the ledger
// signature and address needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// AddressLength is the number of hex characters in an address.
const AddressLength = 2 * ripemd160.Size

// ErrInvalidSignature is returned when a signature can't be decoded or
// doesn't match the signed data.
var ErrInvalidSignature = errors.New("invalid signature")

// =============================================================================

// Sign uses the specified private key to sign the sha256 digest of the data.
// The signature is returned as a 0x prefixed hex string in the [R|S|V] format.
func Sign(data []byte, privateKey *ecdsa.PrivateKey) (string, error) {
	digest := sha256.Sum256(data)

	sig, err := crypto.Sign(digest[:], privateKey)
	if err != nil {
		return "", err
	}

	// Check the public key extracted from the data and signature.
	publicKey, err := crypto.SigToPub(digest[:], sig)
	if err != nil {
		return "", err
	}

	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), digest[:], sig[:crypto.RecoveryIDOffset]) {
		return "", ErrInvalidSignature
	}

	return hexutil.Encode(sig), nil
}

// Verify checks the signature was produced over the data by the private key
// associated with the specified public key.
func Verify(data []byte, sig string, publicKey *ecdsa.PublicKey) bool {
	if publicKey == nil {
		return false
	}

	raw, err := hexutil.Decode(sig)
	if err != nil || len(raw) != crypto.SignatureLength {
		return false
	}

	digest := sha256.Sum256(data)
	return crypto.VerifySignature(crypto.FromECDSAPub(publicKey), digest[:], raw[:crypto.RecoveryIDOffset])
}

// PublicKey extracts the public key that produced the signature over the data.
func PublicKey(data []byte, sig string) (*ecdsa.PublicKey, error) {
	raw, err := hexutil.Decode(sig)
	if err != nil || len(raw) != crypto.SignatureLength {
		return nil, ErrInvalidSignature
	}

	digest := sha256.Sum256(data)
	return crypto.SigToPub(digest[:], raw)
}

// Address derives the account address for a public key. The compressed key is
// hashed with sha256 and then ripemd160 so the public key can't be recovered
// from the address. The result is hex encoded.
func Address(publicKey *ecdsa.PublicKey) string {
	sum := sha256.Sum256(crypto.CompressPubkey(publicKey))

	h := ripemd160.New()
	h.Write(sum[:])

	return hex.EncodeToString(h.Sum(nil))
}

// IsAddress verifies the string has the shape of a derived address.
func IsAddress(address string) bool {
	if len(address) != AddressLength {
		return false
	}

	_, err := hex.DecodeString(address)
	return err == nil
}
