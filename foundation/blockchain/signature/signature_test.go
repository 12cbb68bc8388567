package signature_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	pkHexKey    = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherHexKey = "8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	data := []byte("alicebob100")

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, err := signature.Sign(data, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if !signature.Verify(data, sig, &pk.PublicKey) {
		t.Fatalf("Should be able to verify the signature.")
	}

	if signature.Verify([]byte("alicebob101"), sig, &pk.PublicKey) {
		t.Fatalf("Should not verify the signature over different data.")
	}

	other, err := crypto.HexToECDSA(otherHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	if signature.Verify(data, sig, &other.PublicKey) {
		t.Fatalf("Should not verify the signature with a different key.")
	}

	if signature.Verify(data, "0x1234", &pk.PublicKey) {
		t.Fatalf("Should not verify a malformed signature.")
	}

	publicKey, err := signature.PublicKey(data, sig)
	if err != nil {
		t.Fatalf("Should be able to extract the public key: %s", err)
	}

	if got, exp := signature.Address(publicKey), signature.Address(&pk.PublicKey); got != exp {
		t.Logf("got: %s", got)
		t.Logf("exp: %s", exp)
		t.Fatalf("Should get back the signer's address.")
	}
}

func Test_Address(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	addr := signature.Address(&pk.PublicKey)
	if !signature.IsAddress(addr) {
		t.Fatalf("Should get back a 40 character hex address: %s", addr)
	}

	if addr != signature.Address(&pk.PublicKey) {
		t.Fatalf("Should get back the same address for the same key.")
	}

	other, err := crypto.HexToECDSA(otherHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	if addr == signature.Address(&other.PublicKey) {
		t.Fatalf("Should get back different addresses for different keys.")
	}

	if signature.IsAddress("alice") {
		t.Fatalf("Should not treat a name as a derived address.")
	}
}
