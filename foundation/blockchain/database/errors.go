package database

import (
	"errors"
	"fmt"
)

// ErrInvalidDifficulty is returned when a difficulty can never be solved
// because it asks for more zeros than a hash has characters.
var ErrInvalidDifficulty = errors.New("difficulty exceeds hash length")

// TxErrorKind identifies the reason a transaction failed validation.
type TxErrorKind int

// The closed set of transaction validation failures, in the order the
// checks are performed.
const (
	KindAddressEmpty TxErrorKind = iota + 1
	KindSameSenderReceiver
	KindZeroAmount
	KindBalanceOverflow
	KindSenderNotFound
	KindInsufficientBalance
)

var kindNames = map[TxErrorKind]string{
	KindAddressEmpty:        "AddressCannotBeEmpty",
	KindSameSenderReceiver:  "SenderAndReceiverCannotBeTheSame",
	KindZeroAmount:          "AmountMustBeGreaterThanZero",
	KindBalanceOverflow:     "BalanceOverflow",
	KindSenderNotFound:      "SenderDoesNotExist",
	KindInsufficientBalance: "InsufficientBalance",
}

// String implements the fmt.Stringer interface.
func (k TxErrorKind) String() string {
	if name, exists := kindNames[k]; exists {
		return name
	}
	return fmt.Sprintf("TxErrorKind(%d)", int(k))
}

// Set of sentinel errors for use with errors.Is. The details of a specific
// failure are available through errors.As on *TxError.
var (
	ErrAddressEmpty        = &TxError{Kind: KindAddressEmpty}
	ErrSameSenderReceiver  = &TxError{Kind: KindSameSenderReceiver}
	ErrZeroAmount          = &TxError{Kind: KindZeroAmount}
	ErrBalanceOverflow     = &TxError{Kind: KindBalanceOverflow}
	ErrSenderNotFound      = &TxError{Kind: KindSenderNotFound}
	ErrInsufficientBalance = &TxError{Kind: KindInsufficientBalance}
)

// =============================================================================

// TxError is returned when a transaction can't be applied to the balances.
// Sender is set for SenderDoesNotExist and InsufficientBalance, Requested and
// Available only for InsufficientBalance.
type TxError struct {
	Kind      TxErrorKind
	Sender    string
	Requested uint64
	Available uint64
}

// Error implements the error interface.
func (e *TxError) Error() string {
	switch e.Kind {
	case KindAddressEmpty:
		return "transaction address cannot be empty"
	case KindSameSenderReceiver:
		return "sender and receiver cannot be the same"
	case KindZeroAmount:
		return "transaction amount must be greater than zero"
	case KindBalanceOverflow:
		return "transaction would overflow the receiver's balance"
	case KindSenderNotFound:
		return fmt.Sprintf("sender %s does not exist", e.Sender)
	case KindInsufficientBalance:
		return fmt.Sprintf("%s has insufficient balance, requested %d, available %d", e.Sender, e.Requested, e.Available)
	}
	return e.Kind.String()
}

// Is matches any TxError of the same kind so the sentinels work with
// errors.Is regardless of the details carried.
func (e *TxError) Is(target error) bool {
	t, ok := target.(*TxError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
