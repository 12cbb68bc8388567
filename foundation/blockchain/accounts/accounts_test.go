package accounts_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/accounts"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestTransfer(t *testing.T) {
	type table struct {
		name  string
		sheet map[string]uint64
		tx    database.Tx
		err   error
		final map[string]uint64
	}

	sheet := map[string]uint64{"alice": 100, "bob": 0}

	tt := []table{
		{
			name:  "valid",
			sheet: sheet,
			tx:    database.NewTx("alice", "bob", 40),
			final: map[string]uint64{"alice": 60, "bob": 40},
		},
		{
			name:  "new-receiver",
			sheet: sheet,
			tx:    database.NewTx("alice", "carol", 100),
			final: map[string]uint64{"alice": 0, "bob": 0, "carol": 100},
		},
		{
			name:  "empty-sender",
			sheet: sheet,
			tx:    database.NewTx("", "bob", 10),
			err:   database.ErrAddressEmpty,
		},
		{
			name:  "empty-receiver",
			sheet: sheet,
			tx:    database.NewTx("alice", "", 10),
			err:   database.ErrAddressEmpty,
		},
		{
			name:  "same",
			sheet: sheet,
			tx:    database.NewTx("alice", "alice", 10),
			err:   database.ErrSameSenderReceiver,
		},
		{
			name:  "zero",
			sheet: sheet,
			tx:    database.NewTx("alice", "bob", 0),
			err:   database.ErrZeroAmount,
		},
		{
			name:  "overflow",
			sheet: map[string]uint64{"alice": 100, "bob": math.MaxUint64 - 10},
			tx:    database.NewTx("alice", "bob", 11),
			err:   database.ErrBalanceOverflow,
		},
		{
			name:  "unknown-sender",
			sheet: sheet,
			tx:    database.NewTx("mallory", "bob", 10),
			err:   database.ErrSenderNotFound,
		},
		{
			name:  "insufficient",
			sheet: sheet,
			tx:    database.NewTx("alice", "bob", 101),
			err:   database.ErrInsufficientBalance,
		},
		{
			name:  "zero-before-unknown",
			sheet: sheet,
			tx:    database.NewTx("mallory", "bob", 0),
			err:   database.ErrZeroAmount,
		},
		{
			name:  "overflow-before-unknown",
			sheet: map[string]uint64{"bob": math.MaxUint64},
			tx:    database.NewTx("mallory", "bob", 1),
			err:   database.ErrBalanceOverflow,
		},
	}

	t.Log("Given the need to validate and apply transactions.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling transaction %s.", testID, tst.tx)
			{
				f := func(t *testing.T) {
					act := accounts.New(tst.sheet)

					err := act.Transfer(tst.tx)
					if tst.err != nil {
						if !errors.Is(err, tst.err) {
							t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, err)
							t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.err)
							t.Fatalf("\t%s\tTest %d:\tShould get back the right failure.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould get back the right failure.", success, testID)

						for addr, balance := range tst.sheet {
							if got, _ := act.Balance(addr); got != balance {
								t.Fatalf("\t%s\tTest %d:\tShould not change the balance of %s.", failed, testID, addr)
							}
						}
						t.Logf("\t%s\tTest %d:\tShould not change any balance.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to apply transaction: %s", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to apply transaction.", success, testID)

					cpy := act.Copy()
					for addr, exp := range tst.final {
						if got := cpy[addr]; got != exp {
							t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, got)
							t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, exp)
							t.Fatalf("\t%s\tTest %d:\tShould have correct balances for %s.", failed, testID, addr)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould have correct balances.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestInsufficientDetails(t *testing.T) {
	act := accounts.New(map[string]uint64{"alice": 50})

	err := act.Transfer(database.NewTx("alice", "bob", 80))

	var txErr *database.TxError
	if !errors.As(err, &txErr) {
		t.Fatalf("Should get back a transaction error: %v", err)
	}

	if txErr.Sender != "alice" || txErr.Requested != 80 || txErr.Available != 50 {
		t.Fatalf("Should get back the sender, requested and available amounts: %+v", txErr)
	}
}

func TestClone(t *testing.T) {
	act := accounts.New(map[string]uint64{"alice": 100})
	projection := act.Clone()

	if err := projection.Transfer(database.NewTx("alice", "bob", 60)); err != nil {
		t.Fatalf("Should be able to transfer on the projection: %s", err)
	}

	if err := projection.Transfer(database.NewTx("alice", "bob", 60)); !errors.Is(err, database.ErrInsufficientBalance) {
		t.Fatalf("Should see earlier transfers on the projection: %v", err)
	}

	if balance, _ := act.Balance("alice"); balance != 100 {
		t.Fatalf("Should not change the original accounts, got %d.", balance)
	}

	if _, exists := act.Balance("bob"); exists {
		t.Fatalf("Should not add accounts to the original accounts.")
	}

	if cpy := projection.Copy(); cpy["alice"]+cpy["bob"] != 100 {
		t.Fatalf("Should conserve the total on the projection, got %v.", cpy)
	}
}
