package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mining"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func testGenesis() genesis.Genesis {
	return genesis.Genesis{
		Token: genesis.Token{
			Name:        "TestCoin",
			Symbol:      "TST",
			Decimals:    8,
			TotalSupply: 21_000_000,
		},
		Blockchain: genesis.Blockchain{
			GenesisHash:     "genesis_name",
			Difficulty:      1,
			GenesisPreMined: 1_000,
			GenesisMiner:    "Miner",
		},
	}
}

// stuckMiner mines the genesis block and then never finds a solution until
// it is cancelled.
type stuckMiner struct{}

func (stuckMiner) Mine(ctx context.Context, header database.BlockHeader, difficulty uint) (database.Block, error) {
	if header.Index == 0 {
		return mining.Sequential{}.Mine(ctx, header, difficulty)
	}

	<-ctx.Done()
	return database.Block{}, ctx.Err()
}

func wait(t *testing.T, w *worker.Worker) worker.Result {
	t.Helper()

	select {
	case r := <-w.Results():
		return r
	case <-time.After(10 * time.Second):
		t.Fatalf("Should get back a mining result.")
	}

	return worker.Result{}
}

// =============================================================================

func TestMineOnSignal(t *testing.T) {
	t.Log("Given the need to mine in the background.")
	{
		st, err := state.New(state.Config{Genesis: testGenesis(), RequeueOnFailure: true})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %s", failed, err)
		}

		w := worker.Run(st, func(v string, args ...any) { t.Logf(v, args...) })
		defer st.Shutdown()

		st.UpsertMempool(database.NewTx("Miner", "Alice", 100))

		r := wait(t, w)
		if r.Err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %s", failed, r.Err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if r.Block.Index != 1 || len(r.Block.Trans) != 1 {
			t.Fatalf("\t%s\tShould mine the submitted transaction: %+v", failed, r.Block)
		}
		t.Logf("\t%s\tShould mine the submitted transaction.", success)

		if st.QueryBalance("Alice") != 100 {
			t.Fatalf("\t%s\tShould commit the balances.", failed)
		}
		t.Logf("\t%s\tShould commit the balances.", success)

		st.UpsertMempool(database.NewTx("Nobody", "Alice", 100))

		r = wait(t, w)
		if !errors.Is(r.Err, state.ErrNoTransactions) {
			t.Fatalf("\t%s\tShould report a batch with no valid transactions: %v", failed, r.Err)
		}
		t.Logf("\t%s\tShould report a batch with no valid transactions.", success)
	}
}

func TestShutdownCancelsMining(t *testing.T) {
	st, err := state.New(state.Config{
		Genesis:          testGenesis(),
		Miner:            stuckMiner{},
		RequeueOnFailure: true,
	})
	if err != nil {
		t.Fatalf("Should be able to construct the ledger: %s", err)
	}

	// Submitted before the worker runs so mining starts on Run.
	st.UpsertMempool(database.NewTx("Miner", "Alice", 100))

	w := worker.Run(st, nil)

	// Give the worker a moment to take the batch out of the mempool.
	deadline := time.Now().Add(5 * time.Second)
	for st.QueryMempoolLength() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Should start mining the batch.")
		}
		time.Sleep(10 * time.Millisecond)
	}

	st.Shutdown()

	r, ok := <-w.Results()
	if !ok || !errors.Is(r.Err, context.Canceled) {
		t.Fatalf("Should report the cancelled mining: %v", r.Err)
	}

	if _, ok := <-w.Results(); ok {
		t.Fatalf("Should close the results after shutdown.")
	}

	if n := st.QueryMempoolLength(); n != 1 {
		t.Fatalf("Should requeue the batch, got %d transactions.", n)
	}

	if n := len(st.RetrieveChain()); n != 1 {
		t.Fatalf("Should not add a block, got %d blocks.", n)
	}
}
