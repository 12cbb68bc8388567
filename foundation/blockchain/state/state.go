// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/accounts"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/mining"
	"github.com/ardanlabs/ledger/foundation/blockchain/token"
)

// Set of errors returned by the state api.
var (
	ErrPreMinedExceedsSupply = errors.New("total supply is less than the genesis pre-mined amount")
	ErrNoTransactions        = errors.New("no valid transactions in mempool")
	ErrChainInvalid          = errors.New("chain failed validation, block discarded")
	ErrBlockNotFound         = errors.New("block not found")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis          genesis.Genesis
	Miner            mining.Miner // Nil uses the sequential miner.
	RequeueOnFailure bool         // Put an accepted batch back in the mempool when its block is not added.
	EvHandler        EventHandler
}

// State manages the chain, the account balances and the mempool.
type State struct {
	evHandler        EventHandler
	requeueOnFailure bool
	difficulty       uint
	token            token.Token
	miner            mining.Miner

	addMu sync.Mutex   // Serializes AddBlock.
	mu    sync.RWMutex // Guards the chain.
	chain []database.Block

	mempool  *mempool.Mempool
	accounts *accounts.Accounts

	Worker Worker
}

// New constructs the ledger from the genesis configuration and mines the
// genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	gen := cfg.Genesis

	tkn, err := token.New(gen.Token.Name, gen.Token.Symbol, gen.Token.Decimals, gen.Token.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	if gen.Blockchain.GenesisPreMined > tkn.TotalSupply {
		return nil, ErrPreMinedExceedsSupply
	}

	miner := cfg.Miner
	if miner == nil {
		miner = mining.Sequential{EvHandler: ev}
	}

	ev("state: New: token[%s]: difficulty[%d]", tkn, gen.Blockchain.Difficulty)

	// The genesis block carries no transactions and is chained to the
	// configured genesis hash. It is mined like any other block.
	header := database.NewBlockHeader(0, gen.Blockchain.GenesisHash, nil)
	block, err := miner.Mine(context.Background(), header, gen.Blockchain.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("mining genesis: %w", err)
	}

	ev("state: New: genesis mined: hash[%s]: nonce[%d]", block.Hash, block.Nonce)

	state := State{
		evHandler:        ev,
		requeueOnFailure: cfg.RequeueOnFailure,
		difficulty:       gen.Blockchain.Difficulty,
		token:            tkn,
		miner:            miner,
		chain:            []database.Block{block},
		mempool:          mempool.New(),
		accounts: accounts.New(map[string]uint64{
			gen.Blockchain.GenesisMiner: gen.Blockchain.GenesisPreMined,
		}),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running.

	return &state, nil
}

// Shutdown stops any background mining.
func (s *State) Shutdown() {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	if s.Worker != nil {
		s.Worker.Shutdown()
	}
}
