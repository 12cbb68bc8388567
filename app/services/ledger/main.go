package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mining"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Ledger struct {
			GenesisPath      string        `conf:"default:zblock/genesis.yml"`
			ScriptPath       string        `conf:"default:zblock/transactions.yml"`
			AccountsFolder   string        `conf:"default:zblock/accounts/"`
			Workers          int           `conf:"default:0,help:number of goroutines searching for a nonce"`
			RequeueOnFailure bool          `conf:"default:true"`
			MineTimeout      time.Duration `conf:"default:1m"`
			Background       bool          `conf:"default:false,help:mine with the background worker"`
			SettleTimeout    time.Duration `conf:"default:2s"`
			Verbose          bool          `conf:"default:false,help:print ledger events to the console"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "single process proof of work ledger",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	// The nameservice package provides name resolution for account addresses.
	// The names come from the file names in the accounts folder.
	ns, err := nameservice.New(cfg.Ledger.AccountsFolder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	for account, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", account)
	}

	// =========================================================================
	// Ledger Support

	gen, err := genesis.Load(cfg.Ledger.GenesisPath)
	if err != nil {
		return fmt.Errorf("loading genesis: %w", err)
	}
	gen.Blockchain.GenesisMiner = ns.Resolve(gen.Blockchain.GenesisMiner)

	scr, err := loadScript(cfg.Ledger.ScriptPath)
	if err != nil {
		return err
	}

	// The blockchain packages accept a function of this signature to allow the
	// application to log. The raw messages are also fanned out through the
	// events package.
	evts := events.New()
	defer evts.Shutdown()

	evLog := logger.EvHandler(log, uuid.NewString())
	ev := func(v string, args ...any) {
		evLog(v, args...)
		evts.Send(v, args...)
	}

	if cfg.Ledger.Verbose {
		_, ch := evts.Subscribe()
		go func() {
			for s := range ch {
				pterm.Debug.Println(s)
			}
		}()
		pterm.EnableDebugMessages()
	}

	var miner mining.Miner = mining.Sequential{EvHandler: ev}
	if cfg.Ledger.Workers > 0 {
		miner = mining.Parallel{Workers: cfg.Ledger.Workers, EvHandler: ev}
	}

	st, err := state.New(state.Config{
		Genesis:          gen,
		Miner:            miner,
		RequeueOnFailure: cfg.Ledger.RequeueOnFailure,
		EvHandler:        ev,
	})
	if err != nil {
		return fmt.Errorf("constructing ledger: %w", err)
	}

	// =========================================================================
	// Replay the script

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	if cfg.Ledger.Background {
		err = replayBackground(log, st, ns, ev, scr, shutdown, cfg.Ledger.SettleTimeout)
	} else {
		err = replay(log, st, ns, scr, shutdown, cfg.Ledger.MineTimeout)
	}
	if err != nil {
		return err
	}

	// =========================================================================
	// Report

	if err := renderChain(st); err != nil {
		return fmt.Errorf("render chain: %w", err)
	}

	if err := renderBalances(st, ns); err != nil {
		return fmt.Errorf("render balances: %w", err)
	}

	renderValidity(st)

	return nil
}

// replay submits each batch in the script and adds a block for it before
// moving on to the next one.
func replay(log *zap.SugaredLogger, st *state.State, ns *nameservice.NameService, scr script, shutdown <-chan os.Signal, mineTimeout time.Duration) error {
	for i, batch := range scr.Blocks {
		for _, tx := range batch.transactions(ns) {
			st.UpsertMempool(tx)
		}

		ctx, cancel := context.WithTimeout(context.Background(), mineTimeout)

		// Cancel mining if the operator asks the program to stop.
		go func() {
			select {
			case sig := <-shutdown:
				log.Infow("shutdown", "status", "shutdown started", "signal", sig)
				cancel()
			case <-ctx.Done():
			}
		}()

		block, err := st.AddBlock(ctx)
		cancel()

		switch {
		case err == nil:
			log.Infow("replay", "batch", i, "block", block.Index, "hash", block.Hash, "txs", len(block.Trans))
		case errors.Is(err, state.ErrNoTransactions), errors.Is(err, state.ErrChainInvalid):
			log.Infow("replay", "batch", i, "status", "no block added", "reason", err)
		default:
			return fmt.Errorf("batch %d: %w", i, err)
		}
	}

	return nil
}

// replayBackground streams every transaction into the mempool and lets the
// worker decide when blocks are mined. It returns once the mempool is empty
// and the worker has been quiet for the settle timeout.
func replayBackground(log *zap.SugaredLogger, st *state.State, ns *nameservice.NameService, ev state.EventHandler, scr script, shutdown <-chan os.Signal, settle time.Duration) error {
	w := worker.Run(st, ev)
	defer st.Shutdown()

	for _, batch := range scr.Blocks {
		for _, tx := range batch.transactions(ns) {
			st.UpsertMempool(tx)
		}
	}

	for {
		select {
		case r := <-w.Results():
			if r.Err != nil {
				log.Infow("replay", "status", "no block added", "reason", r.Err)
				continue
			}
			log.Infow("replay", "block", r.Block.Index, "hash", r.Block.Hash, "txs", len(r.Block.Trans))

		case <-time.After(settle):
			if st.QueryMempoolLength() == 0 {
				return nil
			}

		case sig := <-shutdown:
			log.Infow("shutdown", "status", "shutdown started", "signal", sig)
			return nil
		}
	}
}
