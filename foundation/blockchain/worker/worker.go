// Package worker implements background mining for the ledger.
package worker

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// maxResults is the number of mining outcomes held for a slow reader before
// new ones are dropped.
const maxResults = 100

// Result represents the outcome of one mining operation.
type Result struct {
	Block database.Block
	Err   error
}

// =============================================================================

// Worker manages the POW workflow for the ledger.
type Worker struct {
	state        *state.State
	wg           sync.WaitGroup
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan bool
	results      chan Result
	evHandler    state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the mining goroutine.
func Run(st *state.State, evHandler state.EventHandler) *Worker {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	w := Worker{
		state:        st,
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan bool, 1),
		results:      make(chan Result, maxResults),
		evHandler:    ev,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	// Pick up anything submitted before the worker existed.
	if st.QueryMempoolLength() > 0 {
		w.SignalStartMining()
	}

	return &w
}

// Results returns the channel mining outcomes are reported on. The channel
// is closed once the worker is shut down.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work. Any mining in progress
// is cancelled.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	w.SignalCancelMining()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()

	close(w.results)
}

// SignalStartMining starts a mining operation. If there is already a signal
// pending in the channel, just return since a mining operation will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining signals the G executing the runMiningOperation function
// to stop immediately.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- true:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}

// report hands a mining outcome to the reader without blocking.
func (w *Worker) report(r Result) {
	select {
	case w.results <- r:
	default:
		w.evHandler("worker: report: WARNING: results full, outcome dropped")
	}
}
