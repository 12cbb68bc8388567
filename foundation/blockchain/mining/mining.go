// Package mining provides the strategies for solving the proof of work
// puzzle for a block.
package mining

import (
	"context"
	"runtime"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Miner interface represents the behavior required to be implemented by any
// package providing support for solving the proof of work for a block header.
type Miner interface {
	Mine(ctx context.Context, header database.BlockHeader, difficulty uint) (database.Block, error)
}

// =============================================================================

// Sequential is the reference miner. It searches the nonces from 0 upward on
// the calling goroutine.
type Sequential struct {
	EvHandler func(v string, args ...any)
}

// Mine implements the Miner interface.
func (s Sequential) Mine(ctx context.Context, header database.BlockHeader, difficulty uint) (database.Block, error) {
	return database.POW(ctx, header, difficulty, s.EvHandler)
}

// =============================================================================

// Parallel spreads the nonce search over a pool of goroutines. Worker i tries
// the nonces i, i+n, i+2n, ... so no nonce is tried twice. The first solution
// found wins and the remaining workers are cancelled, so the nonce is not
// necessarily the lowest solving one.
type Parallel struct {
	Workers   int // Zero means one worker per CPU.
	EvHandler func(v string, args ...any)
}

// Mine implements the Miner interface.
func (p Parallel) Mine(ctx context.Context, header database.BlockHeader, difficulty uint) (database.Block, error) {
	ev := func(v string, args ...any) {
		if p.EvHandler != nil {
			p.EvHandler(v, args...)
		}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ev("mining: Parallel: started: blk[%d]: workers[%d]", header.Index, workers)
	defer ev("mining: Parallel: completed: blk[%d]", header.Index)

	// Create a context so the losing workers can be cancelled.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		block database.Block
		err   error
	}

	// Buffered so no worker blocks reporting after a solution was taken.
	results := make(chan result, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func(start uint64) {
			defer wg.Done()

			block, err := database.SearchNonce(ctx, header, difficulty, start, uint64(workers), p.EvHandler)
			results <- result{block: block, err: err}
		}(uint64(i))
	}

	// Can't return from this function until all the workers are complete.
	defer wg.Wait()

	var firstErr error
	for i := 0; i < workers; i++ {
		r := <-results
		if r.err == nil {
			ev("mining: Parallel: SOLVED: blk[%d]: nonce[%d]", header.Index, r.block.Nonce)
			cancel()
			return r.block, nil
		}

		if firstErr == nil {
			firstErr = r.err
		}
	}

	return database.Block{}, firstErr
}
