// Package capi adapts pkg/mcts to a handle-based C ABI: a small integer
// handle stands in for an *mcts.Engine across the cgo boundary, since
// passing a Go pointer through C and back risks the garbage collector
// losing track of it. This file holds the pure-Go half of that adapter —
// the registry and the per-engine bookkeeping — so it's testable without
// a cgo build. capi.go holds the cgo-exported trampolines that call into
// it.
package capi

import (
	"fmt"
	"sync"

	"github.com/tigert1998/rl-gobang/pkg/chessboard"
	"github.com/tigert1998/rl-gobang/pkg/mcts"
)

// Handle identifies one live engine. Zero is never issued and means "no
// engine" to C callers that keep a handle variable default-initialized.
type Handle int32

var (
	registryMu sync.Mutex
	registry   = map[Handle]*mcts.Engine{}
	nextHandle Handle = 1
)

// EvaluatorCB is the Go-side shape of spec.md §6's batched callback,
// already marshaled out of the cgo boundary by capi.go: for n boards,
// fill priors[i] (size*size long) and values[i] in place.
type EvaluatorCB func(boards [][]byte, priors [][]float64, values []float64)

// register stores engine under a fresh handle and returns it.
func register(engine *mcts.Engine) Handle {
	registryMu.Lock()
	defer registryMu.Unlock()
	h := nextHandle
	nextHandle++
	registry[h] = engine
	return h
}

// lookup returns the engine for h, panicking on an unknown or destroyed
// handle: per spec.md §7, capi callers passing garbage handles is a
// programmer error, not a recoverable condition.
func lookup(h Handle) *mcts.Engine {
	registryMu.Lock()
	defer registryMu.Unlock()
	engine, ok := registry[h]
	if !ok {
		panic(fmt.Sprintf("capi: unknown or destroyed handle %d", h))
	}
	return engine
}

func release(h Handle) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, h)
}

// newEvaluator adapts a batched byte-slice callback into an mcts.Evaluator,
// marshaling chessboard.Board values to and from the §6 wire layout so the
// cgo half only ever deals in flat byte/double buffers.
func newEvaluator(cb EvaluatorCB) mcts.Evaluator {
	return func(boards []*chessboard.Board, priors [][]float64, values []float64) {
		raw := make([][]byte, len(boards))
		for i, b := range boards {
			raw[i] = b.Bytes()
		}
		cb(raw, priors, values)
	}
}

// Create builds a new engine from the §6 wire-format initial board and
// registers it, returning its handle.
func Create(boardBytes []byte, size, inRow int, vloss float64, batchSize int, cb EvaluatorCB) Handle {
	initial := chessboard.NewBoardFromBytes(size, inRow, boardBytes)
	engine := mcts.NewEngine(initial, vloss, batchSize, newEvaluator(cb))
	return register(engine)
}

// Destroy releases a handle. Any later call other than Destroy that passes
// h panics, as lookup does for every unknown handle.
func Destroy(h Handle) {
	release(h)
}

// Search runs num_sims simulations on the engine behind h.
func Search(h Handle, numSims int, cpuct, dirichletAlpha float64) {
	lookup(h).Search(numSims, cpuct, dirichletAlpha)
}

// StepForward rewires the root behind h to its (x, y) child.
func StepForward(h Handle, x, y int) {
	lookup(h).StepForward(x, y)
}

// GetPi writes the root's move-probability distribution into out.
func GetPi(h Handle, temperature float64, out []float64) {
	lookup(h).GetPi(temperature, out)
}

// Terminated reports whether the root behind h is terminal.
func Terminated(h Handle) bool {
	return lookup(h).Terminated()
}

// Value returns the root's value behind h.
func Value(h Handle) float64 {
	return lookup(h).Value()
}

// Chessboard writes the §6 wire layout of the root board behind h.
func Chessboard(h Handle) []byte {
	return lookup(h).Chessboard().Bytes()
}
