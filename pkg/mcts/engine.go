package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/tigert1998/rl-gobang/pkg/chessboard"
)

// Engine owns one search tree for one game instance. It is not safe for
// concurrent use from multiple goroutines — per spec §5 the engine is
// single-threaded cooperative, and batching is the sole mechanism for
// overlapping evaluator work with tree traversal.
type Engine struct {
	size, inRow int
	vloss       float64
	batchSize   int
	evaluator   Evaluator

	initialBoard *chessboard.Board
	root         *Node
	pending      *pendingQueue

	// cpuct is only valid for the duration of a Search call; simulate reads
	// it from here rather than threading it through every descent step.
	cpuct float64

	rng *distrand.Rand
}

// NewEngine constructs an engine for a board of side `size` and winning run
// `inRow`, copying `initial` as the starting position. vloss and batchSize
// configure the virtual-loss penalty and the evaluator batch width; eval is
// the external policy/value oracle. The root is created lazily on first
// use (Search, Terminated, or Value).
func NewEngine(initial *chessboard.Board, vloss float64, batchSize int, eval Evaluator) *Engine {
	return &Engine{
		size:         initial.Size(),
		inRow:        initial.InRow(),
		vloss:        vloss,
		batchSize:    batchSize,
		evaluator:    eval,
		initialBoard: chessboard.NewBoardFromBytes(initial.Size(), initial.InRow(), initial.Bytes()),
		pending:      newPendingQueue(initial.Size() * initial.Size()),
		rng:          distrand.New(distrand.NewSource(uint64(seedFn()))),
	}
}

// seedFn is overridable in tests for deterministic Dirichlet draws.
var seedFn = func() int64 { return 1 }

// ensureRoot lazily materializes the root from the engine's current board,
// enqueuing and dispatching it immediately if it's a non-terminal leaf
// (the root is a leaf too, the first time it's seen).
func (e *Engine) ensureRoot() {
	if e.root != nil {
		return
	}
	e.root = newNode(e.initialBoard, nil)
	if !e.root.evaluated {
		e.root.incVLoss()
		e.pending.push(e.root)
		e.DispatchBatchInference()
	}
}

// Search runs numSims PUCT simulations from the (lazily created) root. If
// dirichletAlpha > 0, a fresh Dirichlet(alpha) sample of length size*size
// is mixed into the root's prior for this call only. After the simulation
// loop, a final dispatch drains any residual leaves, and a post-search
// assertion walk verifies every node's virtual-loss counter returned to
// zero — violating that invariant is a fatal implementation bug, so the
// engine panics rather than returning an error.
func (e *Engine) Search(numSims int, cpuct, dirichletAlpha float64) {
	e.ensureRoot()

	if dirichletAlpha > 0 {
		e.root.SetPNoise(e.sampleDirichlet(dirichletAlpha))
	} else {
		e.root.SetPNoise(nil)
	}

	e.cpuct = cpuct
	for i := 0; i < numSims; i++ {
		e.simulate()
	}

	e.DispatchBatchInference()

	if err := checkVirtualLossCleared(e.root); err != nil {
		panic(err)
	}
}

func (e *Engine) sampleDirichlet(alpha float64) []float64 {
	n := e.size * e.size
	alphas := make([]float64, n)
	for i := range alphas {
		alphas[i] = alpha
	}
	dist, ok := distmv.NewDirichlet(alphas, e.rng)
	if !ok {
		panic("mcts: invalid dirichlet alpha parameters")
	}
	return dist.Rand(nil)
}

// Terminated reports whether the root position is a terminal position,
// lazily materializing the root if needed.
func (e *Engine) Terminated() bool {
	e.ensureRoot()
	return e.root.Terminal()
}

// Value returns the root's value from the side-to-move's perspective,
// lazily materializing the root if needed.
func (e *Engine) Value() float64 {
	e.ensureRoot()
	return e.root.V()
}

// Chessboard returns the root's board itself, not a copy; callers must not
// mutate it.
func (e *Engine) Chessboard() *chessboard.Board {
	e.ensureRoot()
	return e.root.Board()
}

// Root exposes the current root node, primarily for tests and PV
// inspection; callers must not mutate it.
func (e *Engine) Root() *Node {
	e.ensureRoot()
	return e.root
}

// BestMove returns the argmax-visited child move at the root, as a
// convenience over GetPi(0, ...) for callers that want a single move
// rather than a distribution. ok is false if the root has no children yet.
func (e *Engine) BestMove() (x, y int, ok bool) {
	e.ensureRoot()
	var best *Node
	bestX, bestY := -1, -1
	for cx := 0; cx < e.size; cx++ {
		for cy := 0; cy < e.size; cy++ {
			child := e.root.Child(cx, cy)
			if child == nil {
				continue
			}
			if best == nil || child.N() > best.N() {
				best = child
				bestX, bestY = cx, cy
			}
		}
	}
	return bestX, bestY, best != nil
}
