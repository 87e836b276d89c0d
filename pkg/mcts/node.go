package mcts

import (
	"math"

	"github.com/tigert1998/rl-gobang/pkg/chessboard"
)

// Node is one vertex of the search tree. Visit stats, virtual loss and the
// evaluated flag are plain fields rather than atomics: the engine is
// single-threaded cooperative (spec §5), so there is never a concurrent
// writer to guard against, unlike the teacher's tree-parallel NodeStats.
type Node struct {
	board    *chessboard.Board
	parent   *Node // weak: never owns, never freed via this link
	children []*Node

	terminal  bool
	evaluated bool

	p      []float64 // prior policy, size*size long; valid once evaluated
	pNoise []float64 // root-only Dirichlet sample, nil elsewhere
	v      float64   // value from the side-to-move's perspective

	sigmaV   float64
	n        uint32
	vlossCnt int32
}

// newNode builds a node for `board`, owned by `parent` (nil for the root).
// Terminality is decided immediately from the board; terminal nodes are
// evaluated from construction and carry a value derived from the winner.
func newNode(board *chessboard.Board, parent *Node) *Node {
	node := &Node{
		board:    board,
		parent:   parent,
		children: make([]*Node, board.Size()*board.Size()),
	}

	switch board.Winner() {
	case chessboard.Ongoing:
		node.terminal = false
		node.evaluated = false
	case chessboard.Draw:
		node.terminal = true
		node.evaluated = true
		node.v = 0
	case 0: // side to move at this node has won
		node.terminal = true
		node.evaluated = true
		node.v = 1
	case 1: // opponent has won
		node.terminal = true
		node.evaluated = true
		node.v = -1
	}

	return node
}

func (n *Node) idx(x, y int) int { return x*n.board.Size() + y }

// Board returns the position at this node.
func (n *Node) Board() *chessboard.Board { return n.board }

// Parent returns the (weak) back-reference to the owning node, nil at root.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the child installed at (x, y), or nil if that slot is
// still empty.
func (n *Node) Child(x, y int) *Node { return n.children[n.idx(x, y)] }

// Terminal reports whether this node's board has a winner or is a draw.
func (n *Node) Terminal() bool { return n.terminal }

// Evaluated reports whether (p, v) are populated: true for terminal nodes
// from construction, true for non-terminal nodes once the evaluator has
// filled them in.
func (n *Node) Evaluated() bool { return n.evaluated }

// N returns the visit count.
func (n *Node) N() uint32 { return n.n }

// V returns the node's value from the side-to-move's perspective.
func (n *Node) V() float64 { return n.v }

// Q returns the average backed-up value, 0 for an unvisited node.
func (n *Node) Q() float64 {
	if n.n == 0 {
		return 0
	}
	return n.sigmaV / float64(n.n)
}

// VirtualLossCount returns the number of simulations currently in flight
// through this node.
func (n *Node) VirtualLossCount() int32 { return n.vlossCnt }

func (n *Node) incVLoss() { n.vlossCnt++ }
func (n *Node) decVLoss() { n.vlossCnt-- }

// SetPNoise installs a non-owning Dirichlet noise view on this node; valid
// only at the root, and only until the next Search call rewrites it.
func (n *Node) SetPNoise(noise []float64) { n.pNoise = noise }

// setPV installs the evaluator's (priors, value) output. It does not set
// the evaluated flag; the node's first Backup does. Only ever called for
// non-terminal nodes pulled off the pending queue.
func (n *Node) setPV(p []float64, v float64) {
	n.p = p
	n.v = v
}

// Expand installs a new child at (x, y) if that slot is empty, building its
// board via the Board-flip rule. Returns true if a node was newly created,
// false if the slot was already occupied.
func (n *Node) Expand(x, y int) bool {
	i := n.idx(x, y)
	if n.children[i] != nil {
		return false
	}
	n.children[i] = newNode(n.board.Flip(x, y), n)
	return true
}

// Backup records one backed-up visit: n += 1, sigma_v += delta_v. Marking
// evaluated=true here is idempotent for already-evaluated nodes; it only
// matters the first time an enqueued leaf is backed up, once the evaluator
// has populated (p, v) and the node is no longer awaiting evaluation.
func (n *Node) Backup(deltaV float64) {
	n.n++
	n.sigmaV += deltaV
	n.evaluated = true
}

// Select runs one PUCT decision at this node with the virtual-loss penalty
// and returns the chosen move. Ties are broken by first-encountered in
// row-major scan order.
func (n *Node) Select(cpuct, vloss float64) (int, int) {
	size := n.board.Size()
	uBase := cpuct * math.Sqrt(float64(n.n))

	bestX, bestY := -1, -1
	bestScore := math.Inf(-1)

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if n.board.Occupied(x, y) {
				continue
			}

			idx := n.idx(x, y)
			p := n.p[idx]
			if n.pNoise != nil {
				p = (1-dirichletMixEps)*p + dirichletMixEps*n.pNoise[idx]
			}

			score := uBase * p
			if child := n.children[idx]; child != nil {
				score = score/float64(child.n+1) - child.Q() -
					vloss*float64(child.vlossCnt)/float64(max(child.n, 1))
			}

			if score > bestScore {
				bestScore = score
				bestX, bestY = x, y
			}
		}
	}

	return bestX, bestY
}
