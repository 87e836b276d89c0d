package mcts

import "github.com/tigert1998/rl-gobang/pkg/chessboard"

// DispatchBatchInference drains the pending queue in consecutive windows of
// width at most batchSize, invoking the evaluator once per window, then
// backs up every queued leaf (front to rear) once all evaluator calls have
// returned. Evaluator calls must finish filling (p, v) before backup can
// propagate values up the tree, hence the two-phase structure.
func (e *Engine) DispatchBatchInference() {
	if e.pending.len() == 0 {
		return
	}

	entries := e.pending.entries
	for start := 0; start < len(entries); start += e.batchSize {
		end := start + e.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		e.evaluateWindow(entries[start:end])
	}

	for _, leaf := range entries {
		e.BackupFromLeaf(leaf)
	}
	e.pending.clear()
}

func (e *Engine) evaluateWindow(window []*Node) {
	boards := make([]*chessboard.Board, len(window))
	priors := make([][]float64, len(window))
	values := make([]float64, len(window))

	for i, leaf := range window {
		boards[i] = leaf.board
		priors[i] = make([]float64, e.size*e.size)
	}

	e.evaluator(boards, priors, values)

	for i, leaf := range window {
		leaf.setPV(priors[i], values[i])
	}
}

// BackupFromLeaf propagates a leaf's value up to the root, flipping sign at
// every level (alternating-move: a value good for the side to move at depth
// d is bad for the side to move at depth d-1), and clears the virtual loss
// each visited node picked up during its descent.
func (e *Engine) BackupFromLeaf(leaf *Node) {
	deltaV := leaf.v
	for node := leaf; node != nil; node = node.parent {
		node.Backup(deltaV)
		node.decVLoss()
		deltaV = -deltaV
	}
}
