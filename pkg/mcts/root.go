package mcts

import "github.com/pkg/errors"

// StepForward replaces the root with the already-expanded child at (x, y),
// releasing every other child (and their subtrees) of the old root, and
// keeps the moved-to subtree's visit statistics and evaluated priors
// intact — as if a fresh engine had been created at the new root's board,
// except for that preserved history.
//
// Calling this with a move that has no expanded child is a caller error
// (spec §7 leaves it undefined); this implementation panics naming the
// offending move rather than silently doing nothing, so the bug surfaces
// immediately instead of producing a confusingly-fresh root downstream.
func (e *Engine) StepForward(x, y int) {
	e.ensureRoot()

	newRoot := e.root.Child(x, y)
	if newRoot == nil {
		panic(errors.Errorf("mcts: StepForward(%d, %d) has no expanded child", x, y))
	}

	newRoot.parent = nil
	e.initialBoard = newRoot.board
	e.root = newRoot
}
