package mcts

import "github.com/tigert1998/rl-gobang/pkg/chessboard"

// Evaluator fills priors and values for a batch of leaf boards, playing the
// role of the external neural network / policy-value oracle. For every i,
// the callback must write a size*size-long prior into priors[i] and a
// scalar in [-1, 1] into values[i], from boards[i]'s side-to-move
// perspective. The callback may batch internally, but the engine guarantees
// len(boards) never exceeds the engine's configured batch size.
type Evaluator func(boards []*chessboard.Board, priors [][]float64, values []float64)

// dirichletMixEps mixes Dirichlet noise into the root's prior; fixed per
// spec, not configurable.
const dirichletMixEps = 0.25

// visitEps is the threshold below which GetPi's temperature is treated as
// zero (argmax mode).
const visitEps = 1e-6
