package capi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSize  = 5
	testInRow = 4
)

func uniformCB(value float64) EvaluatorCB {
	return func(boards [][]byte, priors [][]float64, values []float64) {
		for i := range boards {
			n := len(priors[i])
			prior := 1.0 / float64(n)
			for j := range priors[i] {
				priors[i][j] = prior
			}
			values[i] = value
		}
	}
}

func emptyBoardBytes() []byte {
	return make([]byte, 2*testSize*testSize)
}

func TestCreateSearchDestroy(t *testing.T) {
	h := Create(emptyBoardBytes(), testSize, testInRow, 1.0, 4, uniformCB(0))
	defer Destroy(h)

	assert.False(t, Terminated(h))

	Search(h, 20, 3, 0)

	out := make([]float64, testSize*testSize)
	GetPi(h, 1, out)

	sum := 0.0
	for _, p := range out {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestUnknownHandlePanics(t *testing.T) {
	assert.Panics(t, func() {
		Terminated(Handle(9999))
	})
}

func TestDestroyedHandlePanics(t *testing.T) {
	h := Create(emptyBoardBytes(), testSize, testInRow, 1.0, 4, uniformCB(0))
	Destroy(h)

	assert.Panics(t, func() {
		Value(h)
	})
}

func TestChessboardRoundTrip(t *testing.T) {
	h := Create(emptyBoardBytes(), testSize, testInRow, 1.0, 4, uniformCB(0))
	defer Destroy(h)

	out := Chessboard(h)
	require.Len(t, out, 2*testSize*testSize)
	for _, b := range out {
		assert.Equal(t, byte(0), b)
	}
}

func TestStepForwardAfterSearch(t *testing.T) {
	h := Create(emptyBoardBytes(), testSize, testInRow, 1.0, 4, uniformCB(0))
	defer Destroy(h)

	Search(h, 20, 3, 0)

	out := make([]float64, testSize*testSize)
	GetPi(h, 0, out)

	var x, y int
	found := false
	for i, p := range out {
		if p > 0 {
			x, y = i/testSize, i%testSize
			found = true
			break
		}
	}
	require.True(t, found)

	assert.NotPanics(t, func() {
		StepForward(h, x, y)
	})
}

func TestTwoHandlesAreIndependent(t *testing.T) {
	h1 := Create(emptyBoardBytes(), testSize, testInRow, 1.0, 4, uniformCB(0.1))
	defer Destroy(h1)
	h2 := Create(emptyBoardBytes(), testSize, testInRow, 1.0, 4, uniformCB(0.9))
	defer Destroy(h2)

	assert.Equal(t, 0.1, Value(h1))
	assert.Equal(t, 0.9, Value(h2))
}
