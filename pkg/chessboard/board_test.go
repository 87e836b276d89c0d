package chessboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinnerOngoingOnEmptyBoard(t *testing.T) {
	b := NewBoard(5, 4)
	assert.Equal(t, Ongoing, b.Winner())
}

func TestWinnerHorizontalRun(t *testing.T) {
	b := NewBoard(5, 4)
	for _, y := range []int{0, 1, 2, 3} {
		b.Set(0, 0, y)
	}
	assert.Equal(t, 0, b.Winner())
}

func TestWinnerOpponentDiagonalRun(t *testing.T) {
	b := NewBoard(5, 4)
	for i := 0; i < 4; i++ {
		b.Set(1, i, i)
	}
	assert.Equal(t, 1, b.Winner())
}

func TestWinnerDraw(t *testing.T) {
	b := NewBoard(2, 4) // inRow larger than side, so a full board can never win
	b.Set(0, 0, 0)
	b.Set(1, 0, 1)
	b.Set(0, 1, 0)
	b.Set(1, 1, 1)
	assert.Equal(t, Draw, b.Winner())
}

func TestFlipInvariant(t *testing.T) {
	b := NewBoard(5, 4)
	b.Set(0, 0, 0)
	b.Set(1, 1, 1)

	child := b.Flip(2, 2)

	require.Equal(t, byte(1), child.At(0, 1, 1))
	require.Equal(t, byte(1), child.At(1, 0, 0))
	require.Equal(t, byte(1), child.At(1, 2, 2))
	assert.False(t, child.Occupied(3, 3))
}

func TestBytesRoundTrip(t *testing.T) {
	b := NewBoard(5, 4)
	b.Set(0, 0, 0)
	b.Set(1, 4, 4)

	out := NewBoardFromBytes(5, 4, b.Bytes())
	assert.Equal(t, b.Bytes(), out.Bytes())
}
