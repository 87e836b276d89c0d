// Package chessboard implements the two-plane board representation shared
// by the MCTS engine: a fixed side-to-move / opponent split, terminal and
// winner detection, and the board-flip rule used to derive child positions.
package chessboard

import "strings"

// directions scanned when looking for an in-a-row: horizontal, vertical and
// the two diagonals.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

const (
	// Ongoing means the game at this board has not ended.
	Ongoing = -1
	// Draw means the board is full with no winner.
	Draw = -2
)

// Board is a two-plane position of side `size`. Plane 0 (P0) always holds
// the stones of the side to move *at this board*; plane 1 (P1) holds the
// opponent's stones. Both planes are size*size bytes, row-major, 0 or 1.
type Board struct {
	size  int
	inRow int
	p0    []byte
	p1    []byte
}

// NewBoard returns an empty board of the given size and winning run length.
func NewBoard(size, inRow int) *Board {
	return &Board{
		size:  size,
		inRow: inRow,
		p0:    make([]byte, size*size),
		p1:    make([]byte, size*size),
	}
}

// NewBoardFromBytes parses the wire layout of §6: 2*size*size bytes, P0
// followed by P1, both row-major.
func NewBoardFromBytes(size, inRow int, data []byte) *Board {
	b := NewBoard(size, inRow)
	n := size * size
	copy(b.p0, data[:n])
	copy(b.p1, data[n:2*n])
	return b
}

// Size returns the board's side length N.
func (b *Board) Size() int { return b.size }

// InRow returns the winning run length K.
func (b *Board) InRow() int { return b.inRow }

func (b *Board) index(x, y int) int { return x*b.size + y }

// At returns 1 if plane `plane` (0 or 1) has a stone at (x, y), else 0.
func (b *Board) At(plane, x, y int) byte {
	if plane == 0 {
		return b.p0[b.index(x, y)]
	}
	return b.p1[b.index(x, y)]
}

// Occupied reports whether any plane has a stone at (x, y).
func (b *Board) Occupied(x, y int) bool {
	i := b.index(x, y)
	return b.p0[i] != 0 || b.p1[i] != 0
}

// Set places a stone for `plane` (0 or 1) at (x, y).
func (b *Board) Set(plane, x, y int) {
	if plane == 0 {
		b.p0[b.index(x, y)] = 1
	} else {
		b.p1[b.index(x, y)] = 1
	}
}

// Bytes serializes the board back to the §6 wire layout: 2*size*size bytes.
func (b *Board) Bytes() []byte {
	out := make([]byte, 2*b.size*b.size)
	copy(out, b.p0)
	copy(out[b.size*b.size:], b.p1)
	return out
}

// Flip builds the child board obtained by playing (x, y): the child's P0 is
// this board's P1, and the child's P1 is this board's P0 with the new stone
// set at (x, y). This keeps "P0 is always the side to move" true at every
// depth.
func (b *Board) Flip(x, y int) *Board {
	child := &Board{
		size:  b.size,
		inRow: b.inRow,
		p0:    append([]byte(nil), b.p1...),
		p1:    append([]byte(nil), b.p0...),
	}
	child.Set(1, x, y)
	return child
}

// Winner reports the terminal status from the side-to-move's perspective:
// Ongoing if the game continues, Draw if the board is full with no winner,
// 0 if the side to move has InRow consecutive stones, 1 if the opponent
// does. Both planes are scanned because a terminal node may be reached
// right after either side's winning move, depending on orientation.
func (b *Board) Winner() int {
	filled := 0
	for _, who := range [2]int{0, 1} {
		for x := 0; x < b.size; x++ {
			for y := 0; y < b.size; y++ {
				if b.At(who, x, y) != 0 {
					filled++
				}
				if b.hasRunFrom(who, x, y) {
					return who
				}
			}
		}
	}

	if filled >= b.size*b.size {
		return Draw
	}
	return Ongoing
}

func (b *Board) hasRunFrom(who, x, y int) bool {
	for _, d := range directions {
		ok := true
		for i := 0; i < b.inRow; i++ {
			nx, ny := x+d[0]*i, y+d[1]*i
			if nx < 0 || ny < 0 || nx >= b.size || ny >= b.size || b.At(who, nx, ny) == 0 {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// String renders the board for diagnostics: 'x' for the side to move, 'o'
// for the opponent, '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			switch {
			case b.At(0, x, y) != 0:
				sb.WriteByte('x')
			case b.At(1, x, y) != 0:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
