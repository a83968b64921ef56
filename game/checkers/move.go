package checkers

import (
	"fmt"
	"slices"
	"strings"

	"checkers/game"
)

type Square struct {
	Row int
	Col int
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

func (s Square) onBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

func (s Square) step(d Square, n int) Square {
	return Square{Row: s.Row + n*d.Row, Col: s.Col + n*d.Col}
}

// Move is a path of squares; a multi-jump is a single move.
type Move struct {
	Path     []Square
	Captured []Square
}

func (m Move) From() Square {
	return m.Path[0]
}

func (m Move) To() Square {
	return m.Path[len(m.Path)-1]
}

func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

func (m Move) Equal(other Move) bool {
	return slices.Equal(m.Path, other.Path)
}

func (m Move) String() string {
	sep := " -> "
	if m.IsCapture() {
		sep = " x "
	}
	parts := make([]string, len(m.Path))
	for i, sq := range m.Path {
		parts[i] = sq.String()
	}
	return strings.Join(parts, sep)
}

var (
	upward   = []Square{{-1, -1}, {-1, 1}}
	downward = []Square{{1, -1}, {1, 1}}
	allDirs  = []Square{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

func directions(piece game.Piece) []Square {
	owner, king := identify(piece)
	switch {
	case king:
		return allDirs
	case kingRow(owner) == 0:
		return upward
	default:
		return downward
	}
}

// legalMoves lists owner's moves in row-major order of the moving piece. Captures are
// mandatory, so simple moves are only listed when no capture exists.
func (b *Board) legalMoves(owner int) []Move {
	var jumps, steps []Move
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if o, _ := identify(b.cells[row][col]); o != owner {
				continue
			}
			from := Square{Row: row, Col: col}
			jumps = append(jumps, b.jumpsFrom(from)...)
			if len(jumps) == 0 {
				steps = append(steps, b.stepsFrom(from)...)
			}
		}
	}
	if len(jumps) > 0 {
		return jumps
	}
	return steps
}

func (b *Board) stepsFrom(from Square) []Move {
	var moves []Move
	for _, d := range directions(b.At(from)) {
		to := from.step(d, 1)
		if to.onBoard() && b.At(to) == Empty {
			moves = append(moves, Move{Path: []Square{from, to}})
		}
	}
	return moves
}

// jumpsFrom follows every capture sequence from a square to its end. A man that is
// crowned mid-sequence stops there.
func (b *Board) jumpsFrom(from Square) []Move {
	piece := b.At(from)
	owner, king := identify(piece)
	var moves []Move

	var walk func(cells [BoardSize][BoardSize]game.Piece, at Square, path, captured []Square)
	walk = func(cells [BoardSize][BoardSize]game.Piece, at Square, path, captured []Square) {
		extended := false
		for _, d := range directions(piece) {
			over, land := at.step(d, 1), at.step(d, 2)
			if !land.onBoard() || cells[land.Row][land.Col] != Empty {
				continue
			}
			if o, _ := identify(cells[over.Row][over.Col]); o < 0 || o == owner {
				continue
			}
			extended = true

			next := cells
			next[at.Row][at.Col] = Empty
			next[over.Row][over.Col] = Empty
			next[land.Row][land.Col] = piece
			p := append(slices.Clone(path), land)
			c := append(slices.Clone(captured), over)
			if !king && land.Row == kingRow(owner) {
				moves = append(moves, Move{Path: p, Captured: c})
				continue
			}
			walk(next, land, p, c)
		}
		if !extended && len(captured) > 0 {
			moves = append(moves, Move{Path: path, Captured: captured})
		}
	}
	walk(b.cells, from, []Square{from}, nil)
	return moves
}
