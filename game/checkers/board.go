package checkers

import (
	"errors"
	"fmt"
	"strings"

	"checkers/game"
	"checkers/utils"
)

const (
	BoardSize = 8
	DrawPlies = 80 // Plies without a capture or crowning before the game is drawn

	Red   = "r"
	Black = "b"
)

const (
	Empty game.Piece = iota
	RedMan
	RedKing
	BlackMan
	BlackKing
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrGameOver      = errors.New("game is over")
)

// Players in index order, red moves first.
var Players = [2]string{Red, Black}

// Name is the colour a player token stands for, or the token itself if it is unknown.
func Name(player string) string {
	switch player {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return player
}

// Board is an immutable checkers position. Black starts on rows 0-2 and moves down
// the rows, red starts on rows 5-7 and moves up.
type Board struct {
	cells [BoardSize][BoardSize]game.Piece
	turn  int // Index into Players
	quiet int // Plies since the last capture or crowning
}

// NewBoard returns the standard opening position with red to move.
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !isDark(row, col) {
				continue
			}
			switch {
			case row < 3:
				b.cells[row][col] = BlackMan
			case row >= BoardSize-3:
				b.cells[row][col] = RedMan
			}
		}
	}
	return b
}

// Parse builds a board from a text diagram, one string per row from row 0. '.' is an
// empty square, 'r'/'b' are men and 'R'/'B' kings.
func Parse(rows []string, turn string) (*Board, error) {
	if len(rows) != BoardSize {
		return nil, fmt.Errorf("expected %d rows, got %d", BoardSize, len(rows))
	}
	b := &Board{}
	if b.turn = indexOf(turn); b.turn < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, turn)
	}
	for row, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != BoardSize {
			return nil, fmt.Errorf("row %d: expected %d squares, got %d", row, BoardSize, len(line))
		}
		for col, c := range line {
			var piece game.Piece
			switch c {
			case '.', '-':
				piece = Empty
			case 'r':
				piece = RedMan
			case 'R':
				piece = RedKing
			case 'b':
				piece = BlackMan
			case 'B':
				piece = BlackKing
			default:
				return nil, fmt.Errorf("row %d col %d: unknown piece %q", row, col, c)
			}
			if piece != Empty && !isDark(row, col) {
				return nil, fmt.Errorf("row %d col %d: piece on a light square", row, col)
			}
			if owner, king := identify(piece); owner >= 0 && !king && row == kingRow(owner) {
				return nil, fmt.Errorf("row %d col %d: uncrowned man on its crowning row", row, col)
			}
			b.cells[row][col] = piece
		}
	}
	return b, nil
}

// WithTurn returns a copy of the board with player to move.
func (b *Board) WithTurn(player string) (*Board, error) {
	idx := indexOf(player)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}
	next := *b
	next.turn = idx
	return &next, nil
}

func (b *Board) Turn() string {
	return Players[b.turn]
}

func (b *Board) At(sq Square) game.Piece {
	return b.cells[sq.Row][sq.Col]
}

func (b *Board) IsTerminal() (bool, string) {
	if len(b.legalMoves(b.turn)) == 0 {
		return true, Players[1-b.turn]
	}
	if b.quiet >= DrawPlies {
		return true, ""
	}
	return false, ""
}

func (b *Board) LegalMoves(player string) ([]game.Move, error) {
	idx := indexOf(player)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}
	moves := b.legalMoves(idx)
	result := make([]game.Move, len(moves))
	for i, m := range moves {
		result[i] = m
	}
	return result, nil
}

func (b *Board) Play(m game.Move) (game.State, error) {
	move, ok := m.(Move)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected move type %T", ErrIllegalMove, m)
	}
	if b.quiet >= DrawPlies {
		return nil, ErrGameOver
	}
	for _, legal := range b.legalMoves(b.turn) {
		if legal.Equal(move) {
			return b.apply(legal), nil
		}
	}
	return nil, fmt.Errorf("%w: %s for %s", ErrIllegalMove, move, b.Turn())
}

func (b *Board) apply(move Move) *Board {
	next := *b
	from, to := move.From(), move.To()
	piece := next.cells[from.Row][from.Col]
	next.cells[from.Row][from.Col] = Empty
	for _, sq := range move.Captured {
		next.cells[sq.Row][sq.Col] = Empty
	}

	crowned := false
	if owner, king := identify(piece); !king && to.Row == kingRow(owner) {
		piece = crown(piece)
		crowned = true
	}
	next.cells[to.Row][to.Col] = piece

	if crowned || len(move.Captured) > 0 {
		next.quiet = 0
	} else {
		next.quiet++
	}
	next.turn = 1 - b.turn
	return &next
}

func (b *Board) PawnCounts() []int {
	counts := make([]int, len(Players))
	for _, p := range b.Pieces() {
		if owner, king := identify(p.Piece); !king {
			counts[owner]++
		}
	}
	return counts
}

func (b *Board) KingCounts() []int {
	counts := make([]int, len(Players))
	for _, p := range b.Pieces() {
		if owner, king := identify(p.Piece); king {
			counts[owner]++
		}
	}
	return counts
}

func (b *Board) PlayerIndex(player string) int {
	return indexOf(player)
}

func (b *Board) DistanceToKing(piece game.Piece, row int) int {
	owner, king := identify(piece)
	if king || owner < 0 {
		return 0
	}
	if kingRow(owner) == 0 {
		return row
	}
	return BoardSize - 1 - row
}

// Pieces lists every occupied square in row-major order.
func (b *Board) Pieces() []game.Placement {
	var pieces []game.Placement
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if piece := b.cells[row][col]; piece != Empty {
				pieces = append(pieces, game.Placement{Row: row, Col: col, Piece: piece})
			}
		}
	}
	return pieces
}

func (b *Board) IdentifyPiece(piece game.Piece) (int, bool) {
	return identify(piece)
}

func (b *Board) Size() int {
	return BoardSize
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for col := 0; col < BoardSize; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteString("\n")
	for row := 0; row < BoardSize; row++ {
		fmt.Fprintf(&sb, "%d", row)
		for col := 0; col < BoardSize; col++ {
			sb.WriteString(" ")
			sb.WriteByte(symbol(b.cells[row][col]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func symbol(piece game.Piece) byte {
	switch piece {
	case RedMan:
		return 'r'
	case RedKing:
		return 'R'
	case BlackMan:
		return 'b'
	case BlackKing:
		return 'B'
	default:
		return '.'
	}
}

func identify(piece game.Piece) (owner int, king bool) {
	switch piece {
	case RedMan:
		return 0, false
	case RedKing:
		return 0, true
	case BlackMan:
		return 1, false
	case BlackKing:
		return 1, true
	default:
		return -1, false
	}
}

func crown(piece game.Piece) game.Piece {
	switch piece {
	case RedMan:
		return RedKing
	case BlackMan:
		return BlackKing
	default:
		return piece
	}
}

// kingRow is the row where owner's men are crowned
func kingRow(owner int) int {
	if owner == 0 {
		return 0
	}
	return BoardSize - 1
}

func indexOf(player string) int {
	return utils.FindIndex(Players[:], player)
}

func isDark(row, col int) bool {
	return (row+col)%2 == 1
}
