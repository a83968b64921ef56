package game

// Move is a single ply transition. Searchers never look inside a move, they only
// hand it back to the State that produced it.
type Move interface {
	String() string
}

// State should be immutable - operations on State always return a new copy
type State interface {
	// IsTerminal reports whether the game is over and, if so, the winner ("" for a draw)
	IsTerminal() (bool, string)
	// LegalMoves lists the moves available to player in a stable order
	LegalMoves(player string) ([]Move, error)
	Play(Move) (State, error)
	// Turn is the player to move
	Turn() string
}

// Piece is an opaque piece code owned by a Board.
type Piece int

type Placement struct {
	Row   int
	Col   int
	Piece Piece
}

// Board is a State that exposes the piece-level queries evaluators need.
type Board interface {
	State
	PawnCounts() []int // Indexed by PlayerIndex
	KingCounts() []int // Indexed by PlayerIndex
	PlayerIndex(player string) int
	// DistanceToKing is the number of rows piece on row still has to travel to be crowned
	DistanceToKing(piece Piece, row int) int
	Pieces() []Placement
	IdentifyPiece(piece Piece) (owner int, king bool)
	Size() int
}
