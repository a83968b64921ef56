package agent

import "checkers/game"

// WinScore is the value of a won game. It dominates any material count and stays far
// below the search sentinels.
const WinScore = 10000.0

type Weights struct {
	King        float64 // Value of a king relative to a man
	Advancement float64
	Cohesion    float64
}

// DefaultWeights leave cohesion out of the score.
var DefaultWeights = Weights{King: 3, Advancement: 1, Cohesion: 0}

// Evaluator scores boards from the max player's perspective as the weighted sum of
// material, advancement and cohesion.
type Evaluator struct {
	maxPlayer string
	minPlayer string
	weights   Weights
}

func NewEvaluator(maxPlayer, minPlayer string, weights Weights) Evaluator {
	return Evaluator{maxPlayer: maxPlayer, minPlayer: minPlayer, weights: weights}
}

func (e Evaluator) Evaluate(s game.State) float64 {
	return e.EvaluateAt(s, 0)
}

// EvaluateAt scores s found ply plies below the root. Wins lose a point per ply, so
// the search takes the quickest win and puts off a loss as long as it can.
func (e Evaluator) EvaluateAt(s game.State, ply int) float64 {
	b, ok := s.(game.Board)
	if !ok {
		panic("unexpected state type")
	}

	if over, winner := b.IsTerminal(); over {
		switch winner {
		case e.maxPlayer:
			return WinScore - float64(ply)
		case e.minPlayer:
			return -WinScore + float64(ply)
		default:
			return 0
		}
	}

	score := e.Material(b)
	score += e.weights.Advancement * e.Advancement(b)
	if e.weights.Cohesion != 0 {
		score += e.weights.Cohesion * e.Cohesion(b)
	}
	return score
}

// Material is the man difference plus the weighted king difference.
func (e Evaluator) Material(b game.Board) float64 {
	maxIdx, minIdx := b.PlayerIndex(e.maxPlayer), b.PlayerIndex(e.minPlayer)
	pawns, kings := b.PawnCounts(), b.KingCounts()

	pawnScore := float64(pawns[maxIdx] - pawns[minIdx])
	kingScore := float64(kings[maxIdx] - kings[minIdx])
	return pawnScore + e.weights.King*kingScore
}

// Advancement sums how far each man has come toward its crowning row, so a man one
// step from being crowned counts the most. Kings do not count.
func (e Evaluator) Advancement(b game.Board) float64 {
	maxIdx, minIdx := b.PlayerIndex(e.maxPlayer), b.PlayerIndex(e.minPlayer)
	score := 0
	for _, p := range b.Pieces() {
		owner, king := b.IdentifyPiece(p.Piece)
		if king {
			continue
		}
		progress := b.Size() - 1 - b.DistanceToKing(p.Piece, p.Row)
		switch owner {
		case maxIdx:
			score += progress
		case minIdx:
			score -= progress
		}
	}
	return float64(score)
}

// Cohesion counts pieces with a friendly piece on a neighbouring diagonal.
func (e Evaluator) Cohesion(b game.Board) float64 {
	maxIdx, minIdx := b.PlayerIndex(e.maxPlayer), b.PlayerIndex(e.minPlayer)
	size := b.Size()
	owners := make([][]int, size)
	for row := range owners {
		owners[row] = make([]int, size)
		for col := range owners[row] {
			owners[row][col] = -1
		}
	}
	pieces := b.Pieces()
	for _, p := range pieces {
		owners[p.Row][p.Col], _ = b.IdentifyPiece(p.Piece)
	}

	score := 0
	for _, p := range pieces {
		owner := owners[p.Row][p.Col]
		if !hasNeighbour(owners, p.Row, p.Col, owner) {
			continue
		}
		switch owner {
		case maxIdx:
			score++
		case minIdx:
			score--
		}
	}
	return float64(score)
}

func hasNeighbour(owners [][]int, row, col, owner int) bool {
	for _, dr := range []int{-1, 1} {
		for _, dc := range []int{-1, 1} {
			r, c := row+dr, col+dc
			if r < 0 || r >= len(owners) || c < 0 || c >= len(owners[r]) {
				continue
			}
			if owners[r][c] == owner {
				return true
			}
		}
	}
	return false
}
