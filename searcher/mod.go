package searcher

import (
	"context"
	"errors"
	"math"

	"checkers/game"
)

// Bounds of the search window. Evaluators must return finite scores so that no score
// can reach either sentinel.
var (
	NegInf = math.Inf(-1)
	PosInf = math.Inf(1)
)

var (
	// ErrNoLegalActions is returned when the root is terminal or a non-terminal node
	// has no moves for the player to act.
	ErrNoLegalActions = errors.New("no legal actions")
	// ErrNoSearchDepth is returned when the ply limit leaves nothing to search.
	ErrNoSearchDepth = errors.New("no search depth")
)

// Evaluator scores any state from the maximizing player's perspective. It must be pure:
// the same state always gets the same finite score.
type Evaluator interface {
	Evaluate(state game.State) float64
}

// DepthEvaluator is an Evaluator that also takes the ply of the scored state below the
// root. Searchers prefer EvaluateAt when an evaluator has it.
type DepthEvaluator interface {
	Evaluator
	EvaluateAt(state game.State, ply int) float64
}

type EvaluatorFunc func(state game.State) float64

func (f EvaluatorFunc) Evaluate(state game.State) float64 {
	return f(state)
}

type Searcher interface {
	BestMove(ctx context.Context, state game.State) (game.Move, error)
}

// Node is a search node as seen on entry to a max or min level.
type Node struct {
	State      game.State
	Ply        int
	Alpha      float64
	Beta       float64
	Maximizing bool
}

// choice is the best move found so far at a level; ok is false until some child was scored.
type choice struct {
	move game.Move
	ok   bool
}

func (c *choice) improve(move game.Move) {
	c.move = move
	c.ok = true
}
