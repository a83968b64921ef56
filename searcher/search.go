package searcher

import (
	"context"
	"fmt"

	"checkers/experiments/metrics"
	"checkers/game"
)

type Option func(s *search)

// WithMetrics counts nodes, evaluations and prunes of every search into collector.
func WithMetrics(collector metrics.Collector) Option {
	return func(s *search) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// WithTrace calls trace on entry to every node, cutoff nodes included.
func WithTrace(trace func(Node)) Option {
	return func(s *search) {
		if trace != nil {
			s.trace = trace
		}
	}
}

// search holds what is fixed for the lifetime of a searcher.
type search struct {
	name      string
	maxPlayer string
	minPlayer string
	plies     int
	evaluator Evaluator
	metrics   metrics.Collector
	trace     func(Node)
}

func newSearch(name, maxPlayer, minPlayer string, plies int, evaluator Evaluator, options []Option) search {
	if evaluator == nil {
		panic("evaluator cannot be nil")
	}
	if maxPlayer == minPlayer {
		panic("max and min players must differ")
	}
	s := search{ // Default values
		name:      name,
		maxPlayer: maxPlayer,
		minPlayer: minPlayer,
		plies:     plies,
		evaluator: evaluator,
		metrics:   metrics.NewDummyCollector(),
		trace:     func(Node) {},
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// start rejects searches that could never yield a move.
func (s *search) start(state game.State) error {
	s.metrics.Start(s.name, s.plies)
	if s.plies <= 0 {
		return fmt.Errorf("%w: ply limit %d", ErrNoSearchDepth, s.plies)
	}
	if over, _ := state.IsTerminal(); over {
		return fmt.Errorf("%w: root is terminal", ErrNoLegalActions)
	}
	return nil
}

// cutoff is true at terminal states and at the ply limit.
func (s *search) cutoff(ctx context.Context, state game.State, ply int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if over, _ := state.IsTerminal(); over {
		return true, nil
	}
	return ply == s.plies, nil
}

func (s *search) evaluate(state game.State, ply int) float64 {
	s.metrics.AddEvaluation()
	if e, ok := s.evaluator.(DepthEvaluator); ok {
		return e.EvaluateAt(state, ply)
	}
	return s.evaluator.Evaluate(state)
}

func (s *search) moves(state game.State, player string, ply int) ([]game.Move, error) {
	s.metrics.AddNode()
	moves, err := state.LegalMoves(player)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: %s has no moves at ply %d", ErrNoLegalActions, player, ply)
	}
	return moves, nil
}

func (s *search) finish(best choice, err error) (game.Move, error) {
	if err != nil {
		return nil, err
	}
	if !best.ok {
		return nil, ErrNoLegalActions
	}
	return best.move, nil
}
