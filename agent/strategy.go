package agent

import (
	"context"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

type Option func(s *Strategy)

func WithWeights(weights Weights) Option {
	return func(s *Strategy) {
		s.weights = weights
	}
}

// WithExhaustive searches without pruning. Moves are the same, only slower.
func WithExhaustive() Option {
	return func(s *Strategy) {
		s.exhaustive = true
	}
}

// Strategy plays for one side by searching plies ahead with alpha-beta.
type Strategy struct {
	maxPlayer  string
	minPlayer  string
	plies      int
	weights    Weights
	exhaustive bool
	evaluator  Evaluator
	metrics    metrics.Collector
	searcher   searcher.Searcher
}

func NewStrategy(maxPlayer, minPlayer string, plies int, options ...Option) *Strategy {
	s := &Strategy{ // Default values
		maxPlayer: maxPlayer,
		minPlayer: minPlayer,
		plies:     plies,
		weights:   DefaultWeights,
		metrics:   metrics.NewCollector(),
	}
	for _, option := range options {
		option(s)
	}

	s.evaluator = NewEvaluator(maxPlayer, minPlayer, s.weights)
	if s.exhaustive {
		s.searcher = searcher.NewMinimax(maxPlayer, minPlayer, plies, s.evaluator, searcher.WithMetrics(s.metrics))
	} else {
		s.searcher = searcher.NewAlphaBeta(maxPlayer, minPlayer, plies, s.evaluator, searcher.WithMetrics(s.metrics))
	}
	return s
}

func (s *Strategy) Player() string {
	return s.maxPlayer
}

func (s *Strategy) Evaluate(state game.State) float64 {
	return s.evaluator.Evaluate(state)
}

func (s *Strategy) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	move, err := s.searcher.BestMove(ctx, state)
	metric := s.metrics.Complete()
	if err != nil {
		return nil, metric, err
	}
	return move, metric, nil
}

// Play finds the best move on state and returns the resulting state with the move.
func (s *Strategy) Play(ctx context.Context, state game.State) (game.State, game.Move, error) {
	move, _, err := s.FindMove(ctx, state)
	if err != nil {
		return nil, nil, err
	}
	next, err := state.Play(move)
	if err != nil {
		return nil, nil, err
	}
	return next, move, nil
}
