package searcher

import (
	"context"

	"checkers/game"
)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning. Among moves of
// equal value the first one enumerated is kept, which makes it agree with Minimax.
type AlphaBeta struct {
	search
}

func NewAlphaBeta(maxPlayer, minPlayer string, plies int, evaluator Evaluator, options ...Option) *AlphaBeta {
	return &AlphaBeta{search: newSearch("alphabeta", maxPlayer, minPlayer, plies, evaluator, options)}
}

// BestMove returns the maximizing player's move from state. Errors from the state are
// returned as they are.
func (a *AlphaBeta) BestMove(ctx context.Context, state game.State) (game.Move, error) {
	if err := a.start(state); err != nil {
		return nil, err
	}
	_, best, err := a.maxValue(ctx, state, NegInf, PosInf, 0)
	return a.finish(best, err)
}

func (a *AlphaBeta) maxValue(ctx context.Context, state game.State, alpha, beta float64, ply int) (float64, choice, error) {
	a.trace(Node{State: state, Ply: ply, Alpha: alpha, Beta: beta, Maximizing: true})
	stop, err := a.cutoff(ctx, state, ply)
	if err != nil {
		return 0, choice{}, err
	}
	if stop {
		return a.evaluate(state, ply), choice{}, nil
	}

	moves, err := a.moves(state, a.maxPlayer, ply)
	if err != nil {
		return 0, choice{}, err
	}

	v, best := NegInf, choice{}
	for _, move := range moves {
		child, err := state.Play(move)
		if err != nil {
			return 0, choice{}, err
		}
		value, _, err := a.minValue(ctx, child, alpha, beta, ply+1)
		if err != nil {
			return 0, choice{}, err
		}
		if value > v {
			v = value
			best.improve(move)
		}
		// The min parent already has something no better than v
		if v >= beta {
			a.metrics.AddPrune()
			break
		}
		alpha = max(alpha, v)
	}
	return v, best, nil
}

func (a *AlphaBeta) minValue(ctx context.Context, state game.State, alpha, beta float64, ply int) (float64, choice, error) {
	a.trace(Node{State: state, Ply: ply, Alpha: alpha, Beta: beta, Maximizing: false})
	stop, err := a.cutoff(ctx, state, ply)
	if err != nil {
		return 0, choice{}, err
	}
	if stop {
		return a.evaluate(state, ply), choice{}, nil
	}

	moves, err := a.moves(state, a.minPlayer, ply)
	if err != nil {
		return 0, choice{}, err
	}

	v, best := PosInf, choice{}
	for _, move := range moves {
		child, err := state.Play(move)
		if err != nil {
			return 0, choice{}, err
		}
		value, _, err := a.maxValue(ctx, child, alpha, beta, ply+1)
		if err != nil {
			return 0, choice{}, err
		}
		if value < v {
			v = value
			best.improve(move)
		}
		if v <= alpha {
			a.metrics.AddPrune()
			break
		}
		beta = min(beta, v)
	}
	return v, best, nil
}
