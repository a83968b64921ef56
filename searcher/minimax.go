package searcher

import (
	"context"

	"checkers/game"
)

// Minimax walks the whole tree down to the ply limit without pruning.
type Minimax struct {
	search
}

func NewMinimax(maxPlayer, minPlayer string, plies int, evaluator Evaluator, options ...Option) *Minimax {
	return &Minimax{search: newSearch("minimax", maxPlayer, minPlayer, plies, evaluator, options)}
}

func (m *Minimax) BestMove(ctx context.Context, state game.State) (game.Move, error) {
	if err := m.start(state); err != nil {
		return nil, err
	}
	_, best, err := m.value(ctx, state, 0, true)
	return m.finish(best, err)
}

// Value is the minimax value of state with the maximizer to act.
func (m *Minimax) Value(ctx context.Context, state game.State) (float64, error) {
	v, _, err := m.value(ctx, state, 0, true)
	return v, err
}

func (m *Minimax) value(ctx context.Context, state game.State, ply int, maximizing bool) (float64, choice, error) {
	m.trace(Node{State: state, Ply: ply, Alpha: NegInf, Beta: PosInf, Maximizing: maximizing})
	stop, err := m.cutoff(ctx, state, ply)
	if err != nil {
		return 0, choice{}, err
	}
	if stop {
		return m.evaluate(state, ply), choice{}, nil
	}

	player, v := m.maxPlayer, NegInf
	if !maximizing {
		player, v = m.minPlayer, PosInf
	}
	moves, err := m.moves(state, player, ply)
	if err != nil {
		return 0, choice{}, err
	}

	best := choice{}
	for _, move := range moves {
		child, err := state.Play(move)
		if err != nil {
			return 0, choice{}, err
		}
		value, _, err := m.value(ctx, child, ply+1, !maximizing)
		if err != nil {
			return 0, choice{}, err
		}
		if (maximizing && value > v) || (!maximizing && value < v) {
			v = value
			best.improve(move)
		}
	}
	return v, best, nil
}
