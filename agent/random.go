package agent

import (
	"context"
	"fmt"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"golang.org/x/exp/rand"
)

// Random is a baseline agent that picks uniformly among the legal moves. It is not
// safe for concurrent use.
type Random struct {
	player string
	rng    *rand.Rand
}

func NewRandom(player string, seed uint64) *Random {
	return &Random{
		player: player,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Searcher: "random"}
	if err := ctx.Err(); err != nil {
		return nil, metric, err
	}
	moves, err := state.LegalMoves(r.player)
	if err != nil {
		return nil, metric, err
	}
	if len(moves) == 0 {
		return nil, metric, fmt.Errorf("%w: %s has no moves", searcher.ErrNoLegalActions, r.player)
	}
	return moves[r.rng.Intn(len(moves))], metric, nil
}
