package agent

import (
	"context"

	"checkers/experiments/metrics"
	"checkers/game"
)

type Agent interface {
	// FindMove returns the agent's move for state and performance metrics (if collected) from the search
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error)
}
