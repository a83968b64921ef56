package engine

import (
	"context"

	"checkers/experiments/metrics"
)

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
