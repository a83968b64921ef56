package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"checkers/agent"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithGameLog writes every turn's board and move to w.
func WithGameLog(w io.Writer) Option {
	return func(e *Local) {
		e.gameLog = w
	}
}

// WithPlayerNames shows players in the game log by name(player) instead of their token.
func WithPlayerNames(name func(player string) string) Option {
	return func(e *Local) {
		if name != nil {
			e.name = name
		}
	}
}

type Local struct {
	State    game.State
	players  [2]string
	agents   map[string]agent.Agent
	maxTurns int
	gameLog  io.Writer
	name     func(player string) string
}

func NewLocal(state game.State, players [2]string, agents [2]agent.Agent, options ...Option) *Local {
	if players[0] == players[1] {
		panic("need two distinct players")
	}
	if agents[0] == nil || agents[1] == nil {
		panic("need an agent per player")
	}

	e := &Local{ // Default values
		State:    state,
		players:  players,
		agents:   map[string]agent.Agent{players[0]: agents[0], players[1]: agents[1]},
		maxTurns: meta.MAX_TURNS,
		name:     func(player string) string { return player },
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is over or the turn limit is reached.
func (e *Local) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Turn(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", e.State.Turn())

	turn := 0
	for over, _ := e.State.IsTerminal(); !over && turn < e.maxTurns; over, _ = e.State.IsTerminal() {
		player := e.State.Turn()
		current, ok := e.agents[player]
		if !ok {
			return "", gameMetric, moveMetrics, fmt.Errorf("no agent for player %s", player)
		}
		e.record("\nTURN: %d It is %s's turn\n%v", turn, e.name(player), e.State)

		move, metric, err := current.FindMove(ctx, e.State)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d: %s failed to find a move: %w", turn, player, err)
		}
		next, err := e.State.Play(move)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d: %s played %s: %w", turn, player, move, err)
		}
		e.record("%s\n", move)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn + 1,
			Player:       player,
			Move:         move.String(),
			SearchMetric: metric,
		})
		log.Debug().
			Int("turn", turn).
			Str("player", player).
			Str("move", move.String()).
			Int("nodes", metric.Nodes).
			Dur("duration", metric.Duration).
			Msg("move played")

		e.State = next
		turn++
	}

	over, winner := e.State.IsTerminal()
	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn

	switch {
	case !over:
		e.record("\nSTOPPED AFTER %d TURNS\n", turn)
		log.Debug().Msgf("stopped after %d turns (no winner yet)", turn)
	case winner == "":
		e.record("\nGAME IS A DRAW\n")
		log.Debug().Msgf("game ended in a draw after %d turns", turn)
	default:
		e.record("\n%s WINS\n", strings.ToUpper(e.name(winner)))
		log.Debug().Msgf("game ended after %d turns with winner: %s", turn, winner)
	}

	return winner, gameMetric, moveMetrics, nil
}

func (e *Local) record(format string, args ...any) {
	if e.gameLog == nil {
		return
	}
	if _, err := fmt.Fprintf(e.gameLog, format, args...); err != nil {
		log.Warn().Err(err).Msg("failed to write game log")
	}
}
