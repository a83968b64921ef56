package experiments

import (
	"context"
	"fmt"

	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game/checkers"
	"checkers/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Results struct {
	Config      Config
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Score tallies one matchup from the point of view of its first agent.
type Score struct {
	Agent1, Agent2      int
	Wins, Losses, Draws int
}

type gameRun struct {
	id     int
	red    metrics.AgentConfig
	black  metrics.AgentConfig
	metric metrics.GameMetric
	moves  []metrics.MoveMetric
}

// Run plays every matchup of the experiment, config.Parallelism games at a time.
// The agents of a matchup swap colours every game.
func Run(ctx context.Context, config Config) (*Results, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	games := make([]gameRun, 0, len(config.Matchups)*config.Games)
	for _, matchup := range config.Matchups {
		first, second := config.agent(matchup[0]), config.agent(matchup[1])
		for i := 0; i < config.Games; i++ {
			g := gameRun{id: len(games) + 1, red: first, black: second}
			if i%2 == 1 {
				g.red, g.black = second, first
			}
			games = append(games, g)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", config.Name, len(games))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(config.Parallelism)
	for i := range games {
		g := &games[i] // Each goroutine owns its slot
		group.Go(func() error {
			log.Info().Msgf("starting game %d of %d between red=%+v and black=%+v...", g.id, len(games), g.red, g.black)
			if err := runGame(ctx, config, g); err != nil {
				return fmt.Errorf("game %d: %w", g.id, err)
			}
			log.Info().Msgf("completed game %d of %d with winner: %q", g.id, len(games), g.metric.Winner)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	results := &Results{Config: config}
	for _, g := range games {
		results.GameRecords = append(results.GameRecords, metrics.GameRecord{
			ID:         g.id,
			Agent1:     g.red.ID,
			Agent2:     g.black.ID,
			GameMetric: g.metric,
		})
		for _, mm := range g.moves {
			results.MoveRecords = append(results.MoveRecords, metrics.MoveRecord{
				Game:       g.id,
				MoveMetric: mm,
			})
		}
	}
	return results, nil
}

func runGame(ctx context.Context, config Config, g *gameRun) error {
	players := checkers.Players
	agents := [2]agent.Agent{
		createAgent(g.red, players, checkers.Red, g.id),
		createAgent(g.black, players, checkers.Black, g.id),
	}
	e := engine.NewLocal(checkers.NewBoard(), players, agents, engine.WithMaxTurns(config.MaxTurns))

	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return err
	}
	g.metric = gameMetric
	g.moves = moveMetrics
	return nil
}

func createAgent(config metrics.AgentConfig, players [2]string, player string, gameID int) agent.Agent {
	if config.Random {
		// Vary the seed per game so random games differ but stay reproducible
		return agent.NewRandom(player, config.Seed+uint64(gameID))
	}

	options := []agent.Option{}
	if config.Exhaustive {
		options = append(options, agent.WithExhaustive())
	}
	return agent.NewStrategy(player, utils.Other(players, player), config.Plies, options...)
}

// Scores tallies wins, losses and draws per matchup in matchup order, from the seat
// of the matchup's first agent. Games stopped at the turn limit count as draws.
func (r *Results) Scores() []Score {
	scores := make([]Score, len(r.Config.Matchups))
	for i, matchup := range r.Config.Matchups {
		scores[i] = Score{Agent1: matchup[0], Agent2: matchup[1]}
	}

	// Records are created matchup by matchup, config.Games at a time, and the first
	// agent plays red in the even games of its matchup
	for i, record := range r.GameRecords {
		score := &scores[i/r.Config.Games]
		firstColour := checkers.Red
		if (i%r.Config.Games)%2 == 1 {
			firstColour = checkers.Black
		}
		switch record.Winner {
		case "":
			score.Draws++
		case firstColour:
			score.Wins++
		default:
			score.Losses++
		}
	}
	return scores
}

// Write stores the agent configs, game records and move records under root and returns
// the directory they were written to.
func (r *Results) Write(root string) (string, error) {
	writer, err := metrics.NewWriter(root, r.Config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(r.Config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(r.GameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(r.MoveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
