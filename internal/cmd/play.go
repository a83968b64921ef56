package cmd

import (
	"fmt"
	"os"
	"strings"

	"checkers/agent"
	"checkers/engine"
	"checkers/game/checkers"
	"checkers/meta"
	"checkers/utils"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// checkers play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single game between two agents",
		Long: heredoc.Doc(`play pits two agents against each other and prints the final
			board and result.

			An agent is one of alphabeta (depth-limited search with pruning),
			minimax (the same search without pruning) or random (uniformly
			random legal moves).

			The game starts from the opening position unless --board names a
			file holding an 8 line diagram, row 0 first: '.' is an empty
			square, r/b are men and R/B kings. Red moves first unless --first
			says otherwise.
		`),
		Example: heredoc.Doc(`
			$ checkers play --plies 6 --red alphabeta --black random
			$ checkers play --red minimax --black alphabeta --plies 4 --log game.txt
			$ checkers play --board endgame.txt --first b
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			plies, _ := flags.GetInt("plies")
			red, _ := flags.GetString("red")
			black, _ := flags.GetString("black")
			seed, _ := flags.GetUint64("seed")
			maxTurns, _ := flags.GetInt("max-turns")
			logPath, _ := flags.GetString("log")
			boardPath, _ := flags.GetString("board")
			first, _ := flags.GetString("first")

			board, err := startingBoard(boardPath, first)
			if err != nil {
				return err
			}

			redAgent, err := newAgent(red, checkers.Red, plies, seed)
			if err != nil {
				return err
			}
			blackAgent, err := newAgent(black, checkers.Black, plies, seed+1)
			if err != nil {
				return err
			}

			options := []engine.Option{engine.WithMaxTurns(maxTurns), engine.WithPlayerNames(checkers.Name)}
			if logPath != "" {
				f, err := os.Create(logPath)
				if err != nil {
					return fmt.Errorf("failed to create game log: %w", err)
				}
				defer f.Close()
				options = append(options, engine.WithGameLog(f))
			}

			e := engine.NewLocal(
				board,
				checkers.Players,
				[2]agent.Agent{redAgent, blackAgent},
				options...,
			)

			log.Info().Msgf("starting game between red=%s and black=%s at %d plies...", red, black, plies)
			winner, gameMetric, _, err := e.Run(cmd.Context())
			if err != nil {
				return err
			}
			log.Info().Dur("duration", gameMetric.Duration).Int("moves", gameMetric.TotalMoves).Msg("game over")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e.State)
			over, _ := e.State.IsTerminal()
			switch {
			case !over:
				fmt.Fprintf(out, "STOPPED AFTER %d TURNS\n", gameMetric.TotalMoves)
			case winner == "":
				fmt.Fprintln(out, "GAME IS A DRAW")
			default:
				fmt.Fprintf(out, "%s WINS\n", strings.ToUpper(checkers.Name(winner)))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("plies", meta.DEFAULT_PLIES, "Search depth of the alphabeta and minimax agents")
	flags.String("red", "alphabeta", "Agent playing red (alphabeta, minimax or random)")
	flags.String("black", "random", "Agent playing black (alphabeta, minimax or random)")
	flags.Uint64("seed", 1, "Seed of the random agents")
	flags.Int("max-turns", meta.MAX_TURNS, "Stop the game after this many plies")
	flags.String("log", "", "Write every turn's board and move to this file")
	flags.String("board", "", "Start from the diagram in this file instead of the opening position")
	flags.String("first", checkers.Red, "Player to move first (r or b)")

	return cmd
}

// startingBoard reads the diagram at path, or takes the opening position when path is
// empty, with first to move.
func startingBoard(path, first string) (*checkers.Board, error) {
	if path == "" {
		return checkers.NewBoard().WithTurn(first)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	board, err := checkers.Parse(rows, first)
	if err != nil {
		return nil, fmt.Errorf("invalid board %s: %w", path, err)
	}
	return board, nil
}

func newAgent(kind, player string, plies int, seed uint64) (agent.Agent, error) {
	opponent := utils.Other(checkers.Players, player)
	switch kind {
	case "alphabeta":
		return agent.NewStrategy(player, opponent, plies), nil
	case "minimax":
		return agent.NewStrategy(player, opponent, plies, agent.WithExhaustive()), nil
	case "random":
		return agent.NewRandom(player, seed), nil
	default:
		return nil, fmt.Errorf("unknown agent %q for %s", kind, player)
	}
}
