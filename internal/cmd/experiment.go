package cmd

import (
	"fmt"

	"checkers/experiments"
	"checkers/meta"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// checkers experiment
func Experiment() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run matchups between agents and record the results",
		Long: heredoc.Doc(`experiment plays every matchup of an experiment several
			times, swapping colours between games, and writes the agent
			configs, game records and move records as CSV files.

			Without --config a default experiment compares search depths
			against a random baseline. A config file is YAML, for example:

			  name: shallow
			  games: 10
			  parallelism: 4
			  max_turns: 300
			  agents:
			    - {id: 0, random: true, seed: 1}
			    - {id: 1, plies: 4}
			    - {id: 2, plies: 4, exhaustive: true}
			  matchups: [[1, 0], [2, 1]]
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			path, _ := flags.GetString("config")
			out, _ := flags.GetString("out")

			config := experiments.DefaultConfig()
			if path != "" {
				var err error
				if config, err = experiments.LoadConfig(path); err != nil {
					return err
				}
			}
			if flags.Changed("parallelism") {
				config.Parallelism, _ = flags.GetInt("parallelism")
			}

			results, err := experiments.Run(cmd.Context(), config)
			if err != nil {
				return err
			}
			dir, err := results.Write(out)
			if err != nil {
				return err
			}
			log.Info().Msgf("stored %s experiment records in %s", config.Name, dir)

			w := cmd.OutOrStdout()
			for _, score := range results.Scores() {
				fmt.Fprintf(w, "agent %d vs agent %d: %d wins, %d losses, %d draws\n",
					score.Agent1, score.Agent2, score.Wins, score.Losses, score.Draws)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "YAML file describing the experiment")
	flags.String("out", meta.RECORDS_DIR, "Directory to write the records to")
	flags.Int("parallelism", meta.PARALLELISM, "Number of games played at once")

	return cmd
}
