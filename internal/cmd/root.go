package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "checkers",
		Short: "Play and benchmark depth-limited checkers search",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("log-level")
			level, err := zerolog.ParseLevel(name)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", name, err)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
			return nil
		},
	}

	// global flags
	root.PersistentFlags().String("log-level", "info", "Minimum level of log messages (trace, debug, info, warn, error)")

	root.AddCommand(Play())
	root.AddCommand(Experiment())

	return root
}

// Execute runs the command line until it completes or ctx is cancelled.
func Execute(ctx context.Context) {
	if err := Root().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
