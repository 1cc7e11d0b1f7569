package cli

import (
	"os"

	"github.com/KirkDiggler/guessyear/internal/config"
	"github.com/KirkDiggler/guessyear/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg  *config.Config
	zlog *zap.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "guessyear",
		Short: "Discord bot for guessing the year of historical events",
		Long: `guessyear runs a Discord bot that names a historical event and asks
players for the year it happened, answering "earlier" or "later" until they get it.

Configuration is read from the environment and an optional .env file.
Without a subcommand the bot is started, same as "guessyear run".`,
		RunE: runE,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}

			zlog, err = logger.New(logger.Config{
				Level:    cfg.LogLevel,
				Encoding: cfg.LogEncoding,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if zlog != nil {
				_ = zlog.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSeedEventsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
