// Package cli implements the palnotify command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/palnotify/internal/factory"
)

// NewRootCmd creates the root command. Running it with no subcommand starts
// the notification daemon.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:   "palnotify",
		Short: "Join/leave notifications for a Palworld server",
		Long: `palnotify polls a Palworld server's RCON console for the connected player
list and announces joins and leaves to Discord and LINE Notify webhooks,
and optionally in-game.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), factory.Config{
				ConfigPath:       configPath,
				LogLevelOverride: logLevel,
			})
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "Path to the key-value config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newPlayersCmd(&configPath, &logLevel))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command until completion or a process signal
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
