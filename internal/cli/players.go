package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcoot/palnotify/internal/factory"
)

// newPlayersCmd creates the one-shot player list command, an operator
// diagnostic for checking connectivity and credentials
func newPlayersCmd(configPath, logLevel *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List the players currently connected to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory.New(factory.Config{
				ConfigPath:       *configPath,
				LogLevelOverride: *logLevel,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.DialTimeout+app.Config.RequestTimeout)
			defer cancel()

			players, err := app.Client.Players(ctx)
			if err != nil {
				return err
			}

			return NewOutput(cmd.OutOrStdout(), output).PrintPlayers(players)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	return cmd
}
