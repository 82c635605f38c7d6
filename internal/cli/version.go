package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set via -ldflags at release time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "palnotify %s (commit %s, built %s)\n", Version, Commit, Date)
		},
	}
}
