package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonSteinn/vspy/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show vspy version information.

Displays:
  - vspy version, commit, and build date
  - Go and CUE SDK versions the binary was built with`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
