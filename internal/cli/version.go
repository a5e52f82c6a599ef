package cli

import (
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time via
// -ldflags "-X github.com/roach88/cee/internal/cli.Version=...".
var Version = "0.1.0-dev"

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cee version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			return formatter.SuccessText(Version, map[string]string{"version": Version})
		},
	}
}
