package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/fastforge-configs/internal/templates"
)

// listCmd prints the relative paths of the embedded configs.
//
//nolint:gochecknoglobals // Required by Cobra CLI framework architecture.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the packaging configs this tool writes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, p := range templates.Paths() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
				return err
			}
		}

		return nil
	},
}
