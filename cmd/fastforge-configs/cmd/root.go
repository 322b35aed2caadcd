package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/fastforge-configs/internal/logger"
	"github.com/oshokin/fastforge-configs/internal/service/emitter"
	"github.com/oshokin/fastforge-configs/internal/version"
)

var (
	// options collects flag values for the emitter.
	//nolint:gochecknoglobals // Required by Cobra CLI framework architecture.
	options emitter.Options

	// rootCmd writes every packaging config below the output root.
	//nolint:gochecknoglobals // Required by Cobra CLI framework architecture.
	rootCmd = &cobra.Command{
		Use:   "fastforge-configs",
		Short: "Write Fastforge packaging configs for PI Task Watch",
		Long: "Write the Fastforge make_config.yaml files for every installer target " +
			"(Linux AppImage/deb/rpm, Windows exe/msix, macOS dmg/pkg). Existing files are overwritten.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			defer logger.Sync()

			opts := options
			opts.Output = cmd.OutOrStdout()

			return emitter.Run(ctx, &opts)
		},
	}
)

// Execute runs the fastforge-configs CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(listCmd)

	flags := rootCmd.Flags()
	flags.StringVarP(&options.ConfigPath, "config", "c", "", "path to an optional settings file")
	flags.StringVarP(&options.Root, "root", "r", "", "output root directory (default: current directory)")
	flags.StringVar(&options.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&options.Atomic, "atomic", false, "replace files atomically via a temporary file")
	flags.BoolVar(&options.DryRun, "dry-run", false, "print the files that would be written without writing them")
}
