package emitter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/fastforge-configs/internal/config"
	"github.com/oshokin/fastforge-configs/internal/domain/fastforge"
	"github.com/oshokin/fastforge-configs/internal/logger"
	"github.com/oshokin/fastforge-configs/internal/repository/output"
	"github.com/oshokin/fastforge-configs/internal/templates"
)

// Options contains inputs for the emitter entry point.
// Zero values mean "not set" and fall back to the settings file or defaults.
type Options struct {
	// ConfigPath is an optional settings YAML file.
	ConfigPath string
	// Root overrides the output root.
	Root string
	// LogLevel overrides the log level.
	LogLevel string
	// Atomic forces atomic replacement of files.
	Atomic bool
	// DryRun reports the paths without touching the filesystem.
	DryRun bool
	// Output receives the report; defaults to stdout.
	Output io.Writer
}

// Run writes the packaging configs and prints the report.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "fastforge-configs")

	if opts == nil {
		opts = new(Options)
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	set, err := templates.Default()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	ctx = logger.WithKV(ctx, "root", cfg.Root)

	if opts.DryRun {
		logger.Info(ctx, "Dry run, nothing will be written")

		return writeReport(out, plannedHeading, set.Paths())
	}

	writer := output.NewFileWriter(cfg.Root, output.WithAtomicReplace(cfg.AtomicWrites))

	var written fastforge.WrittenFileList

	written, err = CreateConfigs(ctx, set, writer)
	if err != nil {
		logger.ErrorKV(ctx, "Config generation failed", "written", len(written), "error", err)

		return err
	}

	logger.InfoKV(ctx, "Config files generated", "count", len(written))

	return writeReport(out, createdHeading, written)
}

// resolveConfig merges the settings file, command-line overrides and defaults.
func resolveConfig(opts *Options) (*config.Config, error) {
	cfg := new(config.Config)

	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}

		cfg = loaded
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.Atomic {
		cfg.AtomicWrites = true
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
