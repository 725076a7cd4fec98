package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/imagebatch/app/imagebatch"
	"github.com/dmitrymomot/imagebatch/core/config"
	"github.com/dmitrymomot/imagebatch/core/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

type globalFlags struct {
	outputDir string
	driver    string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "imagebatch",
		Short: "Batch image optimizer and archiver",
		Long: `Accepts batches of images over HTTP, converts them to WebP or renames
them, keeps every batch in its own session directory and bundles
sessions into zip archives on demand.

Configuration comes from the environment (and .env); flags override it.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.outputDir, "output-dir", "", "Output directory for the local storage driver (env OUTPUT_DIR)")
	pf.StringVar(&flags.driver, "storage", "", "Storage driver: local or s3 (env STORAGE_DRIVER)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (env LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(flags),
		newSessionsCmd(flags),
		newBundleCmd(flags),
	)
	return root
}

// loadConfig reads the environment and applies flag overrides.
func (f *globalFlags) loadConfig() (imagebatch.Config, error) {
	var cfg imagebatch.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if f.driver != "" {
		cfg.StorageDriver = f.driver
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

// newOfflineApp wires the app for one-shot commands: logs go to stderr at
// warn level unless --log-level says otherwise.
func (f *globalFlags) newOfflineApp(ctx context.Context, cmd *cobra.Command) (*imagebatch.App, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn.String()
	if f.logLevel != "" {
		level = f.logLevel
	}
	return imagebatch.NewApp(ctx,
		imagebatch.WithConfig(cfg),
		imagebatch.WithLogger(logger.New(
			logger.WithOutput(cmd.ErrOrStderr()),
			logger.WithLevelString(level),
		)),
	)
}
