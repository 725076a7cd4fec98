package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/imagebatch/app/imagebatch"
	"github.com/dmitrymomot/imagebatch/core/logger"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			app, err := imagebatch.NewApp(ctx, imagebatch.WithConfig(cfg))
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					app.Logger().Error("close failed", logger.Error(err))
				}
			}()

			return serve(ctx, app)
		},
	}
}

func serve(ctx context.Context, app *imagebatch.App) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.Run(ctx))
	return g.Wait()
}
