package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/handlers"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/jobs"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/server"
)

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway for the browser dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := rt.load(ctx); err != nil {
				return err
			}
			// A stale token is dropped here; the gateway then starts signed out.
			if err := rt.app.Session.Bootstrap(ctx); err != nil {
				rt.log.Warn().Err(err).Msg("stored session rejected")
			}

			handlerSet := handlers.NewHandlerSet(rt.log, rt.cfg, rt.app)
			httpServer := server.NewHTTPServer(rt.cfg, rt.log, handlerSet)

			scheduler := jobs.NewScheduler(rt.cfg.Dashboard.Refresh, rt.app, rt.log)
			if err := scheduler.Start(); err != nil {
				rt.log.Error().Err(err).Msg("scheduler start failed")
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.Start()
			}()

			var serveErr error
			select {
			case <-ctx.Done():
				rt.log.Info().Msg("shutdown signal received")
			case serveErr = <-errCh:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				rt.log.Error().Err(err).Msg("graceful shutdown failed")
			}
			scheduler.Stop()

			return serveErr
		},
	}
}
