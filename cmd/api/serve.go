package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/file"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background task workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := openRuntime(ctx, *envFile)
			if err != nil {
				return err
			}
			defer rt.Close()

			workerCtx, stopWorkers := context.WithCancel(context.Background())
			defer stopWorkers()
			rt.app.Worker.Start(workerCtx)

			janitor := file.NewJanitor(rt.cfg.Storage.Dir, rt.cfg.Storage.Retention, rt.logger)
			if err := janitor.Start(rt.cfg.Storage.JanitorSchedule); err != nil {
				return err
			}
			defer janitor.Stop()

			serverErr := make(chan error, 1)
			go func() {
				rt.logger.WithField("port", rt.cfg.Port).Info("http server listening")
				if err := rt.app.Server.Start(":" + rt.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case <-ctx.Done():
			case err := <-serverErr:
				if err != nil {
					stopWorkers()
					rt.app.Worker.Wait()
					return err
				}
			}

			rt.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := rt.app.Server.Shutdown(shutdownCtx); err != nil {
				rt.logger.WithError(err).Error("graceful shutdown failed")
			}

			stopWorkers()
			rt.app.Worker.Wait()
			return nil
		},
	}
}
