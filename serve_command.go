package main

import (
	"context"
	"net/http"

	"github.com/nijaru/yt-blog/backend"
	"github.com/nijaru/yt-blog/handlers"
	"github.com/nijaru/yt-blog/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog post form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := ctx.ensureLogger(true)
			if err != nil {
				return err
			}
			defer ctx.close()

			client := backend.NewClient(cfg.BackendURL, backend.WithLogger(log))
			server := handlers.NewServer(cfg, client,
				handlers.WithLogger(log),
				handlers.WithPresenter(presenter.New(
					presenter.WithTempDir(cfg.TempDir),
					presenter.WithLogger(log),
				)),
			)

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return errors.Wrap(err, "server error")
				}
				return nil
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "server shutdown")
			}
			log.Info("Server stopped")
			return nil
		},
	}
}
