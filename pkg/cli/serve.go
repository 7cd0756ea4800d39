package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hsinha11/AI-Journal/pkg/cli/config"
	httpctrl "github.com/Hsinha11/AI-Journal/pkg/controller/http"
	"github.com/Hsinha11/AI-Journal/pkg/service/worker"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/Hsinha11/AI-Journal/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var stack searchStack
	var authCfg config.Auth

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AI_JOURNAL_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, stack.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, uc, err := stack.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			// Auth is built after the repository since it needs the user store
			authUC, err := authCfg.Configure(repo.User())
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}
			uc.Auth = authUC

			var reindexWorker *worker.ReindexWorker
			if interval := stack.indexing.ReindexInterval(); interval > 0 || stack.indexing.ReindexOnStart() {
				var opts []worker.Option
				if stack.indexing.ReindexOnStart() {
					opts = append(opts, worker.WithInitialRun())
				}
				reindexWorker = worker.NewReindexWorker(uc.Indexer, interval, opts...)
				if err := reindexWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start reindex worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "no_auth", uc.Auth.IsNoAuthn())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reindexWorker != nil {
					reindexWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				// Let background index writes and an admin reindex finish before the repository closes
				uc.Indexer.Wait()

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
