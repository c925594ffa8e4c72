package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/cli/config"
	controller "github.com/secmon-lab/caseboard/pkg/controller/http"
	"github.com/secmon-lab/caseboard/pkg/usecase"
	"github.com/secmon-lab/caseboard/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		cacheCfg     config.Cache
		dashboardCfg config.Dashboard
		sourceCfg    config.Source
	)

	flags := joinFlags(
		serverCfg.Flags(),
		cacheCfg.Flags(),
		dashboardCfg.Flags(),
		sourceCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting caseboard server",
				slog.Any("server", serverCfg),
				slog.Any("cache", cacheCfg),
				slog.Any("dashboard", dashboardCfg),
				slog.Any("source", sourceCfg),
			)

			dashboardConfig, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}

			store, err := cacheCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if serverCfg.WarmOnStart {
				if !sourceCfg.IsConfigured() {
					return goerr.New("warm-on-start requires a source. Please provide CASEBOARD_SOURCE_URL")
				}
				client, err := sourceCfg.Configure(store, logger)
				if err != nil {
					return err
				}
				warmer := usecase.NewWarmer(store, client.Populators(), nil)
				async.Dispatch(ctx, "warm-cache", func(ctx context.Context) error {
					_, err := warmer.Warm(ctx)
					return err
				})
			}

			dashboardUC := usecase.NewDashboard(store, dashboardConfig)
			server, err := controller.NewServer(ctx, serverCfg.Addr, dashboardUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
