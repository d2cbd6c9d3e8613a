// Package httpd implements the HTTP server command. It runs the control
// plane API and the monitoring loop in one process.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/api"
	"github.com/trovehq/prowler/internal/monitor"
	"github.com/trovehq/prowler/internal/tasks"
)

const shutdownTimeout = 10 * time.Second

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Run the HTTP API with the monitoring loop",
		Long: `Start the control plane API and the background monitoring loop.
The API manages the watchlist, triggers manual processing runs and
switches recurring monitoring on and off.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return err
	}

	if err := deps.Config.ValidatePipeline(); err != nil {
		return fmt.Errorf("pipeline configuration invalid: %w", err)
	}

	db, repos, err := common.NewDatabase(deps)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := common.NewPipeline(deps, repos)
	loop := monitor.New(pipeline, repos.Influencers, repos.Configs, deps.Config.GetMonitorConfig(), deps.Logger)
	taskService := tasks.NewService(ctx, repos.Tasks, repos.Influencers, pipeline, deps.Logger)

	handler := api.NewHandler(api.HandlerParams{
		Influencers: repos.Influencers,
		Products:    repos.Products,
		Activity:    repos.Activity,
		Configs:     repos.Configs,
		Tasks:       taskService,
		Monitor:     loop,
		Logger:      deps.Logger,
	})
	server := api.NewServer(deps.Config.GetServerConfig(), handler, deps.Logger)

	errCh := make(chan error, 2)

	go func() {
		if loopErr := loop.Run(ctx); loopErr != nil && !errors.Is(loopErr, context.Canceled) {
			errCh <- fmt.Errorf("monitoring loop: %w", loopErr)
			return
		}
		errCh <- nil
	}()

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			errCh <- fmt.Errorf("http server: %w", serveErr)
			return
		}
		errCh <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
		deps.Logger.Info("shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Logger.WithError(err).Error("http server shutdown failed")
	}

	return runErr
}
