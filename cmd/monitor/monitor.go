// Package monitor implements the headless monitoring loop command.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/monitor"
)

// Command returns the monitor command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the recurring watchlist monitoring loop",
		Long: `Run the monitoring loop in the foreground. While monitoring is
switched on, each cycle fetches recent posts for every active influencer,
extracts product mentions and stores new products with buy links.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	cmd.AddCommand(NewStartCommand())
	cmd.AddCommand(NewStopCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewIntervalCommand())

	return cmd
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

	pipeline := common.NewPipeline(deps, repos)
	loop := monitor.New(pipeline, repos.Influencers, repos.Configs, deps.Config.GetMonitorConfig(), deps.Logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	deps.Logger.Info("monitoring loop stopped")
	return nil
}
