package watchlist

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
)

// TableRenderer handles the display of watchlist data in a table format.
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance.
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// RenderTable formats and displays the watchlist in a table format.
func (r *TableRenderer) RenderTable(influencers []*domain.Influencer) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Handle", "Platform", "Display Name", "Status", "Last Checked", "Products Found"})

	for _, influencer := range influencers {
		lastChecked := "never"
		if influencer.LastCheckedAt != nil {
			lastChecked = influencer.LastCheckedAt.Format("2006-01-02 15:04")
		}

		t.AppendRow(table.Row{
			influencer.Handle,
			influencer.Platform,
			influencer.DisplayName,
			influencer.Status,
			lastChecked,
			influencer.TotalProductsFound,
		})
	}

	t.Render()
	return nil
}

// NewListCommand creates a new list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all influencers on the watchlist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			db, repos, err := common.NewDatabase(deps)
			if err != nil {
				return err
			}
			defer db.Close()

			return list(cmd.Context(), deps, repos)
		},
	}
}

func list(ctx context.Context, deps common.CommandDeps, repos *common.Repositories) error {
	influencers, err := repos.Influencers.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list influencers: %w", err)
	}

	if len(influencers) == 0 {
		deps.Logger.Info("Watchlist is empty")
		return nil
	}

	renderer := NewTableRenderer(deps.Logger)
	return renderer.RenderTable(influencers)
}
