package watchlist

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
)

// NewLogsCommand creates a new logs command showing recent processing
// activity.
func NewLogsCommand() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent processing activity",
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

			entries, err := repos.Activity.ListRecent(cmd.Context(), limitFlag)
			if err != nil {
				return fmt.Errorf("failed to list activity: %w", err)
			}

			if len(entries) == 0 {
				deps.Logger.Info("No activity recorded yet")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Time", "Handle", "Platform", "Status", "Found", "Saved", "Duration", "Error"})

			for _, entry := range entries {
				errMsg := ""
				if entry.ErrorMessage != nil {
					errMsg = *entry.ErrorMessage
				}
				t.AppendRow(table.Row{
					entry.CreatedAt.Format("2006-01-02 15:04:05"),
					entry.InfluencerHandle,
					entry.Platform,
					entry.Status,
					entry.ProductsFound,
					entry.ProductsSaved,
					fmt.Sprintf("%dms", entry.DurationMs),
					errMsg,
				})
			}

			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "l", 20, "number of entries to show")

	return cmd
}
