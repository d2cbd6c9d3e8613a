// Package watchlist implements the command-line interface for managing
// the influencer watchlist.
package watchlist

import (
	"github.com/spf13/cobra"
)

// NewWatchlistCommand creates the watchlist command group.
func NewWatchlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the influencer watchlist",
		Long:  `List, add and remove influencers monitored for product mentions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewAddCommand())
	cmd.AddCommand(NewRemoveCommand())
	cmd.AddCommand(NewLogsCommand())

	return cmd
}
