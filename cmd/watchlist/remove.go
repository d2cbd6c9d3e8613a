package watchlist

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
)

// NewRemoveCommand creates a new remove command. Removal pauses the
// influencer; discovered products keep their attribution.
func NewRemoveCommand() *cobra.Command {
	var platformFlag string

	cmd := &cobra.Command{
		Use:   "remove <handle>",
		Short: "Remove an influencer from monitoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := domain.ParsePlatform(platformFlag)
			if err != nil {
				return err
			}

			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			db, repos, err := common.NewDatabase(deps)
			if err != nil {
				return err
			}
			defer db.Close()

			err = repos.Influencers.UpdateStatus(cmd.Context(), args[0], platform, domain.WatchStatusPaused)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					return fmt.Errorf("%s (%s) is not on the watchlist", args[0], platform)
				}
				return err
			}

			deps.Logger.Info("Influencer removed from monitoring",
				"handle", args[0],
				"platform", platform,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformFlag, "platform", "p", "instagram", "platform (instagram, tiktok, youtube)")

	return cmd
}
