package watchlist

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
)

// NewAddCommand creates a new add command.
func NewAddCommand() *cobra.Command {
	var (
		platformFlag    string
		displayNameFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <handle>",
		Short: "Add an influencer to the watchlist",
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

			influencer := &domain.Influencer{
				Handle:      args[0],
				Platform:    platform,
				DisplayName: displayNameFlag,
				Status:      domain.WatchStatusActive,
			}

			if err := repos.Influencers.Create(cmd.Context(), influencer); err != nil {
				if errors.Is(err, database.ErrDuplicateInfluencer) {
					return fmt.Errorf("%s (%s) is already on the watchlist", args[0], platform)
				}
				return err
			}

			deps.Logger.Info("Influencer added to watchlist",
				"handle", influencer.Handle,
				"platform", influencer.Platform,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformFlag, "platform", "p", "instagram", "platform (instagram, tiktok, youtube)")
	cmd.Flags().StringVarP(&displayNameFlag, "name", "n", "", "display name")

	return cmd
}
