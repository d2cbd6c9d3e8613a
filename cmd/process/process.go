// Package process implements the one-shot manual processing command.
package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
)

// Command returns the process command.
func Command() *cobra.Command {
	var platformFlag string

	cmd := &cobra.Command{
		Use:   "process <handle>",
		Short: "Run the discovery pipeline once for a single influencer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], platformFlag)
		},
	}

	cmd.Flags().StringVarP(&platformFlag, "platform", "p", "instagram", "platform (instagram, tiktok, youtube)")

	return cmd
}

func run(ctx context.Context, handle, platformRaw string) error {
	platform, err := domain.ParsePlatform(platformRaw)
	if err != nil {
		return err
	}

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

	if _, err := repos.Influencers.GetByHandle(ctx, handle, platform); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("influencer %s (%s) is not on the watchlist", handle, platform)
		}
		return err
	}

	pipeline := common.NewPipeline(deps, repos)
	result := pipeline.Process(ctx, handle, platform)

	fmt.Printf("status:         %s\n", result.Status)
	fmt.Printf("products found: %d\n", result.ProductsFound)
	fmt.Printf("products saved: %d\n", result.ProductsSaved)
	if result.Err != nil {
		fmt.Printf("error:          %v\n", result.Err)
	}

	return nil
}
