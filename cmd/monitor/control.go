package monitor

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
)

// NewStartCommand switches recurring monitoring on.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Switch recurring monitoring on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setActive(cmd, true)
		},
	}
}

// NewStopCommand switches recurring monitoring off.
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Switch recurring monitoring off",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setActive(cmd, false)
		},
	}
}

// NewStatusCommand shows the stored monitoring configuration.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the monitoring configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, db, repos, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			cfg, err := repos.Configs.Get(cmd.Context())
			if err != nil {
				return err
			}

			deps.Logger.Info("Monitoring configuration",
				"is_active", cfg.IsActive,
				"interval", cfg.Interval(),
			)
			return nil
		},
	}
}

// NewIntervalCommand updates the cycle interval.
func NewIntervalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interval <seconds>",
		Short: "Set the monitoring cycle interval in seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid interval %q: %w", args[0], err)
			}

			deps, db, repos, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repos.Configs.SetInterval(cmd.Context(), seconds); err != nil {
				return err
			}

			deps.Logger.Info("Monitoring interval updated", "seconds", seconds)
			return nil
		},
	}
}

func setActive(cmd *cobra.Command, active bool) error {
	deps, db, repos, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repos.Configs.SetActive(cmd.Context(), active); err != nil {
		return err
	}

	deps.Logger.Info("Monitoring flag updated", "is_active", active)
	return nil
}

func openDatabase() (common.CommandDeps, *sqlx.DB, *common.Repositories, error) {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return common.CommandDeps{}, nil, nil, fmt.Errorf("failed to get dependencies: %w", err)
	}

	db, repos, err := common.NewDatabase(deps)
	if err != nil {
		return common.CommandDeps{}, nil, nil, err
	}

	return deps, db, repos, nil
}
