// Package migrate implements the database migration command.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migrate driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file source
	"github.com/spf13/cobra"

	"github.com/trovehq/prowler/cmd/common"
	"github.com/trovehq/prowler/internal/database"
)

// Command returns the migrate command.
func Command() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "path to migration files")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(migrationsPath, func(m *migrate.Migrate) error { return m.Up() })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(migrationsPath, func(m *migrate.Migrate) error { return m.Steps(-1) })
		},
	})

	return cmd
}

func run(path string, apply func(*migrate.Migrate) error) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to get dependencies: %w", err)
	}

	m, err := migrate.New("file://"+path, database.MigrateURL(deps.Config.GetDatabaseConfig()))
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := apply(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			deps.Logger.Info("Database schema already up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	deps.Logger.Info("Migrations applied")
	return nil
}
