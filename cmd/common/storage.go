package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trovehq/prowler/internal/database"
)

// Repositories groups the database repositories commands work with.
type Repositories struct {
	Influencers *database.InfluencerRepository
	Products    *database.ProductRepository
	Activity    *database.ActivityLogRepository
	Configs     *database.ConfigRepository
	Tasks       *database.TaskRepository
}

// NewDatabase opens the PostgreSQL connection and builds the repositories.
// The caller owns the returned connection and must close it.
func NewDatabase(deps CommandDeps) (*sqlx.DB, *Repositories, error) {
	db, err := database.NewPostgresConnection(deps.Config.GetDatabaseConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	repos := &Repositories{
		Influencers: database.NewInfluencerRepository(db),
		Products:    database.NewProductRepository(db),
		Activity:    database.NewActivityLogRepository(db),
		Configs:     database.NewConfigRepository(db),
		Tasks:       database.NewTaskRepository(db),
	}

	return db, repos, nil
}
