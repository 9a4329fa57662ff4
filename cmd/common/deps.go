// Package common provides shared dependency wiring for CLI commands.
package common

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matwasilewski/data-vortex/internal/config"
	"github.com/matwasilewski/data-vortex/internal/database"
	"github.com/matwasilewski/data-vortex/internal/logger"
)

// CommandDeps holds the dependencies every command needs.
type CommandDeps struct {
	Config *config.Config
	Logger logger.Interface
}

// Validate checks that all required dependencies are present.
func (d *CommandDeps) Validate() error {
	if d.Config == nil {
		return errors.New("config is required")
	}
	if d.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// NewCommandDeps loads configuration and builds a logger for a command.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	deps := &CommandDeps{
		Config: cfg,
		Logger: log,
	}
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return deps, nil
}

// OpenRepository connects to Postgres and returns a listing repository.
// The caller owns the returned DB handle and must close it.
func (d *CommandDeps) OpenRepository() (*database.ListingRepository, *sqlx.DB, error) {
	db, err := database.NewPostgresConnection(d.Config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database.NewListingRepository(db), db, nil
}

// OpenStore connects to Postgres and wraps the connection in a listing
// store. The caller owns the returned DB handle and must close it.
func (d *CommandDeps) OpenStore() (*database.ListingStore, *sqlx.DB, error) {
	repo, db, err := d.OpenRepository()
	if err != nil {
		return nil, nil, err
	}
	return database.NewListingStore(repo), db, nil
}
