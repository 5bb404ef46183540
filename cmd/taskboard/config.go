package main

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/repository/sqlite"
)

// RepositoryFactory creates repository instances based on configuration
type RepositoryFactory struct {
	cfg *config.Config
}

// NewRepositoryFactory creates a new repository factory for the given configuration
func NewRepositoryFactory(cfg *config.Config) *RepositoryFactory {
	return &RepositoryFactory{cfg: cfg}
}

// CreateRepository creates a repository instance for the configured driver
func (rf *RepositoryFactory) CreateRepository(ctx context.Context) (repository.Repository, error) {
	switch rf.cfg.Database.Driver {
	case config.DriverSQLite:
		return rf.createSQLiteRepository()
	case config.DriverPostgres:
		return rf.createPostgresRepository(ctx)
	default:
		return nil, fmt.Errorf("unknown database driver %q", rf.cfg.Database.Driver)
	}
}

func (rf *RepositoryFactory) createSQLiteRepository() (repository.Repository, error) {
	if err := os.MkdirAll(rf.cfg.Database.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.New(rf.cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite database: %w", err)
	}
	return repo, nil
}

func (rf *RepositoryFactory) createPostgresRepository(ctx context.Context) (repository.Repository, error) {
	if rf.cfg.Database.DSN == "" {
		return nil, fmt.Errorf("TASKBOARD_DB_DSN is required for the postgres driver")
	}

	repo, err := postgres.New(ctx, rf.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres database: %w", err)
	}
	return repo, nil
}
