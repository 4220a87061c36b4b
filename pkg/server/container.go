package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"customers-api/internal/config"
	"customers-api/internal/database"
	"customers-api/internal/repositories"
	"customers-api/internal/repositories/memory"
	"customers-api/internal/repositories/mongodb"
	"customers-api/internal/repositories/sqlite"
	"customers-api/internal/services"
)

// Container holds all application dependencies. It is built once at
// startup and only read afterwards.
type Container struct {
	Config          *config.Config
	Logger          *logrus.Logger
	Store           repositories.CustomerStore
	CustomerService services.CustomerService
}

// NewContainer connects the configured store and wires the services on top of it
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = config.NewLogger(cfg.Log)
	}

	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}

	return NewContainerWithStore(cfg, logger, store), nil
}

// NewContainerWithStore wires the services on an already opened store
func NewContainerWithStore(cfg *config.Config, logger *logrus.Logger, store repositories.CustomerStore) *Container {
	return &Container{
		Config:          cfg,
		Logger:          logger,
		Store:           store,
		CustomerService: services.NewCustomerService(store, logger),
	}
}

// Close cleans up all resources
func (c *Container) Close(ctx context.Context) error {
	if c.Store == nil {
		return nil
	}

	if err := c.Store.Close(ctx); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	c.Logger.Info("Store connection closed")
	return nil
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *logrus.Logger) (repositories.CustomerStore, error) {
	switch cfg.Driver {
	case repositories.DriverMongo:
		conn, err := database.ConnectMongo(ctx, database.MongoConfig{
			URI:         cfg.ConnectionString,
			Database:    cfg.Name,
			Collection:  cfg.Collection,
			Timeout:     cfg.Timeout,
			MinPoolSize: cfg.MinPoolSize,
			MaxPoolSize: cfg.MaxPoolSize,
		}, logger)
		if err != nil {
			return nil, err
		}
		return mongodb.NewCustomerStore(conn.Collection, logger), nil

	case repositories.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.ConnectionString, logger)
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewCustomerStore(ctx, db, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil

	case repositories.DriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewCustomerStore(logger)

	default:
		return nil, fmt.Errorf("%w: %q", repositories.ErrUnsupportedDriver, cfg.Driver)
	}
}
