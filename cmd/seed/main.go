package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"customers-api/internal/config"
	"customers-api/internal/models"
	"customers-api/internal/seed"
	"customers-api/pkg/server"
)

func main() {
	var (
		file    = flag.String("file", "", "JSON file with an array of {name, industry} objects")
		dryRun  = flag.Bool("dry-run", false, "Log what would be inserted without writing")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(cfg.Log)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	inputs := seed.DefaultCustomers()
	if *file != "" {
		inputs, err = seed.LoadFile(*file)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load seed file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, inputs, *dryRun); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, inputs []models.CustomerInput, dryRun bool) error {
	logger.WithFields(logrus.Fields{
		"driver":  cfg.Database.Driver,
		"records": len(inputs),
		"dry_run": dryRun,
	}).Info("Starting customer seed")

	container, err := server.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close(context.Background())

	result, err := seed.NewSeeder(container.CustomerService, logger).Seed(ctx, inputs, dryRun)
	if err != nil {
		return err
	}

	for _, customer := range result.Created {
		fmt.Printf("  ✓ %s  %s (%s)\n", customer.ID, customer.Name, customer.Industry)
	}

	logger.WithFields(logrus.Fields{
		"processed": result.Processed,
		"created":   len(result.Created),
		"errors":    len(result.Errors),
	}).Info("Customer seed completed")

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d customers were rejected", len(result.Errors), result.Processed)
	}
	return nil
}
