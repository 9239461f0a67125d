package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
)

func main() {
	// Parse command line flags
	steps := flag.Int("steps", 0, "Number of migrations to roll back with down; 0 rolls back all")
	list := flag.Bool("list", false, "Print the embedded migration files and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] up|down\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		files, err := postgres.MigrationFiles()
		if err != nil {
			log.Fatalf("Failed to list migrations: %v", err)
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	direction := flag.Arg(0)
	if direction != "up" && direction != "down" {
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	switch direction {
	case "up":
		logger.Info("Running database migrations...")
		err = postgres.Migrate(db, logger)
	case "down":
		logger.Infow("Rolling back database migrations...", "steps", *steps)
		err = postgres.MigrateDown(db, *steps, logger)
	}
	if err != nil {
		logger.Fatalw("Migration failed", "direction", direction, "error", err)
	}

	fmt.Println("Migration process completed")
}
