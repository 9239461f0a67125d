package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/repository"
	"github.com/skyup-digital/skyup-api/internal/service"
)

// SyncInvoiceSequence lifts the active invoice counter to the latest receipt.
// Run it after importing receipts directly into the database. DRY_RUN=true
// only reports what would change.
func SyncInvoiceSequence() error {
	dryRun := os.Getenv("DRY_RUN") == "true"

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	svc := service.NewReceiptService(service.ServiceParams{
		Logger:      log,
		Config:      cfg,
		DB:          db,
		ReceiptRepo: repository.NewReceiptRepository(db, log),
	})

	result, err := svc.SyncInvoiceSequence(context.Background(), dryRun)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
