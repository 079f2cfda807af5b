package main

import (
	"context"
	"fmt"
	"os"

	"issue-task-relay/config"
	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository/sqlite"
	"issue-task-relay/internal/relay/usecase"
	"issue-task-relay/pkg/linear"
	"issue-task-relay/pkg/log"
	"issue-task-relay/pkg/todoist"
)

// Creates a Todoist task for every Linear issue that has no linked task yet.
// Usage: go run scripts/backfill-tasks/main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// Backfill needs the clients and the store, not the webhook secrets.
	cfg.Webhook.Enabled = false
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         log.ModeDebug,
		Encoding:     log.EncodingConsole,
		ColorEnabled: true,
	})

	ctx := context.Background()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf(ctx, "Failed to open link store: %v", err)
	}
	defer db.Close()

	linearClient, err := linear.New(cfg.Linear.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to create Linear client: %v", err)
	}
	todoistClient, err := todoist.New(cfg.Todoist.APIKey, cfg.Todoist.ProjectID)
	if err != nil {
		logger.Fatalf(ctx, "Failed to create Todoist client: %v", err)
	}

	uc := usecase.New(logger, linearClient, todoistClient, sqlite.New(db, logger), relay.Options{
		FinalStateID: cfg.Linear.FinalStateID,
		AssigneeID:   cfg.Linear.AssigneeID,
	})

	logger.Info(ctx, "Starting backfill process...")

	out, err := uc.Backfill(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Backfill failed: %v", err)
	}

	logger.Infof(ctx, "Backfill complete! created=%d skipped=%d failed=%d", out.Created, out.Skipped, out.Failed)
}
