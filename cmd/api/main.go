package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"issue-task-relay/config"
	_ "issue-task-relay/docs" // Swagger docs
	"issue-task-relay/internal/httpserver"
	"issue-task-relay/internal/relay"
	"issue-task-relay/internal/relay/repository/sqlite"
	"issue-task-relay/internal/relay/usecase"
	"issue-task-relay/internal/webhook"
	"issue-task-relay/pkg/linear"
	"issue-task-relay/pkg/log"
	"issue-task-relay/pkg/todoist"
)

// @title       Issue Task Relay API
// @description Mirrors Linear issues onto Todoist tasks and Todoist completions back onto Linear.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Issue Task Relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Link store
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Errorf(ctx, "Failed to open link store: %v", err)
		return
	}
	defer db.Close()
	links := sqlite.New(db, logger)
	logger.Infof(ctx, "Link store opened at %s", cfg.Database.Path)

	// 4. Upstream clients
	linearClient, err := linear.New(cfg.Linear.APIKey)
	if err != nil {
		logger.Errorf(ctx, "Failed to create Linear client: %v", err)
		return
	}
	todoistClient, err := todoist.New(cfg.Todoist.APIKey, cfg.Todoist.ProjectID)
	if err != nil {
		logger.Errorf(ctx, "Failed to create Todoist client: %v", err)
		return
	}

	// 5. Relay UseCase
	relayUC := usecase.New(logger, linearClient, todoistClient, links, relay.Options{
		FinalStateID:      cfg.Linear.FinalStateID,
		AssigneeID:        cfg.Linear.AssigneeID,
		CompletionComment: cfg.Linear.CompletionComment,
	})

	// 6. Webhook delivery
	var webhookHandler webhook.Handler
	if cfg.Webhook.Enabled {
		webhookHandler = webhook.NewHandler(relayUC, webhook.Config{
			Security: webhook.SecurityConfig{
				LinearSecret:    cfg.Linear.WebhookSecret,
				TodoistSecret:   cfg.Todoist.ClientSecret,
				AllowedIPs:      cfg.Webhook.AllowedIPs,
				RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
			},
			ProcessTimeout: cfg.Webhook.ProcessTimeout,
		}, logger)
		logger.Info(ctx, "Webhooks enabled")
	} else {
		logger.Warn(ctx, "Webhooks disabled: webhook.enabled is false")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		Readiness:      db.PingContext,
		WebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
