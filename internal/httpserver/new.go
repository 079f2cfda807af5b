package httpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"issue-task-relay/internal/middleware"
	"issue-task-relay/internal/webhook"
	"issue-task-relay/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Readiness
	readiness func(ctx context.Context) error

	// Webhooks
	webhookHandler webhook.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For and X-Real-IP headers
	// are honoured when resolving the client IP. Empty trusts no proxy.
	TrustedProxies []string

	// Readiness reports whether dependencies (the link store) are usable. Optional.
	Readiness func(ctx context.Context) error

	// WebhookHandler is nil when webhooks are disabled.
	WebhookHandler webhook.Handler
}

// New creates a new HTTPServer instance and registers its routes.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		readiness:      cfg.Readiness,
		webhookHandler: cfg.WebhookHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	// gin trusts every proxy unless told otherwise; a nil list disables forwarding headers.
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	srv.mapHandlers(middleware.New(logger))

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
