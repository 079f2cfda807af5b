package webhook

import (
	"time"

	"github.com/gin-gonic/gin"

	"issue-task-relay/internal/relay"
	pkgLog "issue-task-relay/pkg/log"
)

const defaultProcessTimeout = 30 * time.Second

// Handler defines the webhook endpoints of both services.
type Handler interface {
	HandleLinearWebhook(c *gin.Context)
	HandleTodoistWebhook(c *gin.Context)
}

type handler struct {
	relayUC        relay.UseCase
	security       *SecurityValidator
	linearParser   *LinearWebhookParser
	todoistParser  *TodoistWebhookParser
	processTimeout time.Duration
	l              pkgLog.Logger
}

func NewHandler(
	relayUC relay.UseCase,
	cfg Config,
	l pkgLog.Logger,
) Handler {
	timeout := cfg.ProcessTimeout
	if timeout <= 0 {
		timeout = defaultProcessTimeout
	}

	return &handler{
		relayUC:        relayUC,
		security:       NewSecurityValidator(cfg.Security),
		linearParser:   NewLinearParser(),
		todoistParser:  NewTodoistParser(),
		processTimeout: timeout,
		l:              l,
	}
}
