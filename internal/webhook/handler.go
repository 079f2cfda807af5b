package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"issue-task-relay/internal/model"
	"issue-task-relay/internal/relay"
	"issue-task-relay/pkg/linear"
	pkgResponse "issue-task-relay/pkg/response"
	"issue-task-relay/pkg/todoist"
)

// HandleLinearWebhook godoc
// @Summary     Linear webhook
// @Description Receives Linear Issue events and mirrors them onto Todoist.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       Linear-Signature header string true "Hex HMAC-SHA256 of the body"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Malformed payload"
// @Failure     401 {object} response.Resp "Invalid signature"
// @Failure     403 {object} response.Resp "Sender IP not allowed"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Failure     502 {object} response.Resp "Todoist call failed"
// @Router      /webhook/linear [POST]
func (h *handler) HandleLinearWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, ok := h.readVerified(c, model.SourceLinear, func(body []byte) error {
		return h.security.ValidateLinearSignature(body, c.GetHeader("Linear-Signature"))
	})
	if !ok {
		return
	}

	// Linear sends the resource type in Linear-Event; only issues are relayed.
	if eventType := c.GetHeader("Linear-Event"); eventType != "" && eventType != "Issue" {
		h.l.Infof(ctx, "Unsupported Linear event type: %s", eventType)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	issue, err := h.linearParser.ParseIssueEvent(body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to parse Linear event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	h.l.Infof(ctx, "webhook: received linear %s for issue %s", issue.Action, issue.ID)

	relayCtx, cancel := context.WithTimeout(ctx, h.processTimeout)
	defer cancel()

	output, err := h.relayUC.RelayIssue(relayCtx, *issue)
	if err != nil {
		h.l.Errorf(ctx, "uc.RelayIssue %s: %v", issue.ID, err)
		h.relayError(c, err)
		return
	}

	pkgResponse.OK(c, newRelayResp(output))
}

// HandleTodoistWebhook godoc
// @Summary     Todoist webhook
// @Description Receives Todoist item events and mirrors completions onto Linear.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-Todoist-Hmac-SHA256 header string true "Base64 HMAC-SHA256 of the body"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Malformed payload"
// @Failure     401 {object} response.Resp "Invalid signature"
// @Failure     403 {object} response.Resp "Sender IP not allowed"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Failure     502 {object} response.Resp "Linear call failed or was rejected"
// @Router      /webhook/todoist [POST]
func (h *handler) HandleTodoistWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, ok := h.readVerified(c, model.SourceTodoist, func(body []byte) error {
		return h.security.ValidateTodoistSignature(body, c.GetHeader("X-Todoist-Hmac-SHA256"))
	})
	if !ok {
		return
	}

	task, err := h.todoistParser.ParseTaskEvent(body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to parse Todoist event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	h.l.Infof(ctx, "webhook: received todoist %s for task %s (delivery %s)",
		task.EventName, task.TaskID, c.GetHeader("X-Todoist-Delivery-ID"))

	relayCtx, cancel := context.WithTimeout(ctx, h.processTimeout)
	defer cancel()

	output, err := h.relayUC.RelayTask(relayCtx, *task)
	if err != nil {
		h.l.Errorf(ctx, "uc.RelayTask %s: %v", task.TaskID, err)
		h.relayError(c, err)
		return
	}

	pkgResponse.OK(c, newRelayResp(output))
}

// readVerified reads the body and runs the IP, signature and rate limit checks.
// It writes the error response itself and reports false when the request must stop.
func (h *handler) readVerified(c *gin.Context, source model.WebhookSource, verify func([]byte) error) ([]byte, bool) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return nil, false
	}

	if err := h.security.ValidateIPAddress(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "%s webhook rejected: %v", source, err)
		pkgResponse.Forbidden(c)
		return nil, false
	}

	if err := verify(body); err != nil {
		h.l.Errorf(ctx, "%s signature verification failed: %v", source, err)
		pkgResponse.Unauthorized(c)
		return nil, false
	}

	if err := h.security.CheckRateLimit(string(source)); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		pkgResponse.TooManyRequests(c)
		return nil, false
	}

	return body, true
}

// relayError maps relay failures onto HTTP responses.
func (h *handler) relayError(c *gin.Context, err error) {
	var (
		linearErr  *linear.APIError
		gqlErr     *linear.GraphQLError
		todoistErr *todoist.APIError
	)

	switch {
	case errors.Is(err, relay.ErrIssueUpdateRejected),
		errors.As(err, &linearErr),
		errors.As(err, &gqlErr),
		errors.As(err, &todoistErr):
		pkgResponse.ErrorWithStatus(c, http.StatusBadGateway, err)
	case errors.Is(err, context.DeadlineExceeded):
		pkgResponse.ErrorWithStatus(c, http.StatusGatewayTimeout, err)
	default:
		pkgResponse.InternalError(c, err)
	}
}
