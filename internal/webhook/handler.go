package webhook

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gitpoap-bot/internal/bot"
	"gitpoap-bot/internal/model"
	pkgLog "gitpoap-bot/pkg/log"
	"gitpoap-bot/pkg/report"
	pkgResponse "gitpoap-bot/pkg/response"
)

// dispatchTimeout bounds one background handler invocation.
const dispatchTimeout = 2 * time.Minute

// HandleGitHubWebhook processes GitHub webhook deliveries.
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "GitHub signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Rejected webhook source: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "source not allowed"})
		return
	}

	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	sc := model.Scope{DeliveryID: c.GetHeader("X-GitHub-Delivery")}
	if sc.DeliveryID == "" {
		sc.DeliveryID = uuid.NewString()
	}

	eventType := c.GetHeader("X-GitHub-Event")

	switch eventType {
	case "pull_request":
		event, err := h.parser.ParsePullRequestEvent(body)
		if err != nil {
			h.l.Errorf(ctx, "Failed to parse pull_request event: %v", err)
			pkgResponse.Error(c, err, nil)
			return
		}
		if event.Action != "closed" {
			pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported action"})
			return
		}

		go h.processAsync(sc, func(ctx context.Context) error {
			return h.botUC.HandlePullRequestClose(ctx, sc, bot.PullRequestCloseInput{Event: *event})
		})

	case "issue_comment":
		event, err := h.parser.ParseIssueCommentEvent(body)
		if err != nil {
			h.l.Errorf(ctx, "Failed to parse issue_comment event: %v", err)
			pkgResponse.Error(c, err, nil)
			return
		}
		if event.Action != "created" {
			pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported action"})
			return
		}

		go h.processAsync(sc, func(ctx context.Context) error {
			return h.botUC.HandleIssueComment(ctx, sc, bot.IssueCommentInput{Event: *event})
		})

	default:
		h.l.Infof(ctx, "Unsupported GitHub event type: %s", eventType)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	// Acknowledge immediately, processing continues in background
	pkgResponse.OK(c, gin.H{"status": "accepted"})
}

// processAsync runs one handler invocation in the background. A failing
// delivery is logged and dropped; it must never take the process down or
// affect other invocations.
func (h *Handler) processAsync(sc model.Scope, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	ctx = pkgLog.ContextWithRequestID(ctx, sc.DeliveryID)

	defer func() {
		if r := recover(); r != nil {
			h.l.Errorf(ctx, "Panic while processing delivery %s: %v", sc.DeliveryID, r)
		}
	}()

	h.l.Infof(ctx, "Processing delivery %s", sc.DeliveryID)

	if err := fn(ctx); err != nil {
		h.l.Errorf(ctx, "Delivery %s failed: %v", sc.DeliveryID, err)
		h.reporter.CaptureError(ctx, err, report.Diagnostic{DeliveryID: sc.DeliveryID})
		return
	}

	h.l.Infof(ctx, "Delivery %s processed", sc.DeliveryID)
}
