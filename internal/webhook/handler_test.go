package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gitpoap-bot/internal/bot"
	"gitpoap-bot/internal/model"
	"gitpoap-bot/pkg/report"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                  {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Info(ctx context.Context, args ...any)                  {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, args ...any)                 {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}

type nopReporter struct{}

func (nopReporter) CaptureError(ctx context.Context, err error, diag report.Diagnostic) {}
func (nopReporter) Flush(timeout time.Duration)                                        {}

// fakeUseCase records dispatched events.
type fakeUseCase struct {
	mu       sync.Mutex
	prEvents []model.PullRequestEvent
	comments []model.IssueCommentEvent
	dispatch chan struct{}
}

func newFakeUseCase() *fakeUseCase {
	return &fakeUseCase{dispatch: make(chan struct{}, 10)}
}

func (f *fakeUseCase) HandlePullRequestClose(ctx context.Context, sc model.Scope, input bot.PullRequestCloseInput) error {
	f.mu.Lock()
	f.prEvents = append(f.prEvents, input.Event)
	f.mu.Unlock()
	f.dispatch <- struct{}{}
	return nil
}

func (f *fakeUseCase) HandleIssueComment(ctx context.Context, sc model.Scope, input bot.IssueCommentInput) error {
	f.mu.Lock()
	f.comments = append(f.comments, input.Event)
	f.mu.Unlock()
	f.dispatch <- struct{}{}
	return nil
}

func (f *fakeUseCase) dispatched() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prEvents) + len(f.comments)
}

func newTestRouter(uc bot.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandler(uc, SecurityConfig{Secret: "s3cret", RateLimitPerMin: 600}, nopReporter{}, nopLogger{})

	router := gin.New()
	router.POST("/webhook/github", h.HandleGitHubWebhook)
	return router
}

func postWebhook(router *gin.Engine, eventType, signature string, payload []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/github", bytes.NewReader(payload))
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "delivery-1")
	req.Header.Set("X-Hub-Signature-256", signature)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func waitForDispatch(t *testing.T, uc *fakeUseCase) {
	t.Helper()
	select {
	case <-uc.dispatch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async dispatch")
	}
}

func TestHandleGitHubWebhook(t *testing.T) {
	t.Run("invalid signature rejected", func(t *testing.T) {
		uc := newFakeUseCase()
		router := newTestRouter(uc)

		payload := []byte(pullRequestPayload)
		w := postWebhook(router, "pull_request", signPayload("wrong", payload), payload)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if uc.dispatched() != 0 {
			t.Fatal("nothing must be dispatched for invalid signatures")
		}
	})

	t.Run("pull_request closed dispatched", func(t *testing.T) {
		uc := newFakeUseCase()
		router := newTestRouter(uc)

		payload := []byte(pullRequestPayload)
		w := postWebhook(router, "pull_request", signPayload("s3cret", payload), payload)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		waitForDispatch(t, uc)

		if len(uc.prEvents) != 1 || uc.prEvents[0].Number != 42 {
			t.Fatalf("unexpected dispatched events: %+v", uc.prEvents)
		}
	})

	t.Run("pull_request other action ignored", func(t *testing.T) {
		uc := newFakeUseCase()
		router := newTestRouter(uc)

		var raw map[string]any
		json.Unmarshal([]byte(pullRequestPayload), &raw)
		raw["action"] = "opened"
		payload, _ := json.Marshal(raw)

		w := postWebhook(router, "pull_request", signPayload("s3cret", payload), payload)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if uc.dispatched() != 0 {
			t.Fatal("non-closed actions must not be dispatched")
		}
	})

	t.Run("issue_comment created dispatched", func(t *testing.T) {
		uc := newFakeUseCase()
		router := newTestRouter(uc)

		payload := []byte(issueCommentPayload)
		w := postWebhook(router, "issue_comment", signPayload("s3cret", payload), payload)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		waitForDispatch(t, uc)

		if len(uc.comments) != 1 || uc.comments[0].CommentBody != "@gitpoap-bot @alice" {
			t.Fatalf("unexpected dispatched comments: %+v", uc.comments)
		}
	})

	t.Run("unsupported event ignored", func(t *testing.T) {
		uc := newFakeUseCase()
		router := newTestRouter(uc)

		payload := []byte(`{"zen": "Keep it logically awesome."}`)
		w := postWebhook(router, "ping", signPayload("s3cret", payload), payload)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if uc.dispatched() != 0 {
			t.Fatal("unsupported events must not be dispatched")
		}
	})
}
