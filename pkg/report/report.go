// Package report wraps error reporting behind an injectable interface so
// handlers never touch reporting globals directly.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Diagnostic is the structured context attached to reported errors.
type Diagnostic struct {
	Owner       string
	Repo        string
	Number      int
	Sender      string
	CommentBody string
	DeliveryID  string
}

// Reporter delivers errors to the error-reporting backend. Implementations
// must be safe for concurrent use.
type Reporter interface {
	// CaptureError reports err together with diagnostic context. It never
	// blocks the caller on delivery.
	CaptureError(ctx context.Context, err error, diag Diagnostic)

	// Flush waits up to timeout for buffered events to be delivered.
	Flush(timeout time.Duration)
}

// Config configures the Sentry-backed reporter.
type Config struct {
	DSN         string
	Environment string
}

// Init initializes the reporter once at startup. An empty DSN yields a no-op
// reporter so local runs need no Sentry project.
func Init(cfg Config) (Reporter, error) {
	if cfg.DSN == "" {
		return noopReporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing sentry: %w", err)
	}

	return &sentryReporter{}, nil
}

type sentryReporter struct{}

func (r *sentryReporter) CaptureError(ctx context.Context, err error, diag Diagnostic) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("owner", diag.Owner)
		scope.SetTag("repo", diag.Repo)
		scope.SetContext("event", map[string]any{
			"owner":        diag.Owner,
			"repo":         diag.Repo,
			"number":       diag.Number,
			"sender":       diag.Sender,
			"comment_body": diag.CommentBody,
			"delivery_id":  diag.DeliveryID,
		})
		sentry.CaptureException(err)
	})
}

func (r *sentryReporter) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// noopReporter discards all events.
type noopReporter struct{}

func (noopReporter) CaptureError(ctx context.Context, err error, diag Diagnostic) {}

func (noopReporter) Flush(timeout time.Duration) {}
