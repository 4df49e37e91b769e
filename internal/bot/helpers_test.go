package bot

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/go-github/v53/github"

	"gitpoap-bot/pkg/gitpoap"
	"gitpoap-bot/pkg/githubapp"
	"gitpoap-bot/pkg/report"
	"gitpoap-bot/pkg/slack"
)

// nopLogger satisfies pkg/log.Logger without output.
type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                  {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Info(ctx context.Context, args ...any)                  {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, args ...any)                 {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}

// fakeReporter records captured errors.
type fakeReporter struct {
	mu       sync.Mutex
	captured []report.Diagnostic
}

func (r *fakeReporter) CaptureError(ctx context.Context, err error, diag report.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captured = append(r.captured, diag)
}

func (r *fakeReporter) Flush(timeout time.Duration) {}

func (r *fakeReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.captured)
}

// fakeClaims records requests and replies with a canned response.
type fakeClaims struct {
	mu       sync.Mutex
	requests []gitpoap.ClaimsRequest
	resp     *gitpoap.ClaimsResponse
	err      error
}

func (c *fakeClaims) CreateClaims(ctx context.Context, req gitpoap.ClaimsRequest) (*gitpoap.ClaimsResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if c.resp != nil {
		return c.resp, nil
	}
	return &gitpoap.ClaimsResponse{}, nil
}

func (c *fakeClaims) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// fakeUsers resolves logins from a fixed map. Unknown logins fail with a
// GitHub API error; outageErr (when set) fails every lookup.
type fakeUsers struct {
	ids       map[string]int64
	outageErr error
}

func (u *fakeUsers) ResolveUser(ctx context.Context, login string) (int64, error) {
	if u.outageErr != nil {
		return 0, u.outageErr
	}
	if id, ok := u.ids[login]; ok {
		return id, nil
	}
	return 0, notFoundErrorResponse()
}

// notFoundErrorResponse builds the error shape go-github returns for 404s.
func notFoundErrorResponse() *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: http.StatusNotFound,
			Request: &http.Request{
				Method: http.MethodGet,
				URL:    &url.URL{Path: "/users/unknown"},
			},
		},
		Message: "Not Found",
	}
}

// fakePerms returns a fixed permission set per username.
type fakePerms struct {
	perms map[string]githubapp.Permission
	err   error
}

func (p *fakePerms) PermissionLevel(ctx context.Context, owner, repo, username string) (githubapp.Permission, error) {
	if p.err != nil {
		return githubapp.Permission{}, p.err
	}
	return p.perms[username], nil
}

// fakeComments records posted comments.
type fakeComments struct {
	mu     sync.Mutex
	bodies []string
	err    error
}

func (c *fakeComments) CreateComment(ctx context.Context, owner, repo string, number int, body string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	c.bodies = append(c.bodies, body)
	return "https://github.com/acme/widgets/issues/1#issuecomment-1", nil
}

func (c *fakeComments) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bodies)
}

// fakeNotifier records notifications; done is closed on first delivery so
// tests can wait for the detached dispatch.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	done     chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{})}
}

func (n *fakeNotifier) Notify(ctx context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	if len(n.messages) == 1 {
		close(n.done)
	}
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// newTestUsecase wires a usecase with the given fakes, defaulting the rest.
func newTestUsecase(claims *fakeClaims, users *fakeUsers, perms *fakePerms, comments *fakeComments, notifier *fakeNotifier, reporter *fakeReporter) *usecase {
	if claims == nil {
		claims = &fakeClaims{}
	}
	if users == nil {
		users = &fakeUsers{ids: map[string]int64{}}
	}
	if perms == nil {
		perms = &fakePerms{perms: map[string]githubapp.Permission{}}
	}
	if comments == nil {
		comments = &fakeComments{}
	}
	if reporter == nil {
		reporter = &fakeReporter{}
	}

	// A typed nil must not reach the interface field, notifyAsync checks
	// against the untyped nil.
	var n slack.Notifier
	if notifier != nil {
		n = notifier
	}

	uc := New(claims, users, perms, comments, n, reporter, nopLogger{}, DefaultBotHandle)
	return uc.(*usecase)
}
