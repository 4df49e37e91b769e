package githubapp

import (
	"context"
	"fmt"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"
)

// Permission is the collaborator capability set for a user on a repository.
type Permission struct {
	Admin    bool
	Push     bool
	Maintain bool
}

// Any reports whether the user holds at least one write-level capability.
func (p Permission) Any() bool {
	return p.Admin || p.Push || p.Maintain
}

// Client performs GitHub REST calls as an App installation.
type Client struct {
	gh *github.Client
}

// NewClient authenticates as the App, mints an installation token and returns
// a client acting as that installation.
func NewClient(ctx context.Context, gen *JWTGenerator, installationID int64) (*Client, error) {
	appClient := github.NewClient(oauth2.NewClient(ctx, &jwtTokenSource{gen: gen}))

	token, _, err := appClient.Apps.CreateInstallationToken(ctx, installationID, &github.InstallationTokenOptions{})
	if err != nil {
		return nil, fmt.Errorf("creating github app installation token: %w", err)
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.GetToken()})
	return &Client{gh: github.NewClient(oauth2.NewClient(ctx, tokenSource))}, nil
}

// NewWithGithubClient wraps an existing go-github client. Used by tests and
// token-only deployments.
func NewWithGithubClient(gh *github.Client) *Client {
	return &Client{gh: gh}
}

// ResolveUser maps a GitHub login to its numeric user id.
func (c *Client) ResolveUser(ctx context.Context, login string) (int64, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return 0, fmt.Errorf("looking up user %q: %w", login, err)
	}
	return user.GetID(), nil
}

// PermissionLevel queries the collaborator permission of username on the repo.
func (c *Client) PermissionLevel(ctx context.Context, owner, repo, username string) (Permission, error) {
	level, _, err := c.gh.Repositories.GetPermissionLevel(ctx, owner, repo, username)
	if err != nil {
		return Permission{}, fmt.Errorf("getting permission level for %q on %s/%s: %w", username, owner, repo, err)
	}

	perms := level.GetUser().GetPermissions()
	p := Permission{
		Admin:    perms["admin"],
		Push:     perms["push"],
		Maintain: perms["maintain"],
	}

	// The permission string is authoritative when the nested map is absent.
	switch level.GetPermission() {
	case "admin":
		p.Admin = true
	case "write":
		p.Push = true
	case "maintain":
		p.Maintain = true
	}

	return p, nil
}

// CreateComment posts a Markdown comment on the issue or pull request thread
// and returns the resulting comment URL.
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) (string, error) {
	comment, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return "", fmt.Errorf("creating comment on %s/%s#%d: %w", owner, repo, number, err)
	}
	return comment.GetHTMLURL(), nil
}

// jwtTokenSource adapts JWTGenerator to oauth2.TokenSource for the app-level
// GitHub client.
type jwtTokenSource struct {
	gen *JWTGenerator
}

func (ts *jwtTokenSource) Token() (*oauth2.Token, error) {
	signed, err := ts.gen.GenerateToken()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: signed, TokenType: "Bearer"}, nil
}
