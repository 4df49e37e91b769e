package bot

import (
	"context"

	"gitpoap-bot/internal/model"
	"gitpoap-bot/pkg/githubapp"
)

// UseCase reacts to the two webhook events the bot cares about.
type UseCase interface {
	// HandlePullRequestClose processes a pull_request closed event and
	// requests claims for the PR author when the close was a merge.
	HandlePullRequestClose(ctx context.Context, sc model.Scope, input PullRequestCloseInput) error

	// HandleIssueComment processes a new issue/PR comment, and requests
	// claims for tagged contributors when the bot was mentioned by a
	// privileged user.
	HandleIssueComment(ctx context.Context, sc model.Scope, input IssueCommentInput) error
}

// UserResolver maps a GitHub login to its numeric user id.
type UserResolver interface {
	ResolveUser(ctx context.Context, login string) (int64, error)
}

// PermissionChecker queries collaborator permission on a repository.
type PermissionChecker interface {
	PermissionLevel(ctx context.Context, owner, repo, username string) (githubapp.Permission, error)
}

// Commenter posts a Markdown comment on an issue/PR thread.
type Commenter interface {
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (string, error)
}
