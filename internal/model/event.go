package model

import "time"

// AccountType is the GitHub account type of an actor.
type AccountType string

const (
	AccountTypeUser         AccountType = "User"
	AccountTypeBot          AccountType = "Bot"
	AccountTypeOrganization AccountType = "Organization"
)

// Actor identifies the GitHub account behind an event.
type Actor struct {
	ID    int64       // GitHub numeric user id
	Login string      // GitHub login
	Type  AccountType // User, Bot, Organization
}

// IsBot reports whether the actor is a bot-type account.
func (a Actor) IsBot() bool {
	return a.Type == AccountTypeBot
}

// PullRequestEvent is a parsed pull_request webhook delivery.
type PullRequestEvent struct {
	Owner      string    // Repository owner login
	Repo       string    // Repository name
	Number     int       // Pull request number
	Merged     bool      // True when the close was a merge
	Action     string    // Webhook action (closed, opened, ...)
	Author     Actor     // Pull request author
	Sender     Actor     // Account that triggered the delivery
	ReceivedAt time.Time // When the webhook was received
}

// IssueCommentEvent is a parsed issue_comment webhook delivery. GitHub sends
// the same event for comments on issues and pull requests; IssueHTMLURL
// distinguishes the two.
type IssueCommentEvent struct {
	Owner        string    // Repository owner login
	Repo         string    // Repository name
	IssueNumber  int       // Issue or pull request number
	IssueHTMLURL string    // HTML URL of the issue the comment is attached to
	CommentBody  string    // Raw Markdown comment text
	Action       string    // Webhook action (created, edited, ...)
	Sender       Actor     // Comment author
	ReceivedAt   time.Time // When the webhook was received
}
