package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	"gitpoap-bot/internal/model"
)

// GitHubWebhookParser parses GitHub webhook payloads into model events,
// reading only the fields the handlers consume.
type GitHubWebhookParser struct{}

func NewGitHubParser() *GitHubWebhookParser {
	return &GitHubWebhookParser{}
}

// actorPayload is the user object GitHub embeds in several places.
type actorPayload struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

func (a actorPayload) toModel() model.Actor {
	return model.Actor{
		ID:    a.ID,
		Login: a.Login,
		Type:  model.AccountType(a.Type),
	}
}

// ParsePullRequestEvent parses a pull_request delivery.
func (p *GitHubWebhookParser) ParsePullRequestEvent(payload []byte) (*model.PullRequestEvent, error) {
	var event struct {
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Merged bool         `json:"merged"`
			User   actorPayload `json:"user"`
		} `json:"pull_request"`
		Repository struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"repository"`
		Sender actorPayload `json:"sender"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request event: %w", err)
	}

	return &model.PullRequestEvent{
		Owner:      event.Repository.Owner.Login,
		Repo:       event.Repository.Name,
		Number:     event.Number,
		Merged:     event.PullRequest.Merged,
		Action:     event.Action,
		Author:     event.PullRequest.User.toModel(),
		Sender:     event.Sender.toModel(),
		ReceivedAt: time.Now(),
	}, nil
}

// ParseIssueCommentEvent parses an issue_comment delivery. The same event
// fires for comments on issues and on pull requests.
func (p *GitHubWebhookParser) ParseIssueCommentEvent(payload []byte) (*model.IssueCommentEvent, error) {
	var event struct {
		Action string `json:"action"`
		Issue  struct {
			Number  int    `json:"number"`
			HTMLURL string `json:"html_url"`
		} `json:"issue"`
		Comment struct {
			Body string       `json:"body"`
			User actorPayload `json:"user"`
		} `json:"comment"`
		Repository struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"repository"`
		Sender actorPayload `json:"sender"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse issue comment event: %w", err)
	}

	sender := event.Sender.toModel()
	if sender.Login == "" {
		sender = event.Comment.User.toModel()
	}

	return &model.IssueCommentEvent{
		Owner:        event.Repository.Owner.Login,
		Repo:         event.Repository.Name,
		IssueNumber:  event.Issue.Number,
		IssueHTMLURL: event.Issue.HTMLURL,
		CommentBody:  event.Comment.Body,
		Action:       event.Action,
		Sender:       sender,
		ReceivedAt:   time.Now(),
	}, nil
}
