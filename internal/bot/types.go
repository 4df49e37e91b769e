package bot

import (
	"gitpoap-bot/internal/model"
)

// DefaultBotHandle is the mention token that wakes the bot.
const DefaultBotHandle = "gitpoap-bot"

// PullRequestCloseInput is input for merge handling.
type PullRequestCloseInput struct {
	Event model.PullRequestEvent
}

// IssueCommentInput is input for mention handling.
type IssueCommentInput struct {
	Event model.IssueCommentEvent
}

// ParseResult is the outcome of scanning one comment body.
type ParseResult struct {
	BotMentioned   bool    // True when the bot handle was mentioned
	ContributorIDs []int64 // Resolved ids of tagged users, first-occurrence order, deduplicated
}
