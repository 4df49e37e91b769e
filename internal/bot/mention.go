package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"gitpoap-bot/internal/model"
	"gitpoap-bot/pkg/gitpoap"
	pkgLog "gitpoap-bot/pkg/log"
	"gitpoap-bot/pkg/report"
)

// prURLPattern matches the tail of a pull request HTML URL. issue_comment
// events carry the same payload for issues and PRs; only the URL tells them
// apart.
var prURLPattern = regexp.MustCompile(`/pull/(\d+)$`)

// HandleIssueComment processes a created comment: parses mentions, checks the
// commenter's repository permission, requests claims for tagged contributors
// and posts a summary comment plus a best-effort Slack notification.
func (uc *usecase) HandleIssueComment(ctx context.Context, sc model.Scope, input IssueCommentInput) error {
	event := input.Event

	parsed, err := uc.ParseComment(ctx, event.CommentBody)
	if err != nil {
		return fmt.Errorf("parsing comment on %s/%s#%d: %w", event.Owner, event.Repo, event.IssueNumber, err)
	}

	if !parsed.BotMentioned {
		uc.l.Debugf(ctx, "Comment on %s/%s#%d does not mention @%s, skipping", event.Owner, event.Repo, event.IssueNumber, uc.botHandle)
		return nil
	}

	if event.Owner == "" {
		err := fmt.Errorf("issue comment event for repo %q has empty owner", event.Repo)
		uc.l.Errorf(ctx, "Invariant violation: %v", err)
		uc.reporter.CaptureError(ctx, err, report.Diagnostic{
			Repo:        event.Repo,
			Number:      event.IssueNumber,
			Sender:      event.Sender.Login,
			CommentBody: event.CommentBody,
		})
		return nil
	}

	// Only privileged users may mint claims by mention.
	permission, err := uc.perms.PermissionLevel(ctx, event.Owner, event.Repo, event.Sender.Login)
	if err != nil {
		return fmt.Errorf("checking permission of %q on %s/%s: %w", event.Sender.Login, event.Owner, event.Repo, err)
	}
	if !permission.Any() {
		uc.l.Infof(ctx, "User %q lacks permission to mint claims on %s/%s, skipping", event.Sender.Login, event.Owner, event.Repo)
		return nil
	}

	if len(parsed.ContributorIDs) == 0 {
		uc.l.Infof(ctx, "Mention on %s/%s#%d tagged no contributors, skipping", event.Owner, event.Repo, event.IssueNumber)
		return nil
	}

	diag := report.Diagnostic{
		Owner:       event.Owner,
		Repo:        event.Repo,
		Number:      event.IssueNumber,
		Sender:      event.Sender.Login,
		CommentBody: event.CommentBody,
	}

	resp, err := uc.claims.CreateClaims(ctx, uc.buildMentionRequest(event, parsed.ContributorIDs))
	if err != nil {
		return uc.handleClaimsError(ctx, err, diag)
	}

	if len(resp.NewClaims) == 0 {
		uc.l.Infof(ctx, "No new claims for mention on %s/%s#%d", event.Owner, event.Repo, event.IssueNumber)
		return nil
	}

	uc.notifyAsync(ctx, fmt.Sprintf(
		"%d new claim(s) minted via mention by %s on %s/%s#%d",
		len(resp.NewClaims), event.Sender.Login, event.Owner, event.Repo, event.IssueNumber,
	))

	commentURL, err := uc.comments.CreateComment(ctx, event.Owner, event.Repo, event.IssueNumber, composeClaimsComment(resp.NewClaims))
	if err != nil {
		return fmt.Errorf("posting mention claims comment: %w", err)
	}

	uc.l.Infof(ctx, "Posted claims comment for %d new claim(s): %s", len(resp.NewClaims), commentURL)
	return nil
}

// buildMentionRequest picks the claim scope from the issue HTML URL.
func (uc *usecase) buildMentionRequest(event model.IssueCommentEvent, contributorIDs []int64) gitpoap.ClaimsRequest {
	if m := prURLPattern.FindStringSubmatch(event.IssueHTMLURL); m != nil {
		number := event.IssueNumber
		if parsed, err := strconv.Atoi(m[1]); err == nil {
			number = parsed
		}
		return gitpoap.PullRequestClaimsRequest{
			Organization:         event.Owner,
			Repo:                 event.Repo,
			PullRequestNumber:    number,
			ContributorGithubIDs: contributorIDs,
			WasEarnedByMention:   true,
		}
	}

	return gitpoap.IssueClaimsRequest{
		Organization:         event.Owner,
		Repo:                 event.Repo,
		IssueNumber:          event.IssueNumber,
		ContributorGithubIDs: contributorIDs,
		WasEarnedByMention:   true,
	}
}

// notifyAsync dispatches the Slack notification on a detached goroutine.
// Notification failure never aborts the handler; errors are logged inside.
func (uc *usecase) notifyAsync(ctx context.Context, text string) {
	if uc.notifier == nil {
		return
	}

	// Detach from the handler's context so comment posting and notification
	// do not share a cancellation.
	nctx := context.Background()
	if rid := pkgLog.RequestIDFromContext(ctx); rid != "" {
		nctx = pkgLog.ContextWithRequestID(nctx, rid)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				uc.l.Errorf(nctx, "Panic in notification dispatch: %v", r)
			}
		}()

		if err := uc.notifier.Notify(nctx, text); err != nil {
			uc.l.Warnf(nctx, "Slack notification failed: %v", err)
		}
	}()
}
