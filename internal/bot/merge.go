package bot

import (
	"context"
	"errors"
	"fmt"

	"gitpoap-bot/internal/model"
	"gitpoap-bot/pkg/gitpoap"
	"gitpoap-bot/pkg/report"
)

// HandlePullRequestClose requests claims for the author of a merged PR and
// posts a summary comment. Skips, benign 404s and API failures are logged and
// swallowed; only capability/transport failures are returned to the caller.
func (uc *usecase) HandlePullRequestClose(ctx context.Context, sc model.Scope, input PullRequestCloseInput) error {
	event := input.Event

	if !event.Merged {
		uc.l.Infof(ctx, "PR %s/%s#%d closed without merge, skipping", event.Owner, event.Repo, event.Number)
		return nil
	}

	if event.Author.IsBot() {
		uc.l.Infof(ctx, "PR %s/%s#%d authored by bot %q, skipping", event.Owner, event.Repo, event.Number, event.Author.Login)
		return nil
	}

	if event.Owner == "" {
		err := fmt.Errorf("pull request event for repo %q has empty owner", event.Repo)
		uc.l.Errorf(ctx, "Invariant violation: %v", err)
		uc.reporter.CaptureError(ctx, err, report.Diagnostic{
			Repo:   event.Repo,
			Number: event.Number,
			Sender: event.Sender.Login,
		})
		return nil
	}

	resp, err := uc.claims.CreateClaims(ctx, gitpoap.PullRequestClaimsRequest{
		Organization:         event.Owner,
		Repo:                 event.Repo,
		PullRequestNumber:    event.Number,
		ContributorGithubIDs: []int64{event.Author.ID},
		WasEarnedByMention:   false,
	})
	if err != nil {
		return uc.handleClaimsError(ctx, err, report.Diagnostic{
			Owner:  event.Owner,
			Repo:   event.Repo,
			Number: event.Number,
			Sender: event.Sender.Login,
		})
	}

	if len(resp.NewClaims) == 0 {
		uc.l.Infof(ctx, "No new claims for merged PR %s/%s#%d", event.Owner, event.Repo, event.Number)
		return nil
	}

	commentURL, err := uc.comments.CreateComment(ctx, event.Owner, event.Repo, event.Number, composeClaimsComment(resp.NewClaims))
	if err != nil {
		return fmt.Errorf("posting merge claims comment: %w", err)
	}

	uc.l.Infof(ctx, "Posted claims comment for %d new claim(s): %s", len(resp.NewClaims), commentURL)
	return nil
}

// handleClaimsError applies the shared claims API error policy: 404 warns,
// any other API response reports and stops, transport failures propagate.
func (uc *usecase) handleClaimsError(ctx context.Context, err error, diag report.Diagnostic) error {
	if errors.Is(err, gitpoap.ErrNotFound) {
		uc.l.Warnf(ctx, "Claims API found no claims for %s/%s#%d", diag.Owner, diag.Repo, diag.Number)
		return nil
	}

	var apiErr *gitpoap.APIError
	if errors.As(err, &apiErr) {
		uc.l.Errorf(ctx, "Claims API failed for %s/%s#%d: %v", diag.Owner, diag.Repo, diag.Number, apiErr)
		uc.reporter.CaptureError(ctx, apiErr, diag)
		return nil
	}

	return fmt.Errorf("calling claims API: %w", err)
}
