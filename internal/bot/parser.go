package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-github/v53/github"
)

// mentionPattern matches @handle tokens. GitHub logins are alphanumeric with
// single interior hyphens, at most 39 characters.
var mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9](?:-?[a-zA-Z0-9]){0,38})`)

// ParseComment scans a comment body for the bot mention and tagged users.
// Tagged handles are resolved to numeric ids in first-occurrence order with
// duplicates collapsed; the bot's own handle never appears in ContributorIDs.
func (uc *usecase) ParseComment(ctx context.Context, body string) (ParseResult, error) {
	result := ParseResult{}

	seen := make(map[string]bool)
	seenIDs := make(map[int64]bool)

	for _, match := range mentionPattern.FindAllStringSubmatch(body, -1) {
		handle := match[1]

		key := strings.ToLower(handle)
		if seen[key] {
			continue
		}
		seen[key] = true

		if strings.EqualFold(handle, uc.botHandle) {
			result.BotMentioned = true
			continue
		}

		id, err := uc.users.ResolveUser(ctx, handle)
		if err != nil {
			// An API-level failure (unknown user, suspended account) only
			// drops this handle. Anything else means the lookup capability
			// itself is down and the whole parse fails.
			var ghErr *github.ErrorResponse
			if errors.As(err, &ghErr) {
				uc.l.Warnf(ctx, "Could not resolve mention @%s, skipping: %v", handle, err)
				continue
			}
			return ParseResult{}, fmt.Errorf("resolving mention @%s: %w", handle, err)
		}

		if seenIDs[id] {
			continue
		}
		seenIDs[id] = true
		result.ContributorIDs = append(result.ContributorIDs, id)
	}

	return result, nil
}
