package gitpoap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when the claims API answers 404: no claims are
// possible for the event. Callers treat this as benign.
var ErrNotFound = errors.New("gitpoap: no claims found for event")

// APIError is a non-200, non-404 response from the claims API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitpoap API error %d: %s", e.StatusCode, e.Body)
}

// Client is the GitPOAP claims API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new claims API client rooted at baseURL.
func New(baseURL string, tokens TokenSource) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("gitpoap: base URL is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("gitpoap: token source is required")
	}
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// CreateClaims submits a claim-creation request. One attempt, no retry.
// Returns ErrNotFound on 404 and *APIError on any other non-200 status.
func (c *Client) CreateClaims(ctx context.Context, req ClaimsRequest) (*ClaimsResponse, error) {
	body, err := marshalRequest(req)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("minting claims API token: %w", err)
	}

	url := c.baseURL + "/claims/gitpoap-bot/create"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call claims API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var parsed ClaimsResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal claims response: %w", err)
		}
		return &parsed, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
}

// marshalRequest serializes the tagged union. The type switch is exhaustive
// over the two concrete request shapes.
func marshalRequest(req ClaimsRequest) ([]byte, error) {
	switch r := req.(type) {
	case PullRequestClaimsRequest:
		var body pullRequestBody
		body.PullRequest.Organization = r.Organization
		body.PullRequest.Repo = r.Repo
		body.PullRequest.PullRequestNumber = r.PullRequestNumber
		body.PullRequest.ContributorGithubIDs = r.ContributorGithubIDs
		body.PullRequest.WasEarnedByMention = r.WasEarnedByMention
		return json.Marshal(body)
	case IssueClaimsRequest:
		var body issueBody
		body.Issue.Organization = r.Organization
		body.Issue.Repo = r.Repo
		body.Issue.IssueNumber = r.IssueNumber
		body.Issue.ContributorGithubIDs = r.ContributorGithubIDs
		body.Issue.WasEarnedByMention = r.WasEarnedByMention
		return json.Marshal(body)
	default:
		return nil, fmt.Errorf("gitpoap: unknown claims request type %T", req)
	}
}
