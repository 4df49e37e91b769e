package gitpoap

// ClaimsRequest is the tagged union of claim-creation request shapes. Exactly
// one concrete type exists per scope; marshalRequest matches exhaustively.
type ClaimsRequest interface {
	claimsRequest()
}

// PullRequestClaimsRequest requests claims for a merged or mentioned pull request.
type PullRequestClaimsRequest struct {
	Organization         string
	Repo                 string
	PullRequestNumber    int
	ContributorGithubIDs []int64
	WasEarnedByMention   bool
}

func (PullRequestClaimsRequest) claimsRequest() {}

// IssueClaimsRequest requests claims for contributors mentioned on an issue.
type IssueClaimsRequest struct {
	Organization         string
	Repo                 string
	IssueNumber          int
	ContributorGithubIDs []int64
	WasEarnedByMention   bool
}

func (IssueClaimsRequest) claimsRequest() {}

// pullRequestBody is the wire shape for pull-request-scoped requests.
type pullRequestBody struct {
	PullRequest struct {
		Organization         string  `json:"organization"`
		Repo                 string  `json:"repo"`
		PullRequestNumber    int     `json:"pullRequestNumber"`
		ContributorGithubIDs []int64 `json:"contributorGithubIds"`
		WasEarnedByMention   bool    `json:"wasEarnedByMention"`
	} `json:"pullRequest"`
}

// issueBody is the wire shape for issue-scoped requests.
type issueBody struct {
	Issue struct {
		Organization         string  `json:"organization"`
		Repo                 string  `json:"repo"`
		IssueNumber          int     `json:"issueNumber"`
		ContributorGithubIDs []int64 `json:"contributorGithubIds"`
		WasEarnedByMention   bool    `json:"wasEarnedByMention"`
	} `json:"issue"`
}

// GitPOAP is the badge a claim belongs to.
type GitPOAP struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// Claim is one newly created claim. The claims API owns the full shape; only
// the fields needed for comment text are decoded, unknown fields are ignored.
type Claim struct {
	ID      int64   `json:"id"`
	GitPOAP GitPOAP `json:"gitPOAP"`
}

// ClaimsResponse is the 200 response body of the claim-creation endpoint.
type ClaimsResponse struct {
	NewClaims []Claim `json:"newClaims"`
}
