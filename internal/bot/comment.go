package bot

import (
	"fmt"
	"strings"

	"gitpoap-bot/pkg/gitpoap"
)

// gitpoapSiteURL is the base of user-facing claim links.
const gitpoapSiteURL = "https://www.gitpoap.io"

// composeClaimsComment renders the Markdown summary posted back on the
// thread. Callers only invoke it with a non-empty claim list.
func composeClaimsComment(claims []gitpoap.Claim) string {
	var b strings.Builder

	if len(claims) == 1 {
		b.WriteString("Woo, a new GitPOAP was minted for this contribution!\n\n")
	} else {
		fmt.Fprintf(&b, "Woo, %d new GitPOAPs were minted for this contribution!\n\n", len(claims))
	}

	for _, claim := range claims {
		name := claim.GitPOAP.Name
		if name == "" {
			name = fmt.Sprintf("GitPOAP #%d", claim.GitPOAP.ID)
		}

		if claim.GitPOAP.ImageURL != "" {
			fmt.Fprintf(&b, "[![%s](%s)](%s/gp/%d)\n", name, claim.GitPOAP.ImageURL, gitpoapSiteURL, claim.GitPOAP.ID)
		} else {
			fmt.Fprintf(&b, "* [%s](%s/gp/%d)\n", name, gitpoapSiteURL, claim.GitPOAP.ID)
		}
	}

	fmt.Fprintf(&b, "\nHead to [gitpoap.io](%s) to mint your claims.", gitpoapSiteURL)
	return b.String()
}
