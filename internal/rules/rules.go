// Package rules holds the fixed set of credential recognition rules.
// The set is known at build time; adding a provider means adding a Rule
// here, not runtime configuration.
package rules

import (
	"regexp"

	"github.com/leakgate/leakgate/internal/types"
)

// Patterns are word-bounded so a credential embedded in a longer
// alphanumeric token is not reported.
var (
	reOpenAI = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}\b`)
	reGitLab = regexp.MustCompile(`\bglpat-[A-Za-z0-9_-]{20,}\b`)
	reGoogle = regexp.MustCompile(`\bAIza[A-Za-z0-9_-]{35}\b`)
)

// Rule pairs a provider category with its recognition pattern.
type Rule struct {
	ID       string
	Title    string
	Regex    *regexp.Regexp
	Severity types.Severity
}

// All is the rule set in its stable iteration order. Scanners must walk it
// in declaration order so findings within a line are deterministic.
var All = []Rule{
	{ID: "openai_api_key", Title: "OpenAI API Key", Regex: reOpenAI, Severity: types.SevHigh},
	{ID: "gitlab_pat", Title: "GitLab Personal Access Token", Regex: reGitLab, Severity: types.SevHigh},
	{ID: "google_api_key", Title: "Google API Key", Regex: reGoogle, Severity: types.SevHigh},
}

// IDs returns the rule identifiers in declaration order.
func IDs() []string {
	out := make([]string, len(All))
	for i, r := range All {
		out[i] = r.ID
	}
	return out
}

// ByID returns the rule with the given ID, or nil.
func ByID(id string) *Rule {
	for i := range All {
		if All[i].ID == id {
			return &All[i]
		}
	}
	return nil
}
