// Package provider fetches pull-request diffs from GitHub and posts scan
// results back. It is a thin wrapper: all line-number bookkeeping belongs
// to the diff parser, not to this package.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v30/github"
	"golang.org/x/oauth2"

	"github.com/leakgate/leakgate/internal/types"
)

// Client wraps the GitHub API surface leakgate needs.
type Client struct {
	gh *github.Client
}

// NewClient returns a client authenticated with the given token. An empty
// token yields an unauthenticated client (rate-limited, public repos only).
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{gh: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// NewClientFrom wraps an existing GitHub client; used by tests to point at
// a fake API server.
func NewClientFrom(gh *github.Client) *Client {
	return &Client{gh: gh}
}

// SplitRepo parses an "owner/name" slug.
func SplitRepo(slug string) (owner, name string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", slug)
	}
	return parts[0], parts[1], nil
}

// FetchPatch retrieves every changed file of a pull request and assembles
// the single unified-diff blob the parser consumes: each file's patch
// preceded by --- a/<path> / +++ b/<path> markers. Files without patch data
// (binary or oversized) are skipped with a warning; that is "nothing to
// scan", not an error.
func (c *Client) FetchPatch(ctx context.Context, owner, repo string, number int) (string, []string, error) {
	var (
		blob     strings.Builder
		warnings []string
	)
	opt := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opt)
		if err != nil {
			return "", warnings, fmt.Errorf("list pull request files: %w", err)
		}
		for _, f := range files {
			if f.GetPatch() == "" {
				warnings = append(warnings, fmt.Sprintf("no patch data for %s (binary or too large), skipping", f.GetFilename()))
				continue
			}
			fmt.Fprintf(&blob, "--- a/%s\n+++ b/%s\n%s\n", f.GetFilename(), f.GetFilename(), f.GetPatch())
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return blob.String(), warnings, nil
}

// PostSummary leaves the grouped-by-file findings summary as a pull request
// comment. Findings are already redacted; the comment never carries secret
// material.
func (c *Client) PostSummary(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}
	if _, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("create pull request comment: %w", err)
	}
	return nil
}

// Summary renders the grouped-by-file markdown body posted to the pull
// request.
func Summary(findings []types.Finding) string {
	var b strings.Builder
	if len(findings) == 0 {
		b.WriteString("**leakgate**: no credentials detected in the added lines. :white_check_mark:\n")
		return b.String()
	}
	fmt.Fprintf(&b, "**leakgate**: %d potential credential(s) detected in added lines. :rotating_light:\n", len(findings))
	var last string
	for _, f := range findings {
		if f.Path != last {
			fmt.Fprintf(&b, "\n`%s`\n", f.Path)
			last = f.Path
		}
		fmt.Fprintf(&b, "- line %d: %s (`%s`)\n", f.Line, f.Title, f.Fragment)
	}
	return b.String()
}
