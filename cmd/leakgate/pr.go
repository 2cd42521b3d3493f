package leakgate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leakgate/leakgate/internal/audit"
	"github.com/leakgate/leakgate/internal/config"
	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/provider"
	"github.com/leakgate/leakgate/internal/report"
	"github.com/leakgate/leakgate/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagRepo          string
	flagPR            int
	flagComment       bool
	flagPRAnnotations bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Scan a GitHub pull request",
		Long:  "Fetch the changed files of a pull request, scan the added lines, and optionally post a summary comment back to the PR. Reads the token from GITHUB_TOKEN.",
		RunE:  runPR,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagRepo, "repo", "", "repository as owner/name")
	cmd.Flags().IntVar(&flagPR, "pr", 0, "pull request number")
	cmd.Flags().BoolVar(&flagComment, "comment", false, "post a summary comment to the PR")
	cmd.Flags().BoolVar(&flagPRAnnotations, "annotations", true, "emit GitHub Actions workflow-command annotations")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr")
}

func runPR(cmd *cobra.Command, _ []string) error {
	owner, name, err := provider.SplitRepo(flagRepo)
	if err != nil {
		return err
	}
	if flagPR <= 0 {
		return fmt.Errorf("--pr must be a positive pull request number")
	}
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return fmt.Errorf("GITHUB_TOKEN is not set")
	}

	ctx := context.Background()
	client := provider.NewClient(ctx, token)
	patch, warnings, err := client.FetchPatch(ctx, owner, name, flagPR)
	if err != nil {
		return fmt.Errorf("fetch pull request: %w", err)
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintln(os.Stderr, "warning:", w)
	}

	abs, _ := filepath.Abs(".")
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	// PR blobs change between pushes; a local cache would only go stale.
	cfg := engine.Config{
		IgnorePaths: mergeLists(nil, lcfg.IgnorePaths, gcfg.IgnorePaths),
		Allowlist:   mergeLists(nil, lcfg.Allowlist, gcfg.Allowlist),
		Threads:     pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:     true,
	}
	res := engine.ScanPatch(patch, cfg)
	for _, w := range res.Warnings {
		_, _ = fmt.Fprintln(os.Stderr, "warning:", w)
	}
	findings := res.Findings
	if findings == nil {
		findings = []types.Finding{}
	}

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, version, findings); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			return err
		}
	default:
		noColor := flagNoColor || !report.IsTTY(os.Stdout)
		report.PrintTable(os.Stdout, findings, report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesScanned})
	}
	if flagPRAnnotations {
		report.WriteAnnotations(os.Stdout, findings)
	}

	if flagComment && len(findings) > 0 {
		if err := client.PostSummary(ctx, owner, name, flagPR, provider.Summary(findings)); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "comment warning:", err)
		}
	}

	source := fmt.Sprintf("pr %s/%s#%d", owner, name, flagPR)
	rec := audit.NewRecord(source, res.Findings, findings, res.FilesScanned, res.Duration)
	if err := audit.New(abs).Append(rec); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "audit warning:", err)
	}

	if report.ShouldFail(findings, failOnThreshold(cmd, lcfg, gcfg)) {
		os.Exit(1)
	}
	return nil
}
