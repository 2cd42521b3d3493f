package leakgate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leakgate/leakgate/internal/audit"
	"github.com/leakgate/leakgate/internal/config"
	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/git"
	"github.com/leakgate/leakgate/internal/report"
	"github.com/leakgate/leakgate/internal/types"
	"github.com/leakgate/leakgate/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagPath           string
	flagDiffFile       string
	flagBase           string
	flagInclude        string
	flagExclude        string
	flagIgnorePaths    []string
	flagAllow          []string
	flagBaseline       string
	flagUpdateBaseline bool
	flagAnnotations    bool
	flagText           bool
	flagNoAudit        bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a unified diff for credentials",
		Long:  "Scan reads a unified diff from --diff-file, stdin, or a local git diff against --base, and reports credentials found on added lines.",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repo root (anchors cache, config and audit log)")
	cmd.Flags().StringVar(&flagDiffFile, "diff-file", "", "read the diff from this file ('-' or empty = stdin)")
	cmd.Flags().StringVar(&flagBase, "base", "", "diff the local repo against this base revision (e.g. main)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringSliceVar(&flagIgnorePaths, "ignore-path", nil, "skip files whose path contains this substring (repeatable)")
	cmd.Flags().StringSliceVar(&flagAllow, "allow", nil, "suppress matches matching this regexp (repeatable)")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "leakgate.baseline.json", "baseline file of accepted findings")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "write current findings to the baseline and exit 0")
	cmd.Flags().BoolVar(&flagAnnotations, "annotations", false, "emit GitHub Actions workflow-command annotations")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "skip appending to the audit log")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	// Friendly banner first: self-update must not wait on a diff that may
	// never arrive on stdin.
	if !flagJSON && !flagSARIF {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'leakgate --self-update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdateFn(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	patch, source, err := readPatch(abs)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:         abs,
		IgnorePaths:  mergeLists(flagIgnorePaths, lcfg.IgnorePaths, gcfg.IgnorePaths),
		Allowlist:    mergeLists(flagAllow, lcfg.Allowlist, gcfg.Allowlist),
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		Threads:      pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:      pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
	}

	res := engine.ScanPatch(patch, cfg)
	for _, w := range res.Warnings {
		_, _ = fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if flagUpdateBaseline {
		if err := report.SaveBaseline(baselinePath(abs), res.Findings); err != nil {
			return fmt.Errorf("write baseline: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "baseline updated with %d findings\n", len(res.Findings))
		return nil
	}

	baseline, _ := report.LoadBaseline(baselinePath(abs))
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{}
	} // no `null` in JSON

	if err := emitFindings(newFindings, res); err != nil {
		return err
	}
	if flagAnnotations {
		report.WriteAnnotations(os.Stdout, newFindings)
	}

	if !flagNoAudit {
		rec := audit.NewRecord(source, res.Findings, newFindings, res.FilesScanned, res.Duration)
		if err := audit.New(abs).Append(rec); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "audit warning:", err)
		}
	}

	if report.ShouldFail(newFindings, failOnThreshold(cmd, lcfg, gcfg)) {
		os.Exit(1)
	}
	return nil
}

// readPatch resolves the diff text from base branch, diff file, or stdin,
// in that order of precedence. The returned source labels the audit record.
func readPatch(root string) (string, string, error) {
	if flagBase != "" {
		patch, err := git.DiffAgainst(root, flagBase)
		if err != nil {
			return "", "", fmt.Errorf("diff against %s: %w", flagBase, err)
		}
		return patch, "base " + flagBase, nil
	}
	if flagDiffFile != "" && flagDiffFile != "-" {
		b, err := os.ReadFile(flagDiffFile)
		if err != nil {
			return "", "", fmt.Errorf("read diff file: %w", err)
		}
		return string(b), "file " + flagDiffFile, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), "stdin", nil
}

func baselinePath(root string) string {
	if filepath.IsAbs(flagBaseline) {
		return flagBaseline
	}
	return filepath.Join(root, flagBaseline)
}

// emitFindings writes findings in the selected output format.
func emitFindings(findings []types.Finding, res engine.Result) error {
	noColor := flagNoColor || !report.IsTTY(os.Stdout)
	opts := report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesScanned}
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
	case flagText:
		report.PrintText(os.Stdout, findings, opts)
	default:
		report.PrintTable(os.Stdout, findings, opts)
	}
	return nil
}

// failOnThreshold resolves the threshold: an explicit CLI flag wins, then
// local and global config, then the flag default.
func failOnThreshold(cmd *cobra.Command, lcfg, gcfg config.FileConfig) string {
	if cmd.Flags().Changed("fail-on") {
		return flagFailOn
	}
	if v := pickString("", lcfg.FailOn, gcfg.FailOn); v != "" {
		return v
	}
	return flagFailOn
}
