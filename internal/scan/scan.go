// Package scan applies the rule set to reconstructed diff content and
// filters candidates through the run's allowlist and ignore-path
// configuration.
package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leakgate/leakgate/internal/diffparse"
	"github.com/leakgate/leakgate/internal/rules"
	"github.com/leakgate/leakgate/internal/types"
)

// fragmentLen bounds how much of a matched value survives redaction.
const fragmentLen = 20

const truncationMarker = "..."

// Config is the per-run filter configuration. The zero value filters
// nothing.
type Config struct {
	// IgnorePaths entries suppress whole files by substring containment
	// against the file path. Deliberately not glob or regex semantics.
	IgnorePaths []string
	allowlist   []*regexp.Regexp
}

// NewConfig compiles the allowlist patterns. Malformed patterns are not
// fatal: each produces a warning and is treated as never matching.
func NewConfig(ignorePaths, allowlist []string) (Config, []string) {
	cfg := Config{IgnorePaths: ignorePaths}
	var warnings []string
	for _, pat := range allowlist {
		re, err := regexp.Compile(pat)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping malformed allowlist pattern %q: %v", pat, err))
			continue
		}
		cfg.allowlist = append(cfg.allowlist, re)
	}
	return cfg, warnings
}

// PathIgnored reports whether the file path contains any ignore entry.
func (c Config) PathIgnored(path string) bool {
	for _, sub := range c.IgnorePaths {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}

func (c Config) allowlisted(match string) bool {
	for _, re := range c.allowlist {
		if re.MatchString(match) {
			return true
		}
	}
	return false
}

// File scans one reconstructed file and returns its findings ordered by
// line, then rule declaration order, then match position. Ignored paths
// yield nil without touching the content.
func File(path string, fp *diffparse.FilePatch, cfg Config) []types.Finding {
	if fp == nil || cfg.PathIgnored(path) {
		return nil
	}
	var out []types.Finding
	lines := strings.Split(strings.TrimSuffix(fp.Added, "\n"), "\n")
	for i, line := range lines {
		num, ok := fp.LineMap[i]
		if !ok {
			// mapping gap: fall back to positional numbering so the match
			// is still attributable
			num = i + 1
		}
		for _, r := range rules.All {
			for _, match := range r.Regex.FindAllString(line, -1) {
				if cfg.allowlisted(match) {
					continue
				}
				out = append(out, types.Finding{
					Path:     path,
					Line:     num,
					Rule:     r.ID,
					Title:    r.Title,
					Fragment: Redact(match),
					Severity: r.Severity,
				})
			}
		}
	}
	return out
}

// Redact truncates a matched value to a bounded fragment. Nothing longer
// than fragmentLen plus the marker is ever retained.
func Redact(match string) string {
	if len(match) <= fragmentLen {
		return match
	}
	return match[:fragmentLen] + truncationMarker
}
