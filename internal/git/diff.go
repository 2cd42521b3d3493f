// Package git produces unified-diff text for a local repository, in the
// same shape the hosting-provider collaborator supplies, so both sources
// feed the same parser.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
)

// validateRoot validates and normalizes a git repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// DiffAgainst returns the unified diff of HEAD against the given base
// revision (branch, tag, or hash) as a single text blob.
func DiffAgainst(root, base string) (string, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return "", err
	}
	repo, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", validRoot, err)
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return "", fmt.Errorf("resolve base %q: %w", base, err)
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return "", fmt.Errorf("load base commit: %w", err)
	}

	headRef, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return "", fmt.Errorf("load HEAD commit: %w", err)
	}

	patch, err := baseCommit.Patch(headCommit)
	if err != nil {
		return "", fmt.Errorf("compute patch: %w", err)
	}

	// Render the blob ourselves: the stock unified encoder writes
	// --- /dev/null for created files, which leaves their added lines
	// without a --- a/<path> section to attach to.
	var b strings.Builder
	for _, fp := range patch.FilePatches() {
		writeFilePatch(&b, fp)
	}
	return b.String(), nil
}

// writeFilePatch renders one file's changes as unified-diff text with
// --- a/<path> / +++ b/<path> markers even for created files, the same
// shape FetchPatch assembles for pull requests. Deleted and binary files
// carry no added lines and are skipped.
func writeFilePatch(b *strings.Builder, fp fdiff.FilePatch) {
	if fp.IsBinary() {
		return
	}
	_, to := fp.Files()
	if to == nil {
		return
	}
	chunks := fp.Chunks()
	if len(chunks) == 0 {
		return
	}

	oldCount, newCount := 0, 0
	for _, c := range chunks {
		n := len(splitLines(c.Content()))
		switch c.Type() {
		case fdiff.Add:
			newCount += n
		case fdiff.Delete:
			oldCount += n
		default:
			oldCount += n
			newCount += n
		}
	}
	oldStart, newStart := 1, 1
	if oldCount == 0 {
		oldStart = 0
	}
	if newCount == 0 {
		newStart = 0
	}

	fmt.Fprintf(b, "--- a/%s\n+++ b/%s\n", to.Path(), to.Path())
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, c := range chunks {
		prefix := " "
		switch c.Type() {
		case fdiff.Add:
			prefix = "+"
		case fdiff.Delete:
			prefix = "-"
		}
		for _, line := range splitLines(c.Content()) {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
