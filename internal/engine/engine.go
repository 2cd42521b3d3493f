package engine

import (
	"runtime"
	"sort"
	"sync"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/leakgate/leakgate/internal/cache"
	"github.com/leakgate/leakgate/internal/diffparse"
	"github.com/leakgate/leakgate/internal/rules"
	"github.com/leakgate/leakgate/internal/scan"
	"github.com/leakgate/leakgate/internal/types"
)

// Config controls a scan run: filter configuration, scope globs, and
// performance knobs.
type Config struct {
	// Root anchors the results cache; empty disables caching.
	Root string

	// IgnorePaths and Allowlist carry the user's filter configuration
	// (substring paths and match-suppression regexes).
	IgnorePaths []string
	Allowlist   []string

	// IncludeGlobs/ExcludeGlobs are comma-separated doublestar globs
	// scoping which diff files are scanned at all. Distinct from
	// IgnorePaths, which keeps its substring semantics.
	IncludeGlobs string
	ExcludeGlobs string

	Threads int
	NoCache bool
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	Duration     time.Duration
	// Warnings carries non-fatal configuration problems, e.g. malformed
	// allowlist patterns.
	Warnings []string
}

// ScanPatch parses a unified-diff blob and scans the added lines of every
// file in it. Per-file scans run in parallel; the returned findings are
// re-sorted to file-then-line order, preserving discovery order within a
// line. No condition here is fatal: bad config degrades with warnings and
// the findings slice is always usable.
func ScanPatch(patch string, cfg Config) Result {
	started := time.Now()

	scanCfg, warnings := scan.NewConfig(cfg.IgnorePaths, cfg.Allowlist)
	result := Result{Warnings: warnings}

	files := diffparse.Parse(patch)

	var db cache.DB
	useCache := !cfg.NoCache && cfg.Root != ""
	if useCache {
		db, _ = cache.Load(cfg.Root)
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	sem := make(chan struct{}, threads)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		updated = map[string]cache.Entry{}
	)
	for path, fp := range files {
		if !allowedByGlobs(path, cfg) {
			continue
		}
		result.FilesScanned++
		wg.Add(1)
		sem <- struct{}{}
		go func(path string, fp *diffparse.FilePatch) {
			defer wg.Done()
			defer func() { <-sem }()

			h := fastHash([]byte(fp.Added))
			if useCache {
				if e, ok := db.Entries[path]; ok && e.Hash == h {
					mu.Lock()
					result.Findings = append(result.Findings, e.Findings...)
					mu.Unlock()
					return
				}
			}
			fs := scan.File(path, fp, scanCfg)
			mu.Lock()
			result.Findings = append(result.Findings, fs...)
			if useCache {
				updated[path] = cache.Entry{Hash: h, Findings: fs}
			}
			mu.Unlock()
		}(path, fp)
	}
	wg.Wait()

	sortFindings(result.Findings)

	if useCache && len(updated) > 0 {
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}

	result.Duration = time.Since(started)
	return result
}

// sortFindings restores the canonical file-then-line order after the
// parallel per-file scans. Rule order is the tiebreaker within a line so
// the sequence stays deterministic across runs.
func sortFindings(fs []types.Finding) {
	ruleIdx := map[string]int{}
	for i, id := range rules.IDs() {
		ruleIdx[id] = i
	}
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return ruleIdx[fs[i].Rule] < ruleIdx[fs[j].Rule]
	})
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
