package core

import (
	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/rules"
	"github.com/leakgate/leakgate/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type Result = engine.Result

// ScanPatch is the stable entrypoint for other programs: it scans the added
// lines of a unified-diff blob and returns findings in canonical order.
func ScanPatch(patch string, cfg Config) Result {
	return engine.ScanPatch(patch, cfg)
}

// RuleIDs returns the configured rule identifiers in their stable order.
func RuleIDs() []string { return rules.IDs() }
