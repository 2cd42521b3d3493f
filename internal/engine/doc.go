// Package engine orchestrates a leakgate run: it turns a unified-diff blob
// into reconstructed per-file content, scans the added lines in parallel,
// and returns findings in canonical file-then-line order. This package is
// internal; external consumers should use the stable facade in pkg/core.
package engine
