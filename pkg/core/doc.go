// Package core provides a small, stable facade over leakgate's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// reaching into internal packages.
//
// Example:
//
//	res := core.ScanPatch(patchText, core.Config{})
//	_ = core.MarshalFindings(os.Stdout, res.Findings)
package core
