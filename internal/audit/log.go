// Package audit keeps an append-only JSONL record of scan runs. Records
// carry counts and redacted fragments only.
package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leakgate/leakgate/internal/types"
)

type ScanRecord struct {
	Timestamp      time.Time       `json:"timestamp"`
	ScanID         string          `json:"scan_id"`
	Source         string          `json:"source"` // e.g. "stdin", "pr acme/widgets#7", "base main"
	TotalFindings  int             `json:"total_findings"`
	NewFindings    int             `json:"new_findings"`
	SeverityCounts map[string]int  `json:"severity_counts"`
	FilesScanned   int             `json:"files_scanned"`
	Duration       string          `json:"duration"`
	Findings       []types.Finding `json:"findings,omitempty"`
}

type Log struct {
	logPath string
}

func New(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".leakgate_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "leakgate_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// Append writes one record to the log. Owner-only permissions; the log
// holds finding metadata.
func (l *Log) Append(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// History returns recorded scans, newest first. Undecodable lines are
// skipped.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	// Line-oriented read: one record per line, so a corrupt line is
	// skipped instead of stalling a stream decoder.
	var records []ScanRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var r ScanRecord
		if err := json.Unmarshal(line, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// NewRecord assembles a record from a finished run. Findings are already
// redacted by the scanner.
func NewRecord(source string, all, fresh []types.Finding, filesScanned int, duration time.Duration) ScanRecord {
	severityCounts := make(map[string]int)
	for _, f := range all {
		severityCounts[string(f.Severity)]++
	}
	return ScanRecord{
		Timestamp:      time.Now(),
		Source:         source,
		TotalFindings:  len(all),
		NewFindings:    len(fresh),
		SeverityCounts: severityCounts,
		FilesScanned:   filesScanned,
		Duration:       duration.String(),
		Findings:       all,
	}
}
