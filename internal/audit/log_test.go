package audit

import (
	"os"
	"testing"
	"time"

	"github.com/leakgate/leakgate/internal/types"
)

func TestAppendAndHistory(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	fs := []types.Finding{{Path: "a.js", Line: 1, Rule: "openai_api_key", Fragment: "sk-AAAA...", Severity: types.SevHigh}}
	first := NewRecord("stdin", fs, fs, 1, 10*time.Millisecond)
	if err := l.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := NewRecord("base main", nil, nil, 0, time.Millisecond)
	if err := l.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := l.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// newest first
	if records[0].Source != "base main" {
		t.Fatalf("expected newest first, got %q", records[0].Source)
	}
	if records[1].SeverityCounts["high"] != 1 {
		t.Fatalf("unexpected severity counts: %v", records[1].SeverityCounts)
	}
}

func TestHistory_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	if err := l.Append(NewRecord("stdin", nil, nil, 0, time.Millisecond)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json at all\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(NewRecord("base main", nil, nil, 0, time.Millisecond)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := l.History()
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both valid records despite corrupt line, got %d", len(records))
	}
	if records[0].Source != "base main" || records[1].Source != "stdin" {
		t.Fatalf("unexpected order: %q, %q", records[0].Source, records[1].Source)
	}
}

func TestHistory_MissingLog(t *testing.T) {
	if _, err := New(t.TempDir()).History(); err == nil {
		t.Fatal("expected error for missing log")
	}
}
