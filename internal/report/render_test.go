package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/leakgate/leakgate/internal/types"
)

func sample() []types.Finding {
	return []types.Finding{
		{Path: "a.js", Line: 3, Rule: "openai_api_key", Title: "OpenAI API Key", Fragment: "sk-AAAABBBBCCCCDDDDEE...", Severity: types.SevHigh},
	}
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No credentials found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Findings: 1") {
		t.Fatalf("expected findings header; got: %q", out)
	}
	if !strings.Contains(out, "openai_api_key") || !strings.Contains(out, "a.js:3") {
		t.Fatalf("expected rule and location columns; got: %q", out)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sample(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header; got: %q", out)
	}
	if !strings.Contains(out, "openai_api_key") {
		t.Fatalf("expected rule in table; got: %q", out)
	}
}

func TestWriteAnnotations(t *testing.T) {
	var buf bytes.Buffer
	WriteAnnotations(&buf, sample())
	out := buf.String()
	if !strings.Contains(out, "::error file=a.js,line=3,title=OpenAI API Key::") {
		t.Fatalf("unexpected annotation: %q", out)
	}
}

func TestShouldFail_Thresholds(t *testing.T) {
	fs := sample()
	if !ShouldFail(fs, "medium") {
		t.Fatal("high finding should fail medium threshold")
	}
	if ShouldFail(nil, "low") {
		t.Fatal("no findings should never fail")
	}
	low := []types.Finding{{Severity: types.SevLow}}
	if ShouldFail(low, "high") {
		t.Fatal("low finding should pass high threshold")
	}
	if !ShouldFail(low, "low") {
		t.Fatal("low finding should fail low threshold")
	}
}
