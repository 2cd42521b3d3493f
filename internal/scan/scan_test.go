package scan

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leakgate/leakgate/internal/diffparse"
)

const openaiKey = "sk-ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"

func patchFor(line string) *diffparse.FilePatch {
	return &diffparse.FilePatch{
		Added:   line + "\n",
		LineMap: map[int]int{0: 1},
	}
}

func TestFile_SingleFinding(t *testing.T) {
	fp := patchFor(`const key = "` + openaiKey + `";`)
	fs := File("app.js", fp, Config{})
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	f := fs[0]
	if f.Rule != "openai_api_key" || f.Line != 1 || f.Path != "app.js" {
		t.Fatalf("unexpected finding: %+v", f)
	}
	if f.Fragment != openaiKey[:20]+"..." {
		t.Fatalf("unexpected fragment: %q", f.Fragment)
	}
}

func TestFile_AllowlistSuppression(t *testing.T) {
	cfg, warnings := NewConfig(nil, []string{"^sk-ABCDE.*"})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	fs := File("app.js", patchFor(openaiKey), cfg)
	if len(fs) != 0 {
		t.Fatalf("expected allowlisted match suppressed, got %v", fs)
	}
}

func TestFile_MalformedAllowlistWarnsAndNeverMatches(t *testing.T) {
	cfg, warnings := NewConfig(nil, []string{"([unclosed", "^other$"})
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	fs := File("app.js", patchFor(openaiKey), cfg)
	if len(fs) != 1 {
		t.Fatalf("expected scan to continue past bad pattern, got %v", fs)
	}
}

func TestFile_IgnorePathSubstring(t *testing.T) {
	cfg, _ := NewConfig([]string{"test/"}, nil)
	fs := File("test/fixtures/key.txt", patchFor(openaiKey), cfg)
	if fs != nil {
		t.Fatalf("expected ignored path to yield nil, got %v", fs)
	}
	// substring, not glob: a path merely containing the entry is skipped
	fs = File("src/test/deep.go", patchFor(openaiKey), cfg)
	if fs != nil {
		t.Fatalf("expected nested containment skip, got %v", fs)
	}
}

func TestFile_TwoRulesSameLine(t *testing.T) {
	line := openaiKey + " and AIza" + strings.Repeat("b", 35)
	fs := File("x.env", patchFor(line), Config{})
	if len(fs) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(fs), fs)
	}
	if fs[0].Rule != "openai_api_key" || fs[1].Rule != "google_api_key" {
		t.Fatalf("unexpected rule order: %v", fs)
	}
	if fs[0].Line != fs[1].Line {
		t.Fatal("expected both findings on the same line")
	}
}

func TestFile_LineMapGapFallsBackToPosition(t *testing.T) {
	fp := &diffparse.FilePatch{
		Added:   "clean\n" + openaiKey + "\n",
		LineMap: map[int]int{0: 7}, // no entry for index 1
	}
	fs := File("a.txt", fp, Config{})
	if len(fs) != 1 || fs[0].Line != 2 {
		t.Fatalf("expected positional fallback line 2, got %v", fs)
	}
}

func TestFile_Idempotent(t *testing.T) {
	cfg, _ := NewConfig([]string{"vendor/"}, []string{"placeholder"})
	fp := patchFor(openaiKey)
	first := File("a.txt", fp, cfg)
	second := File("a.txt", fp, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results: %v vs %v", first, second)
	}
}

func TestRedact_Bounded(t *testing.T) {
	long := "sk-" + strings.Repeat("Z", 80)
	got := Redact(long)
	if len(got) > 20+len("...") {
		t.Fatalf("fragment too long: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker: %q", got)
	}
	if Redact("short") != "short" {
		t.Fatal("expected short values untouched")
	}
}
