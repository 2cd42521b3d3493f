package core

import (
	"bytes"
	"testing"
)

func TestScanPatchFacade(t *testing.T) {
	patch := "--- a/app.js\n" +
		"+++ b/app.js\n" +
		"@@ -0,0 +1,1 @@\n" +
		"+const key = \"sk-ABCDEFGHIJKLMNOPQRSTUVWXYZ012345\";\n"
	res := ScanPatch(patch, Config{NoCache: true})
	if len(res.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(res.Findings))
	}

	var buf bytes.Buffer
	if err := MarshalFindings(&buf, res.Findings); err != nil {
		t.Fatalf("MarshalFindings: %v", err)
	}
	back, err := UnmarshalFindings(&buf)
	if err != nil {
		t.Fatalf("UnmarshalFindings: %v", err)
	}
	if len(back) != 1 || back[0].Rule != res.Findings[0].Rule {
		t.Fatalf("round trip mismatch: %v", back)
	}
}

func TestRuleIDs(t *testing.T) {
	if len(RuleIDs()) == 0 {
		t.Fatal("expected rule IDs")
	}
}
