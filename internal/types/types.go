package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Finding describes a credential-shaped match on an added diff line.
// Fragment is redacted before a Finding is constructed; the full matched
// text never leaves the scanner.
type Finding struct {
	Path     string   `json:"path"`
	Line     int      `json:"line"` // line number in the new file version
	Rule     string   `json:"rule"`
	Title    string   `json:"title"`
	Fragment string   `json:"fragment"`
	Severity Severity `json:"severity"`
}
