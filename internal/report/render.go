package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/leakgate/leakgate/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

var (
	styleHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleMed  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// IsTTY reports whether f is attached to a terminal; callers use it to
// disable color for piped output.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintTable renders findings as a bordered table. Findings are expected in
// canonical order already; fragments are redacted upstream.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No credentials found in added lines ✅")
		printFooter(w, findings, opts)
		return
	}
	table := tablewriter.NewTable(w)
	table.Header([]string{"SEVERITY", "RULE", "LOCATION", "FRAGMENT"})
	for _, f := range findings {
		_ = table.Append([]string{
			severityCell(f.Severity, opts.NoColor),
			f.Rule,
			fmt.Sprintf("%s:%d", f.Path, f.Line),
			f.Fragment,
		})
	}
	_ = table.Render()
	printFooter(w, findings, opts)
}

// PrintText renders findings in plain columnar form for pipelines that
// prefer line-oriented output.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No credentials found in added lines ✅")
		printFooter(w, findings, opts)
		return
	}
	maxRule := 8
	for _, f := range findings {
		if l := len(f.Rule); l > maxRule {
			maxRule = l
		}
	}
	fmt.Fprintf(w, "Findings: %d\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(w, "%-6s %-*s %s:%d  %s\n", severityCell(f.Severity, opts.NoColor), maxRule, f.Rule, f.Path, f.Line, f.Fragment)
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	high, med, low := 0, 0, 0
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
}

func severityCell(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevHigh:
		return styleHigh.Render(string(s))
	case types.SevMed:
		return styleMed.Render(string(s))
	default:
		return styleLow.Render(string(s))
	}
}

// ShouldFail reports whether the run should exit non-zero for the given
// threshold ("low", "medium", "high"; unknown values mean medium).
func ShouldFail(findings []types.Finding, failOn string) bool {
	level := map[string]int{"low": 1, "medium": 2, "high": 3}
	th := level[failOn]
	if th == 0 {
		th = 2
	}
	for _, f := range findings {
		if level[string(f.Severity)] >= th {
			return true
		}
	}
	return false
}
