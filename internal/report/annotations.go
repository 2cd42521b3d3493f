package report

import (
	"fmt"
	"io"

	"github.com/leakgate/leakgate/internal/types"
)

// WriteAnnotations emits one workflow-command annotation per finding, keyed
// by file, line, and rule title, in the format CI runners surface inline on
// the changed lines.
func WriteAnnotations(w io.Writer, findings []types.Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "::error file=%s,line=%d,title=%s::Potential %s: %s\n",
			f.Path, f.Line, f.Title, f.Title, f.Fragment)
	}
}
