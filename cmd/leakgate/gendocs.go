package leakgate

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/leakgate/leakgate/internal/rules"
	"github.com/spf13/cobra"
)

// gendocs regenerates the rules section in README.md between the markers
// <!-- BEGIN:RULES --> and <!-- END:RULES -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate README rules table",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:RULES -->")
			end := []byte("<!-- END:RULES -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			var out strings.Builder
			out.WriteString("\n| ID | Severity | Description |\n|---|---|---|\n")
			for _, r := range rules.All {
				fmt.Fprintf(&out, "| `%s` | %s | %s |\n", r.ID, r.Severity, r.Title)
			}

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}
