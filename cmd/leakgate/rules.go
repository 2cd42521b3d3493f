package leakgate

import (
	"fmt"

	"github.com/leakgate/leakgate/internal/rules"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Run: func(_ *cobra.Command, _ []string) {
			for _, r := range rules.All {
				fmt.Printf("%-16s %-6s %s\n", r.ID, r.Severity, r.Title)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
