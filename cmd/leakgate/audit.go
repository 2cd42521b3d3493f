package leakgate

import (
	"fmt"
	"path/filepath"

	"github.com/leakgate/leakgate/internal/audit"
	"github.com/spf13/cobra"
)

func init() {
	var limit int
	var path string
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent scan history",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(path)
			records, err := audit.New(abs).History()
			if err != nil {
				return fmt.Errorf("no audit history: %w", err)
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			for _, r := range records {
				fmt.Printf("%s  %-24s findings=%d new=%d files=%d took=%s\n",
					r.Timestamp.Format("2006-01-02 15:04:05"), r.Source,
					r.TotalFindings, r.NewFindings, r.FilesScanned, r.Duration)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "show at most this many records")
	cmd.Flags().StringVarP(&path, "path", "p", ".", "repo root holding the audit log")
	rootCmd.AddCommand(cmd)
}
