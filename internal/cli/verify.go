package cli

import (
	"fmt"
	"os"

	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spektral-labs/spektral-go/internal/ledger"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <name>...",
	Short: "Check cached datasets against their recorded content hashes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records := ledgerRecords()
		out := cmd.OutOrStdout()

		failures := 0
		for _, name := range args {
			path := datadir.DatasetPath(name)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintf(out, "[MISS] %s is not cached\n", name)
				failures++
				continue
			}

			rec, ok := records[name]
			if !ok || rec.ContentHash == "" {
				fmt.Fprintf(out, "[SKIP] %s has no recorded content hash\n", name)
				failures++
				continue
			}

			hash, err := ledger.HashTree(path)
			if err != nil {
				return fmt.Errorf("hashing %s: %w", name, err)
			}
			if hash != rec.ContentHash {
				fmt.Fprintf(out, "[FAIL] %s content changed since fetch\n", name)
				failures++
				continue
			}
			fmt.Fprintf(out, "[ OK ] %s\n", name)
		}

		if failures > 0 {
			return fmt.Errorf("%d dataset(s) failed verification", failures)
		}
		return nil
	},
}
