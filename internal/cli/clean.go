package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spf13/cobra"
)

var cleanAll bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Confirm deleting every cached dataset")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean --all",
	Short: "Delete every cached dataset and the fetch ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cleanAll {
			return fmt.Errorf("clean deletes every cached dataset; pass --all to confirm")
		}

		root := datadir.Root()
		entries, err := os.ReadDir(root)
		if os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clean.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading storage folder: %w", err)
		}

		removed := 0
		for _, e := range entries {
			if !e.IsDir() || e.Name()[0] == '.' {
				continue
			}
			if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
				return fmt.Errorf("removing %s: %w", e.Name(), err)
			}
			removed++
		}
		if err := os.RemoveAll(datadir.LedgerPath()); err != nil {
			return fmt.Errorf("removing ledger: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d dataset(s) from %s\n", removed, root)
		return nil
	},
}
