package cli

import (
	"fmt"

	"github.com/spektral-labs/spektral-go/internal/catalog"
	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the dataset storage",
	Long: `Run diagnostic checks on the config file, storage folder, ledger, and
cached dataset layout. With --fix, missing directories are created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// User catalog files that will be skipped are a health issue too.
		if _, problems, err := catalog.Load(datadir.CatalogDir()); err == nil {
			for _, p := range problems {
				fmt.Fprintf(out, "  [WARN] catalog file %s skipped: %s\n", p.Path, p.Reason)
			}
		}

		return datadir.Check(out, doctorFix)
	},
}
