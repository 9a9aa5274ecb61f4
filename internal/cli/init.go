package cli

import (
	"fmt"

	"github.com/spektral-labs/spektral-go/internal/branding"
	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the " + branding.HomeDir() + " directory tree",
	Long: `Create ~/` + branding.HomeDir() + ` with a default config.json, the dataset storage
folder, and the user catalog directory. Existing items are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initializing %s:\n", branding.DisplayName())
		if err := datadir.Init(out); err != nil {
			return err
		}
		fmt.Fprintln(out, "Done.")
		return nil
	},
}
