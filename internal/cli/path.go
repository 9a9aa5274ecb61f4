package cli

import (
	"fmt"

	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pathCmd)
}

var pathCmd = &cobra.Command{
	Use:   "path [name]",
	Short: "Print the storage folder, or a dataset's location in it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), datadir.Root())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), datadir.DatasetPath(args[0]))
		return nil
	},
}
