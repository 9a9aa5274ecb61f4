package cli

import (
	"fmt"

	"github.com/spektral-labs/spektral-go/datasets"
	"github.com/spf13/cobra"
)

var fetchForce bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Re-download even if already cached")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <name>...",
	Short: "Download datasets into the storage folder",
	Long: `Download one or more named datasets. A dataset that is already cached is
left alone unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []datasets.Option
		if fetchForce {
			opts = append(opts, datasets.WithForce())
		}
		loader := datasets.NewLoader(opts...)

		for _, name := range args {
			path, err := loader.Fetch(name)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, path)
		}
		return nil
	},
}
