package cli

import (
	"fmt"

	"github.com/spektral-labs/spektral-go/datasets"
	"github.com/spektral-labs/spektral-go/export"
	"github.com/spf13/cobra"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory (default <name>-export)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a dataset as Parquet files",
	Long: `Load a dataset (fetching it first if needed) and write it out as
graphs.parquet, nodes.parquet, and edges.parquet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		outDir := exportOut
		if outDir == "" {
			outDir = name + "-export"
		}

		ds, err := datasets.NewLoader().Load(name)
		if err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		if err := export.ToParquet(ds, outDir); err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d graphs) to %s\n", name, ds.Len(), outDir)
		return nil
	},
}
