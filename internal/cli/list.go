package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spektral-labs/spektral-go/internal/catalog"
	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog datasets and their cache status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		records := ledgerRecords()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tVERSION\tSTATUS")
		for _, ent := range cat.All() {
			status := "not cached"
			if info, statErr := os.Stat(datadir.DatasetPath(ent.Name)); statErr == nil && info.IsDir() {
				status = "cached"
				if rec, ok := records[ent.Name]; ok {
					status = fmt.Sprintf("cached (%s)", humanSize(rec.SizeBytes))
					if catalog.IsNewer(ent.Version, rec.Version) {
						status += ", update available"
					}
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ent.Name, ent.Kind, ent.Version, status)
		}
		return tw.Flush()
	},
}
