package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spektral-labs/spektral-go/internal/datadir"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show catalog and fetch details for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		ent, ok := cat.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown dataset %q: not in the catalog", name)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:        %s\n", ent.Name)
		fmt.Fprintf(out, "Kind:        %s\n", ent.Kind)
		fmt.Fprintf(out, "URL:         %s\n", ent.URL)
		fmt.Fprintf(out, "Version:     %s\n", ent.Version)
		if ent.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", ent.Description)
		}
		if ent.SHA256 != "" {
			fmt.Fprintf(out, "SHA256:      %s\n", ent.SHA256)
		}

		path := datadir.DatasetPath(name)
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			fmt.Fprintf(out, "Cached:      yes (%s)\n", path)
		} else {
			fmt.Fprintln(out, "Cached:      no")
		}

		if rec, ok := ledgerRecords()[name]; ok {
			fmt.Fprintf(out, "Fetched:     %s\n", rec.FetchedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Size:        %s (%d files)\n", humanSize(rec.SizeBytes), rec.Files)
			fmt.Fprintf(out, "Artifact:    sha256:%s\n", rec.SHA256)
			fmt.Fprintf(out, "Content:     sha256:%s\n", rec.ContentHash)
			if rec.Version != "" {
				fmt.Fprintf(out, "Fetched ver: %s\n", rec.Version)
			}
		}
		return nil
	},
}
