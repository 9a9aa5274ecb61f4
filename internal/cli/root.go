package cli

import (
	"github.com/joho/godotenv"
	"github.com/spektral-labs/spektral-go/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` downloads graph learning datasets on first use, caches them under a
configurable storage folder, and keeps a ledger of what was fetched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	// Project-local overrides: a .env in the working directory may set
	// SPEKTRAL_* variables. Absence is the normal case.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
