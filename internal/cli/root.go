package cli

import (
	"fmt"
	"os"

	"github.com/dpgen-labs/dpgen/internal/branding"
	"github.com/dpgen-labs/dpgen/internal/config"
	"github.com/dpgen-labs/dpgen/internal/output"
	"github.com/dpgen-labs/dpgen/internal/wizard"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Minecraft datapacks: it creates the pack.mcmeta and
data/<namespace>/ layout, #load and #tick function tags, resource folders and
optional vanilla reference data, and can add the same templates to an
existing datapack without overwriting anything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		output.SetupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
// Errors already shown by an interactive flow are not printed again.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !wizard.IsReported(err) {
		fmt.Fprintln(os.Stderr, output.FormatError(err.Error()))
	}
	return err
}
