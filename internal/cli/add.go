package cli

import (
	"github.com/dpgen-labs/dpgen/internal/wizard"
	"github.com/spf13/cobra"
)

var addFlags generateFlags

func init() {
	addFlags.register(addCmd, false)
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add templates to an existing datapack",
	Long: `Add template files and folders to an existing datapack.

The selected folder must contain pack.mcmeta and data/. Its folder name and
pack.mcmeta description fill %datapackName% and %datapackDescription%.
Existing files are never overwritten and pack.mcmeta is left as is.

Examples:
  dpgen add
  dpgen add --dir ./my-pack --namespace mypack --template "data/mypack/advancement/"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := addFlags.preset(cmd, wizard.QExistingPack)
		if err != nil {
			return err
		}
		w, err := newWizard(cmd, p)
		if err != nil {
			return err
		}
		return w.AddTemplate(cmd.Context())
	},
}
