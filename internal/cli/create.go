package cli

import (
	"github.com/dpgen-labs/dpgen/internal/wizard"
	"github.com/spf13/cobra"
)

var createFlags generateFlags

func init() {
	createFlags.register(createCmd, true)
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new datapack",
	Long: `Create a new datapack from templates.

You are asked for the folder to create it in, its name, description and
namespace, and which files and folders to generate. Flags answer the matching
question without asking; with every answer given no terminal is needed.

Examples:
  dpgen create
  dpgen create --dir ~/saves/world/datapacks --name "My Pack" --namespace mypack
  dpgen create --dir . --name tools --namespace tools --template defaults \
    --template "All Vanilla tags/block" --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := createFlags.preset(cmd, wizard.QTarget)
		if err != nil {
			return err
		}
		w, err := newWizard(cmd, p)
		if err != nil {
			return err
		}
		return w.CreateDatapack(cmd.Context())
	},
}
