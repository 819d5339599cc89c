package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dpgen-labs/dpgen/internal/datapack"
	"github.com/dpgen-labs/dpgen/internal/output"
	"github.com/dpgen-labs/dpgen/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rootPathCmd)
	rootCmd.AddCommand(resourceCmd)
}

var rootPathCmd = &cobra.Command{
	Use:   "root [path]",
	Short: "Print the datapack root containing a path",
	Long: `Walk upward from path (default: the current directory) and print the
first directory that contains both pack.mcmeta and data/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := "."
		if len(args) == 1 {
			start = args[0]
		}
		root, ok := datapack.FindRoot(workspace.OS(), absPath(start))
		if !ok {
			return fmt.Errorf("%s: %w", start, datapack.ErrNotDatapack)
		}
		fmt.Fprintln(cmd.OutOrStdout(), root)
		return nil
	},
}

var resourceCmd = &cobra.Command{
	Use:   "resource <file>...",
	Short: "Print the resource location of datapack files",
	Long: `Print the namespace:path resource location of each file, e.g.
data/foo/function/util/init.mcfunction becomes foo:util/init.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := workspace.OS()
		for _, arg := range args {
			file := absPath(arg)
			root, ok := datapack.FindRoot(fsys, filepath.Dir(file))
			if !ok {
				return fmt.Errorf("%s: %w", arg, datapack.ErrNotDatapack)
			}

			if datapack.Namespace(file, root) == "" {
				return fmt.Errorf("%s is not under data/<namespace>/", arg)
			}

			ft, known := datapack.GetFileType(file, root)
			if !known {
				output.Debug("no resource type", "file", file)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", datapack.FileResourcePath(file, root), ft.Name)
		}
		return nil
	},
}

func absPath(p string) string {
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, p)
	}
	return p
}
