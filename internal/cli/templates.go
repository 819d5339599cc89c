package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/config"
	"github.com/dpgen-labs/dpgen/internal/manifest"
	"github.com/dpgen-labs/dpgen/internal/workspace"
	"github.com/spf13/cobra"
)

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	templatesCmd.AddCommand(templatesValidateCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates offered by create and add",
	Long: `List built-in templates followed by the custom templates from the
templates_file setting. Labels are shown unresolved; %namespace% is filled in
once a namespace is chosen.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a custom templates file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Current().TemplatesFile
		if len(args) == 1 {
			path = args[0]
		}
		data, err := workspace.OS().ReadFile(absPath(path))
		if err != nil {
			return err
		}

		result, err := manifest.Validate(manifest.SchemaTemplates, data)
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, issue := range result.Issues {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+issue.String())
			}
			return fmt.Errorf("%s has %d issue(s)", path, len(result.Issues))
		}

		if _, err := catalog.Load(data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
		return nil
	},
}

type templateEntry struct {
	Group   string   `json:"group"`
	Label   string   `json:"label"`
	Default bool     `json:"default"`
	Files   []string `json:"files,omitempty"`
	Remote  []string `json:"remote,omitempty"`
}

func runTemplates(cmd *cobra.Command, args []string) error {
	units, err := loadUnits(workspace.OS(), absPath(config.Current().TemplatesFile))
	if err != nil {
		return err
	}

	entries := make([]templateEntry, len(units))
	for i, u := range units {
		e := templateEntry{Group: u.Group, Label: u.Label, Default: u.Picked}
		for _, r := range u.Generates {
			e.Files = append(e.Files, r.Rel)
		}
		for _, s := range u.Remote {
			e.Remote = append(e.Remote, fmt.Sprintf("%s/%s@%s:%s", s.Owner, s.Repo, s.Ref, s.Path))
		}
		entries[i] = e
	}

	if templatesJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling templates: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tTEMPLATE\tDEFAULT")
	for _, e := range entries {
		def := ""
		if e.Default {
			def = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Group, e.Label, def)
	}
	return w.Flush()
}
