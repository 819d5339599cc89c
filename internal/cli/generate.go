package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/config"
	"github.com/dpgen-labs/dpgen/internal/gameversion"
	"github.com/dpgen-labs/dpgen/internal/output"
	"github.com/dpgen-labs/dpgen/internal/prompt"
	"github.com/dpgen-labs/dpgen/internal/remote"
	"github.com/dpgen-labs/dpgen/internal/scaffold"
	"github.com/dpgen-labs/dpgen/internal/wizard"
	"github.com/dpgen-labs/dpgen/internal/workspace"
	"github.com/spf13/cobra"
)

// generateFlags are preset answers shared by create and add. Any prompt
// without a preset is asked interactively.
type generateFlags struct {
	dir         string
	name        string
	description string
	namespace   string
	templates   []string
	yes         bool
}

func (f *generateFlags) register(cmd *cobra.Command, withName bool) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "Target directory (skips the folder prompt)")
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "Datapack name")
		cmd.Flags().StringVar(&f.description, "description", "", "Datapack description")
	}
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "Namespace for generated resources")
	cmd.Flags().StringSliceVar(&f.templates, "template", nil, "Template label to generate (repeatable; also 'defaults' or 'none')")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Answer yes to every confirmation")
}

// preset builds the prompter: flag answers first, then the terminal when one
// is attached.
func (f *generateFlags) preset(cmd *cobra.Command, dirQuestion string) (*prompt.Preset, error) {
	answers := map[string]string{}
	if f.dir != "" {
		abs, err := filepath.Abs(f.dir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f.dir, err)
		}
		answers[dirQuestion] = abs
	}
	if cmd.Flags().Changed("name") {
		answers[wizard.QName] = f.name
	}
	if cmd.Flags().Changed("description") {
		answers[wizard.QDescription] = f.description
	}
	if cmd.Flags().Changed("namespace") {
		answers[wizard.QNamespace] = f.namespace
	}

	p := &prompt.Preset{
		Answers:   answers,
		Templates: f.templates,
		AssumeYes: f.yes,
	}
	if output.IsInteractive() {
		p.Next = prompt.NewSurvey(cmd.ErrOrStderr())
	}
	return p, nil
}

// spinnerResolver shows a spinner while the version manifest is consulted.
type spinnerResolver struct {
	resolver *gameversion.Resolver
}

func (s spinnerResolver) Resolve(ctx context.Context, want string) (string, error) {
	var version string
	err := output.RunWithSpinner(ctx, "Resolving game version", func() error {
		var err error
		version, err = s.resolver.Resolve(ctx, want)
		return err
	})
	return version, err
}

// loadUnits returns the built-in units followed by the user's custom ones.
func loadUnits(fsys *workspace.FS, path string) ([]catalog.Unit, error) {
	custom, err := catalog.LoadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("loading custom templates from %s: %w", path, err)
	}
	return append(catalog.Builtin(), custom...), nil
}

// printResult lists each path the run touched with its status.
func printResult(w io.Writer) func(*scaffold.Result) {
	return func(r *scaffold.Result) {
		for _, group := range []struct {
			status string
			paths  []string
		}{
			{output.StatusCreated, r.Created},
			{output.StatusFolder, r.Folders},
			{output.StatusMerged, r.Merged},
			{output.StatusSkipped, r.Skipped},
		} {
			for _, p := range group.paths {
				fmt.Fprintln(w, output.FormatStatusLine(p, group.status))
			}
		}
	}
}

func newWizard(cmd *cobra.Command, p wizard.Prompter) (*wizard.Wizard, error) {
	settings := config.Current()
	fsys := workspace.OS()

	units, err := loadUnits(fsys, absPath(settings.TemplatesFile))
	if err != nil {
		return nil, err
	}

	github := remote.NewGitHub(
		remote.WithBaseURL(settings.GitHubAPIURL),
		remote.WithToken(settings.GitHubToken),
	)
	resolver := gameversion.NewResolver(fsys, config.Dir(), gameversion.WithLogger(output.Logger))

	return wizard.New(fsys, p,
		wizard.WithUnits(units),
		wizard.WithFetcher(remote.NewFetcher(github, settings.DownloadTimeout)),
		wizard.WithVersionResolver(spinnerResolver{resolver: resolver}),
		wizard.WithSettings(wizard.Settings{
			DateFormat:  settings.DateFormat,
			DataVersion: settings.DataVersion,
			LineEnding:  settings.LineEnding,
			PackFormat:  settings.PackFormat,
		}),
		wizard.WithLogger(output.Logger),
		wizard.WithReport(printResult(cmd.ErrOrStderr())),
	), nil
}
