package wizard

import (
	"context"
	"fmt"

	"github.com/dpgen-labs/dpgen/internal/catalog"
	"github.com/dpgen-labs/dpgen/internal/datapack"
	"github.com/dpgen-labs/dpgen/internal/gameversion"
	"github.com/dpgen-labs/dpgen/internal/scaffold"
	"github.com/dpgen-labs/dpgen/internal/vars"
)

// target is what both flows know once the datapack root is settled.
type target struct {
	root           string
	name           string
	description    string
	withDescriptor bool
}

// generate is the tail shared by both flows: namespace, unit selection,
// remote data, then materialization.
func (w *Wizard) generate(ctx context.Context, t target) error {
	namespace, err := w.prompter.Input(Question{
		ID:      QNamespace,
		Message: msgNamespace,
		Help:    msgNamespaceHelp,
	}, datapack.ValidateNamespace)
	if err != nil {
		return err
	}

	c := vars.New(t.name, t.description, namespace, vars.FormatDate(w.settings.DateFormat, w.now()))

	selected, err := w.selectUnits(c)
	if err != nil {
		return err
	}

	var version string
	sources := catalog.RemoteSources(selected)
	if len(sources) > 0 {
		version, err = w.resolveVersion(ctx)
		if err != nil {
			return err
		}
		c = c.With(vars.Version, version)
	}

	fetched, err := w.fetchAll(ctx, sources, c)
	if err != nil {
		return err
	}

	var descriptor *catalog.Record
	if t.withDescriptor {
		d := catalog.PackDescriptor(w.packFormat(ctx, version))
		descriptor = &d
	}

	records := catalog.Flatten(selected, fetched, descriptor)

	var result *scaffold.Result
	err = w.prompter.Progress(msgProgressTitle, func(p Progress) error {
		p.Report(0, msgCreating)
		var err error
		result, err = w.materializer().Materialize(t.root, records, c, func(inc float64) {
			p.Report(inc, msgCreating)
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("generating %s: %w", t.root, err)
	}

	w.logger.Debug("generation finished",
		"root", result.Root,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"folders", len(result.Folders),
		"merged", len(result.Merged))
	if w.report != nil {
		w.report(result)
	}
	w.prompter.Info(fmt.Sprintf(msgComplete, t.name, len(result.Created), len(result.Skipped)))
	return nil
}

// selectUnits shows every unit with its label resolved and returns the
// chosen ones in list order.
func (w *Wizard) selectUnits(c *vars.Container) ([]catalog.Unit, error) {
	units := catalog.ResolveLabels(w.units, c)
	options := make([]ListOption, len(units))
	for i, u := range units {
		options[i] = ListOption{Label: u.Label, Group: u.Group}
	}
	for _, i := range catalog.Defaults(units) {
		options[i].Picked = true
	}

	picked, err := w.prompter.MultiSelect(Question{ID: QTemplates, Message: msgTemplates}, options)
	if err != nil {
		return nil, err
	}

	selected := make([]catalog.Unit, 0, len(picked))
	for _, i := range picked {
		if i < 0 || i >= len(units) {
			return nil, fmt.Errorf("selection index %d out of range", i)
		}
		selected = append(selected, units[i])
	}
	return selected, nil
}

func (w *Wizard) resolveVersion(ctx context.Context) (string, error) {
	want := w.settings.DataVersion
	if w.versions == nil {
		if want == "" || want == gameversion.Latest || want == gameversion.LatestSnapshot {
			return "", fmt.Errorf("cannot resolve data version %q without a version resolver", want)
		}
		return want, nil
	}
	v, err := w.versions.Resolve(ctx, want)
	if err != nil {
		return "", fmt.Errorf("resolving data version: %w", err)
	}
	w.logger.Debug("data version", "configured", want, "resolved", v)
	return v, nil
}

// fetchAll downloads each source in its own progress scope, one after the
// other.
func (w *Wizard) fetchAll(ctx context.Context, sources []catalog.RemoteSource, c *vars.Container) ([]catalog.Record, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	if w.fetcher == nil {
		return nil, fmt.Errorf("no remote fetcher configured")
	}

	var fetched []catalog.Record
	for i, src := range sources {
		msg := fmt.Sprintf(msgDownloading, i+1, len(sources))
		err := w.prompter.Progress(msgProgressTitle, func(p Progress) error {
			p.Report(0, msg)
			records, err := w.fetcher.Fetch(ctx, src, c, func(_, total int) {
				p.Report(100/float64(total), msg)
			})
			if err != nil {
				return err
			}
			w.logger.Debug("fetched remote data", "repo", src.Owner+"/"+src.Repo, "path", src.Path, "files", len(records))
			fetched = append(fetched, records...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return fetched, nil
}

// packFormat picks the pack.mcmeta format: the configured override, else
// the format of the resolved game version, else the newest known one.
func (w *Wizard) packFormat(ctx context.Context, version string) int {
	if w.settings.PackFormat > 0 {
		return w.settings.PackFormat
	}
	if version == "" && w.versions != nil {
		v, err := w.versions.Resolve(ctx, w.settings.DataVersion)
		if err != nil {
			w.logger.Warn("could not resolve game version, using newest pack format", "err", err)
			return gameversion.LatestPackFormat()
		}
		version = v
	}
	if version == "" {
		version = w.settings.DataVersion
	}

	format, known := gameversion.PackFormat(version)
	if !known {
		w.logger.Debug("unknown game version, using newest pack format", "version", version)
	}
	return format
}
