package wizard

import (
	"context"
	"path/filepath"

	"github.com/dpgen-labs/dpgen/internal/datapack"
	"github.com/dpgen-labs/dpgen/internal/manifest"
)

// AddTemplate runs the add-to-existing flow. The chosen folder must be a
// datapack root; its base name and pack.mcmeta description fill the
// variables, and pack.mcmeta itself is left alone.
func (w *Wizard) AddTemplate(ctx context.Context) error {
	return w.finish(w.addTemplate(ctx))
}

func (w *Wizard) addTemplate(ctx context.Context) error {
	dir, err := w.prompter.SelectDirectory(Question{ID: QExistingPack, Message: msgSelectDatapack})
	if err != nil {
		return err
	}
	if !datapack.IsRoot(w.fsys, dir) {
		return datapack.ErrNotDatapack
	}

	w.checkPackMeta(dir)

	description, err := manifest.ReadDescription(w.fsys, dir)
	if err != nil {
		return err
	}

	return w.generate(ctx, target{root: dir, name: filepath.Base(dir), description: description})
}

// checkPackMeta logs how the existing pack.mcmeta departs from the expected
// layout. The add flow continues either way.
func (w *Wizard) checkPackMeta(dir string) {
	path := filepath.Join(dir, "pack.mcmeta")
	data, err := w.fsys.ReadFile(path)
	if err != nil {
		return
	}
	result, err := manifest.Validate(manifest.SchemaPack, data)
	if err != nil {
		w.logger.Warn("could not validate pack.mcmeta", "path", path, "err", err)
		return
	}
	for _, issue := range result.Issues {
		w.logger.Warn("pack.mcmeta issue", "path", path, "issue", issue.String())
	}
}
