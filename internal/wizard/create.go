package wizard

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dpgen-labs/dpgen/internal/datapack"
)

// CreateDatapack runs the new-datapack flow: target folder, name,
// description, namespace, unit selection, then generation including
// pack.mcmeta. Dismissing any prompt ends the flow with a nil error.
func (w *Wizard) CreateDatapack(ctx context.Context) error {
	return w.finish(w.selectTarget(ctx))
}

func (w *Wizard) selectTarget(ctx context.Context) error {
	dir, err := w.prompter.SelectDirectory(Question{ID: QTarget, Message: msgSelectTarget})
	if err != nil {
		return err
	}

	if root, ok := datapack.FindRoot(w.fsys, dir); ok {
		choice, err := w.prompter.Choose(Question{
			ID:      QInsideDatapack,
			Message: fmt.Sprintf(msgInsideDatapack, filepath.Base(root)),
		}, confirmProceedOrReselect)
		if err != nil {
			return err
		}
		switch choice {
		case ChoiceReselect:
			return w.selectTarget(ctx)
		case ChoiceYes:
		default:
			return ErrCancelled
		}
	}

	return w.enterName(ctx, dir)
}

func (w *Wizard) enterName(ctx context.Context, dir string) error {
	name, err := w.prompter.Input(Question{ID: QName, Message: msgDatapackName}, datapack.ValidateName)
	if err != nil {
		return err
	}

	root := filepath.Join(dir, name)
	if datapack.IsRoot(w.fsys, root) {
		choice, err := w.prompter.Choose(Question{
			ID:      QDuplicate,
			Message: fmt.Sprintf(msgDuplicateDatapack, name),
		}, confirmProceedOrRename)
		if err != nil {
			return err
		}
		switch choice {
		case ChoiceRename:
			return w.enterName(ctx, dir)
		case ChoiceYes:
		default:
			return ErrCancelled
		}
	}

	description, err := w.prompter.Input(Question{ID: QDescription, Message: msgDescription}, nil)
	if err != nil {
		return err
	}

	return w.generate(ctx, target{root: root, name: name, description: description, withDescriptor: true})
}
