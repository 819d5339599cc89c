package wizard

import "errors"

// ErrCancelled is returned by a Prompter when the user dismisses a prompt.
// The flows treat it as a silent end, not a failure.
var ErrCancelled = errors.New("cancelled")

// Question identifiers. Preset answers are keyed by these.
const (
	QTarget         = "target"
	QInsideDatapack = "inside-datapack"
	QName           = "name"
	QDuplicate      = "duplicate-datapack"
	QDescription    = "description"
	QNamespace      = "namespace"
	QTemplates      = "templates"
	QExistingPack   = "datapack"
)

// Confirmation choice IDs.
const (
	ChoiceYes      = "yes"
	ChoiceNo       = "no"
	ChoiceReselect = "reselect"
	ChoiceRename   = "rename"
)

// Question is one prompt shown to the user.
type Question struct {
	ID      string
	Message string
	Default string
	Help    string
}

// Choice is one button of a confirmation.
type Choice struct {
	ID    string
	Label string
}

// ListOption is one entry of a multi-select list.
type ListOption struct {
	Label  string
	Group  string
	Picked bool
}

// Progress receives incremental percentage updates inside a progress scope.
type Progress interface {
	Report(increment float64, message string)
}

// Prompter is the interactive surface the flows drive. Every method that
// waits for the user returns ErrCancelled when the prompt is dismissed.
type Prompter interface {
	// SelectDirectory asks for an existing directory.
	SelectDirectory(q Question) (string, error)
	// Choose shows a warning with buttons and returns the chosen Choice.ID.
	Choose(q Question, choices []Choice) (string, error)
	// Input asks for a line of text. A non-nil error from validate is shown
	// inline and the prompt repeats.
	Input(q Question, validate func(string) error) (string, error)
	// MultiSelect returns the indexes of the chosen options in list order.
	MultiSelect(q Question, options []ListOption) ([]int, error)
	// Progress runs fn inside a progress scope.
	Progress(title string, fn func(Progress) error) error
	Info(msg string)
	Error(msg string)
}
