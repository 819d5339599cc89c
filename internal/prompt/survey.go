package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/dpgen-labs/dpgen/internal/output"
	"github.com/dpgen-labs/dpgen/internal/wizard"
	"github.com/dpgen-labs/dpgen/internal/workspace"
)

// Survey asks questions on the terminal.
type Survey struct {
	stdio terminal.Stdio
	out   io.Writer
	// fsys backs directory validation and completion.
	fsys *workspace.FS
	// pageSize is the number of options shown at once by list prompts.
	pageSize int
}

var _ wizard.Prompter = (*Survey)(nil)

// NewSurvey creates a Survey on the process's standard streams. Messages and
// progress go to out.
func NewSurvey(out io.Writer) *Survey {
	return &Survey{
		stdio:    terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		out:      out,
		fsys:     workspace.OS(),
		pageSize: 15,
	}
}

func (s *Survey) ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	opts = append(opts, survey.WithStdio(s.stdio.In, s.stdio.Out, s.stdio.Err))
	return dismissed(survey.AskOne(p, response, opts...))
}

// dismissed maps Ctrl-C and end of input (Ctrl-D) to wizard.ErrCancelled.
func dismissed(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return wizard.ErrCancelled
	}
	return err
}

// SelectDirectory asks for a path with tab completion of directories. The
// answer is made absolute.
func (s *Survey) SelectDirectory(q wizard.Question) (string, error) {
	def := q.Default
	if def == "" {
		if wd, err := os.Getwd(); err == nil {
			def = wd
		}
	}

	var answer string
	err := s.ask(&survey.Input{
		Message: q.Message,
		Default: def,
		Help:    q.Help,
		Suggest: s.suggestDirs,
	}, &answer, survey.WithValidator(s.validateDir))
	if err != nil {
		return "", err
	}
	return filepath.Abs(expandHome(strings.TrimSpace(answer)))
}

// Choose shows the choices as a single-select list.
func (s *Survey) Choose(q wizard.Question, choices []wizard.Choice) (string, error) {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}

	var answer core.OptionAnswer
	if err := s.ask(&survey.Select{
		Message: q.Message,
		Options: labels,
		Help:    q.Help,
	}, &answer); err != nil {
		return "", err
	}
	return choices[answer.Index].ID, nil
}

// Input asks for a line of text; validation errors are shown by survey and
// the question is asked again.
func (s *Survey) Input(q wizard.Question, validate func(string) error) (string, error) {
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(stringValidator(validate)))
	}

	var answer string
	if err := s.ask(&survey.Input{
		Message: q.Message,
		Default: q.Default,
		Help:    q.Help,
	}, &answer, opts...); err != nil {
		return "", err
	}
	return answer, nil
}

// MultiSelect shows the options with their group as description and the
// picked ones preselected.
func (s *Survey) MultiSelect(q wizard.Question, options []wizard.ListOption) ([]int, error) {
	labels := make([]string, len(options))
	var defaults []int
	for i, o := range options {
		labels[i] = o.Label
		if o.Picked {
			defaults = append(defaults, i)
		}
	}

	var answers []core.OptionAnswer
	err := s.ask(&survey.MultiSelect{
		Message:  q.Message,
		Options:  labels,
		Default:  defaults,
		Help:     q.Help,
		PageSize: s.pageSize,
		Description: func(_ string, index int) string {
			return options[index].Group
		},
	}, &answers)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(answers))
	for i, a := range answers {
		idx[i] = a.Index
	}
	sort.Ints(idx)
	return idx, nil
}

// Progress runs fn while a single status line shows the accumulated
// percentage.
func (s *Survey) Progress(title string, fn func(wizard.Progress) error) error {
	bar := newProgressLine(s.out, title)
	err := fn(bar)
	bar.done()
	return err
}

// Info prints a success message.
func (s *Survey) Info(msg string) {
	fmt.Fprintln(s.out, output.FormatCheckmark(msg))
}

// Error prints an error message.
func (s *Survey) Error(msg string) {
	fmt.Fprintln(s.out, output.FormatError(msg))
}

func stringValidator(validate func(string) error) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		return validate(str)
	}
}

func (s *Survey) validateDir(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	p, err := filepath.Abs(expandHome(strings.TrimSpace(str)))
	if err != nil {
		return err
	}
	if !s.fsys.PathAccessible(p) {
		return fmt.Errorf("%s does not exist", str)
	}
	if !s.fsys.IsDir(p) {
		return fmt.Errorf("%s is not a directory", str)
	}
	return nil
}

// suggestDirs completes a partial path to the directories it could name.
// Hidden directories are offered only once the prefix starts with a dot.
func (s *Survey) suggestDirs(toComplete string) []string {
	dir, prefix := filepath.Split(expandHome(toComplete))
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	names, err := s.fsys.ReadDir(abs)
	if err != nil {
		return nil
	}

	var out []string
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		out = append(out, filepath.Join(filepath.Dir(toComplete+"x"), name)+string(filepath.Separator))
	}
	return out
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
