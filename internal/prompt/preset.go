package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dpgen-labs/dpgen/internal/wizard"
)

// ErrNoAnswer is returned when an unattended run reaches a question that has
// no preset answer.
var ErrNoAnswer = errors.New("no answer given")

// Template selections understood in addition to unit labels.
const (
	SelectDefaults = "defaults"
	SelectNone     = "none"
)

// Preset answers questions from fixed values and falls back to Next for the
// rest. A nil Next makes every unanswered question fail with ErrNoAnswer.
type Preset struct {
	Next wizard.Prompter
	// Answers maps question IDs to text answers.
	Answers map[string]string
	// Templates selects units by label, or SelectDefaults / SelectNone.
	Templates []string
	// AssumeYes answers every confirmation with wizard.ChoiceYes.
	AssumeYes bool
}

var _ wizard.Prompter = (*Preset)(nil)

func (p *Preset) answer(id string) (string, bool) {
	v, ok := p.Answers[id]
	return v, ok
}

func (p *Preset) missing(id string) error {
	return fmt.Errorf("%w for %q (pass it as a flag or run in a terminal)", ErrNoAnswer, id)
}

// SelectDirectory returns the preset directory for the question, if any.
func (p *Preset) SelectDirectory(q wizard.Question) (string, error) {
	if v, ok := p.answer(q.ID); ok {
		return v, nil
	}
	if p.Next == nil {
		return "", p.missing(q.ID)
	}
	return p.Next.SelectDirectory(q)
}

// Choose answers yes when AssumeYes is set. A redo choice drops the preset
// answer of the question it goes back to, so that question is asked.
func (p *Preset) Choose(q wizard.Question, choices []wizard.Choice) (string, error) {
	if v, ok := p.answer(q.ID); ok {
		p.forget(v)
		return v, nil
	}
	if p.AssumeYes {
		return wizard.ChoiceYes, nil
	}
	if p.Next == nil {
		return "", p.missing(q.ID)
	}
	choice, err := p.Next.Choose(q, choices)
	if err == nil {
		p.forget(choice)
	}
	return choice, err
}

func (p *Preset) forget(choice string) {
	switch choice {
	case wizard.ChoiceReselect:
		delete(p.Answers, wizard.QTarget)
	case wizard.ChoiceRename:
		delete(p.Answers, wizard.QName)
	}
}

// Input returns the preset answer after validating it. An invalid preset
// cannot be asked again, so the validation error is returned.
func (p *Preset) Input(q wizard.Question, validate func(string) error) (string, error) {
	v, ok := p.answer(q.ID)
	if !ok {
		if p.Next == nil {
			if q.ID == wizard.QDescription {
				return "", nil
			}
			return "", p.missing(q.ID)
		}
		return p.Next.Input(q, validate)
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// MultiSelect resolves Templates against the option labels.
func (p *Preset) MultiSelect(q wizard.Question, options []wizard.ListOption) ([]int, error) {
	if len(p.Templates) == 0 {
		if p.Next == nil {
			return pickDefaults(options), nil
		}
		return p.Next.MultiSelect(q, options)
	}
	return selectByLabel(p.Templates, options)
}

// Progress delegates to Next, or runs fn without display.
func (p *Preset) Progress(title string, fn func(wizard.Progress) error) error {
	if p.Next == nil {
		return fn(discardProgress{})
	}
	return p.Next.Progress(title, fn)
}

func (p *Preset) Info(msg string) {
	if p.Next != nil {
		p.Next.Info(msg)
	}
}

func (p *Preset) Error(msg string) {
	if p.Next != nil {
		p.Next.Error(msg)
	}
}

type discardProgress struct{}

func (discardProgress) Report(float64, string) {}

func pickDefaults(options []wizard.ListOption) []int {
	var idx []int
	for i, o := range options {
		if o.Picked {
			idx = append(idx, i)
		}
	}
	return idx
}

// selectByLabel matches names case-insensitively against labels. The keywords
// SelectDefaults and SelectNone add the pre-picked options or nothing.
func selectByLabel(names []string, options []wizard.ListOption) ([]int, error) {
	chosen := make(map[int]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch strings.ToLower(name) {
		case SelectNone:
			continue
		case SelectDefaults:
			for _, i := range pickDefaults(options) {
				chosen[i] = true
			}
			continue
		}

		found := false
		for i, o := range options {
			if strings.EqualFold(o.Label, name) {
				chosen[i] = true
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown template %q", name)
		}
	}

	idx := make([]int, 0, len(chosen))
	for i := range options {
		if chosen[i] {
			idx = append(idx, i)
		}
	}
	return idx, nil
}
