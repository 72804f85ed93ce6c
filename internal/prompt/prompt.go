// Package prompt asks the operator questions. The engine depends only on the
// Prompter interface so tests can script the answers.
package prompt

import (
	"errors"
	"fmt"
)

// ErrNonInteractive is returned when a question needs an answer but no
// operator is attached.
var ErrNonInteractive = errors.New("no interactive terminal to answer the prompt")

// Option is one entry of a selection list.
type Option struct {
	Label string
	Value string
}

// Prompter asks the operator questions.
type Prompter interface {
	// Input asks for free text. validate, when non-nil, blocks submission
	// until it returns nil.
	Input(message string, validate func(string) error) (string, error)
	// Confirm asks a yes/no question with a default answer.
	Confirm(message string, def bool) (bool, error)
	// Select asks the operator to pick one option and returns its Value.
	Select(message string, options []Option) (string, error)
}

// NonInteractive answers confirmations with their defaults and refuses
// free-text and selection questions unless a preset answer exists.
type NonInteractive struct {
	// Presets maps a question message to the answer to give.
	Presets map[string]string
}

func (p *NonInteractive) preset(message string) (string, bool) {
	if p.Presets == nil {
		return "", false
	}
	v, ok := p.Presets[message]
	return v, ok
}

func (p *NonInteractive) Input(message string, validate func(string) error) (string, error) {
	v, ok := p.preset(message)
	if !ok {
		return "", fmt.Errorf("%q: %w", message, ErrNonInteractive)
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", fmt.Errorf("%q: preset answer rejected: %w", message, err)
		}
	}
	return v, nil
}

func (p *NonInteractive) Confirm(message string, def bool) (bool, error) {
	return def, nil
}

func (p *NonInteractive) Select(message string, options []Option) (string, error) {
	v, ok := p.preset(message)
	if !ok {
		return "", fmt.Errorf("%q: %w", message, ErrNonInteractive)
	}
	for _, o := range options {
		if o.Value == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%q: preset answer %q is not an option", message, v)
}
