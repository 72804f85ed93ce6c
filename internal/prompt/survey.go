package prompt

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrInterrupted is returned when the operator aborts a prompt with Ctrl-C.
var ErrInterrupted = errors.New("prompt interrupted")

// Survey asks questions on the controlling terminal.
type Survey struct {
	opts []survey.AskOpt
}

// NewSurvey creates a terminal prompter. Extra ask options (for example
// survey.WithStdio) are applied to every question.
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: opts}
}

func (s *Survey) ask(p survey.Prompt, answer interface{}, opts ...survey.AskOpt) error {
	err := survey.AskOne(p, answer, append(append([]survey.AskOpt(nil), s.opts...), opts...)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

func (s *Survey) Input(message string, validate func(string) error) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			str, ok := ans.(string)
			if !ok {
				return fmt.Errorf("expected text, got %T", ans)
			}
			return validate(str)
		}))
	}
	if err := s.ask(&survey.Input{Message: message}, &answer, opts...); err != nil {
		return "", err
	}
	return answer, nil
}

func (s *Survey) Confirm(message string, def bool) (bool, error) {
	answer := def
	if err := s.ask(&survey.Confirm{Message: message, Default: def}, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

func (s *Survey) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%q: no options to choose from", message)
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	var idx int
	if err := s.ask(&survey.Select{Message: message, Options: labels}, &idx); err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("%q: selection %d out of range", message, idx)
	}
	return options[idx].Value, nil
}
