package prompt

import (
	"fmt"
	"strconv"
	"sync"
)

// Question records one prompt shown by a Scripted prompter.
type Question struct {
	Kind    string // "input", "confirm" or "select"
	Message string
	Default bool
}

type answer struct {
	kind  string
	value string
}

// Scripted answers prompts from a queue, in order. It stands in for the
// operator in tests and records every question asked.
type Scripted struct {
	mu      sync.Mutex
	answers []answer
	asked   []Question
}

// NewScripted creates a prompter with an empty answer queue.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Text queues free-text answers. Answers rejected by the validator are
// consumed the way a retyped submission would be.
func (s *Scripted) Text(values ...string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		s.answers = append(s.answers, answer{kind: "input", value: v})
	}
	return s
}

// Yes queues a positive confirmation.
func (s *Scripted) Yes() *Scripted { return s.confirm(true) }

// No queues a negative confirmation.
func (s *Scripted) No() *Scripted { return s.confirm(false) }

// Default queues "press enter", taking the question's default.
func (s *Scripted) Default() *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answer{kind: "confirm"})
	return s
}

func (s *Scripted) confirm(v bool) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answer{kind: "confirm", value: strconv.FormatBool(v)})
	return s
}

// Choose queues a selection by option value.
func (s *Scripted) Choose(value string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answer{kind: "select", value: value})
	return s
}

// Asked returns every question shown so far.
func (s *Scripted) Asked() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Question(nil), s.asked...)
}

// Remaining returns how many queued answers were never used.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Scripted) pop(q Question) (answer, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return answer{}, fmt.Errorf("unexpected %s prompt %q: no scripted answer left", q.Kind, q.Message)
	}
	a := s.answers[0]
	if a.kind != q.Kind {
		return answer{}, fmt.Errorf("prompt %q is a %s question, next scripted answer is %s", q.Message, q.Kind, a.kind)
	}
	s.answers = s.answers[1:]
	return a, nil
}

func (s *Scripted) Input(message string, validate func(string) error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		a, err := s.pop(Question{Kind: "input", Message: message})
		if err != nil {
			return "", err
		}
		if validate == nil || validate(a.value) == nil {
			return a.value, nil
		}
	}
}

func (s *Scripted) Confirm(message string, def bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.pop(Question{Kind: "confirm", Message: message, Default: def})
	if err != nil {
		return false, err
	}
	if a.value == "" {
		return def, nil
	}
	return strconv.ParseBool(a.value)
}

func (s *Scripted) Select(message string, options []Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.pop(Question{Kind: "select", Message: message})
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o.Value == a.value {
			return a.value, nil
		}
	}
	return "", fmt.Errorf("prompt %q has no option %q", message, a.value)
}
