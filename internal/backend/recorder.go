package backend

import (
	"context"
	"sync"
)

// Result scripts the outcome of one command for a Recorder.
type Result struct {
	ExitCode int
	Output   string
	// Err simulates a spawn failure.
	Err error
}

// Recorder is a CommandBackend that never starts a process. It records every
// command line and answers with scripted results; unscripted commands
// succeed. Used for dry runs and tests.
type Recorder struct {
	mu       sync.Mutex
	results  map[string][]Result
	commands []string
	modes    []Mode
	// OnRun, when set, is called for each command before it is answered.
	OnRun func(commandLine string, mode Mode)
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{results: make(map[string][]Result)}
}

// Script queues results for commandLine. Each run consumes one result; the
// last one is reused once the queue is drained.
func (r *Recorder) Script(commandLine string, results ...Result) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[commandLine] = append(r.results[commandLine], results...)
	return r
}

// Fail makes commandLine exit with code.
func (r *Recorder) Fail(commandLine string, code int) *Recorder {
	return r.Script(commandLine, Result{ExitCode: code})
}

// Name implements CommandBackend.
func (r *Recorder) Name() string {
	return "recorder"
}

// Run implements CommandBackend.
func (r *Recorder) Run(ctx context.Context, commandLine string, mode Mode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &CommandError{Command: commandLine, ExitCode: -1, Cause: err}
	}

	r.mu.Lock()
	r.commands = append(r.commands, commandLine)
	r.modes = append(r.modes, mode)
	res := r.next(commandLine)
	hook := r.OnRun
	r.mu.Unlock()

	if hook != nil {
		hook(commandLine, mode)
	}

	var out string
	if mode.Captures() {
		out = res.Output
	}
	if res.Err != nil {
		return out, &CommandError{Command: commandLine, ExitCode: -1, Output: out, Cause: res.Err}
	}
	if res.ExitCode != 0 {
		return out, &CommandError{Command: commandLine, ExitCode: res.ExitCode, Output: out}
	}
	return out, nil
}

func (r *Recorder) next(commandLine string) Result {
	queue := r.results[commandLine]
	switch len(queue) {
	case 0:
		return Result{}
	case 1:
		return queue[0]
	}
	r.results[commandLine] = queue[1:]
	return queue[0]
}

// Commands returns the command lines run so far, in order.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commands...)
}

// Modes returns the mode each recorded command ran in.
func (r *Recorder) Modes() []Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Mode(nil), r.modes...)
}
