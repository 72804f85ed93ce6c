// Package output handles everything the operator sees or keeps after a run:
// coloured status lines on the terminal and the diagnostic log of captured
// command output.
package output

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Entry is one captured command result.
type Entry struct {
	RunID     string
	Step      string
	Command   string
	ExitCode  int
	Output    string
	Tolerated bool
}

// Capturer appends captured command output to a diagnostic log file.
// A zero path disables it.
type Capturer struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewCapturer creates a capturer writing to path.
func NewCapturer(path string) *Capturer {
	return &Capturer{path: path, now: time.Now}
}

// Enabled reports whether a log file is configured.
func (c *Capturer) Enabled() bool {
	return c != nil && c.path != ""
}

// Path returns the log file path.
func (c *Capturer) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Record appends e to the log. It is a no-op when the capturer is disabled.
func (c *Capturer) Record(e Entry) error {
	if !c.Enabled() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", c.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatEntry(c.now().UTC(), e)); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", c.path, err)
	}
	return nil
}

func formatEntry(ts time.Time, e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s run=%s step=%s command=%q exit=%d",
		ts.Format(time.RFC3339), e.RunID, e.Step, e.Command, e.ExitCode)
	if e.Tolerated {
		b.WriteString(" tolerated=true")
	}
	b.WriteByte('\n')
	for _, line := range strings.Split(strings.TrimRight(e.Output, "\n"), "\n") {
		if line == "" {
			continue
		}
		b.WriteString("  | ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
