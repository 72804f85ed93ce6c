package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Reporter prints operator-facing status lines.
type Reporter struct {
	out     io.Writer
	verbose bool

	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	debug   *color.Color
	link    *color.Color
	plain   *color.Color
}

// ReporterOptions configures a Reporter.
type ReporterOptions struct {
	Out     io.Writer // default os.Stdout
	Verbose bool      // show Debug lines
	NoColor bool
}

// NewReporter creates a reporter.
func NewReporter(opts ReporterOptions) *Reporter {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	r := &Reporter{
		out:     out,
		verbose: opts.Verbose,
		info:    color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		debug:   color.New(color.FgHiBlack),
		link:    color.New(color.FgBlue, color.Underline),
		plain:   color.New(color.FgWhite),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{r.info, r.success, r.warn, r.fail, r.debug, r.link, r.plain} {
			c.DisableColor()
		}
	}
	return r
}

// Discard returns a reporter that prints nothing.
func Discard() *Reporter {
	return NewReporter(ReporterOptions{Out: io.Discard, NoColor: true})
}

func (r *Reporter) line(c *color.Color, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.Fprintln(r.out, prefix+msg)
}

// Info prints a progress line.
func (r *Reporter) Info(format string, args ...interface{}) {
	r.line(r.info, "🔍 ", format, args...)
}

// Banner announces the start of a run.
func (r *Reporter) Banner(format string, args ...interface{}) {
	r.line(r.info, "🚀 ", format, args...)
}

// Step announces the command about to run.
func (r *Reporter) Step(format string, args ...interface{}) {
	r.line(r.plain, "⏳ ", format, args...)
}

// Success reports a finished run.
func (r *Reporter) Success(format string, args ...interface{}) {
	r.line(r.success, "✅ ", format, args...)
}

// Warn prints a non-fatal problem.
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.line(r.warn, "⚠️  ", format, args...)
}

// Fail reports the error that stopped a run.
func (r *Reporter) Fail(format string, args ...interface{}) {
	r.line(r.fail, "❌ ", format, args...)
}

// Cancelled reports a run stopped by the operator. It is not an error.
func (r *Reporter) Cancelled(format string, args ...interface{}) {
	r.line(r.warn, "🛑 ", format, args...)
}

// Debug prints only in verbose mode.
func (r *Reporter) Debug(format string, args ...interface{}) {
	if !r.verbose {
		return
	}
	r.line(r.debug, "🐛 ", format, args...)
}

// Detail prints command output indented under the previous line. Empty text
// prints nothing.
func (r *Reporter) Detail(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		r.debug.Fprintln(r.out, "   | "+l)
	}
}

// Announce prints operator guidance. URLs on their own line are highlighted.
func (r *Reporter) Announce(text string) {
	fmt.Fprintln(r.out)
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "https://") || strings.HasPrefix(trimmed, "http://") {
			r.line(r.link, "🌐 ", "%s", trimmed)
			continue
		}
		r.plain.Fprintln(r.out, l)
	}
}
