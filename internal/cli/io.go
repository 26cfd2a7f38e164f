package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IO handles command output. Warnings are printed to stderr both before the
// first stdout line and again at the end, so they survive head/tail.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	started  bool

	warnColor *color.Color
	errColor  *color.Color
}

// NewIO creates a new IO instance. Diagnostics are colored only when errOut
// is a terminal.
func NewIO(out, errOut io.Writer) *IO {
	o := &IO{
		out:       out,
		errOut:    errOut,
		warnColor: color.New(color.FgYellow),
		errColor:  color.New(color.FgRed, color.Bold),
	}

	if isTerminal(errOut) {
		o.warnColor.EnableColor()
		o.errColor.EnableColor()
	} else {
		o.warnColor.DisableColor()
		o.errColor.DisableColor()
	}

	return o
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Warn adds an actionable warning.
//
// Parameters:
//   - issue: what went wrong
//   - action: what the user should do about it
//
// Any warning makes [IO.Finish] return exit code 1. Stdout output still
// happens, so partial results are usable.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, fmt.Sprintf("%s: %s", issue, action))
}

// Println writes to stdout. On first call, any collected warnings
// are printed to stderr first.
func (o *IO) Println(a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Error prints err to stderr with an "error:" prefix.
func (o *IO) Error(err error) {
	_, _ = fmt.Fprintln(o.errOut, o.errColor.Sprint("error:"), err)
}

// Finish prints warnings to stderr and returns the exit code.
func (o *IO) Finish() int {
	o.flushWarningsStart()

	o.printWarnings()

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}

func (o *IO) flushWarningsStart() {
	if !o.started && len(o.warnings) > 0 {
		o.printWarnings()

		o.started = true
	}
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, o.warnColor.Sprint("warning:"), w)
	}
}
