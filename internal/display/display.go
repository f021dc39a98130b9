// Package display renders user-facing messages with consistent colors.
// All helpers take an explicit writer so callers stay testable.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errColor     = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	cmdColor     = color.New(color.FgCyan, color.Bold)
	noticeColor  = color.New(color.Faint)
)

// Errorf prints a red error line.
func Errorf(w io.Writer, format string, a ...interface{}) {
	errColor.Fprintf(w, "Error: "+format+"\n", a...)
}

// Warnf prints a yellow warning line.
func Warnf(w io.Writer, format string, a ...interface{}) {
	warnColor.Fprintf(w, format+"\n", a...)
}

// Successf prints a green confirmation line.
func Successf(w io.Writer, format string, a ...interface{}) {
	successColor.Fprintf(w, format+"\n", a...)
}

// Noticef prints a dim informational line.
func Noticef(w io.Writer, format string, a ...interface{}) {
	noticeColor.Fprintf(w, format+"\n", a...)
}

// Promptf prints an inline prompt without a trailing newline.
func Promptf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format, a...)
}

// Suggestion prints the generated command, set off from surrounding text.
func Suggestion(w io.Writer, command string) {
	fmt.Fprintln(w)
	fmt.Fprint(w, "  ")
	cmdColor.Fprintln(w, command)
	fmt.Fprintln(w)
}
