package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI escape sequences.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

// colors is off when NO_COLOR is set.
var colors = os.Getenv("NO_COLOR") == ""

// DisableColors turns off ANSI output.
func DisableColors() { colors = false }

// EnableColors turns on ANSI output.
func EnableColors() { colors = true }

func paint(seq, s string) string {
	if !colors {
		return s
	}
	return seq + s + ansiReset
}

// Format renders e for a terminal: a header with code and message, the
// operation and subject, the wrapped detail, every cause in the chain and
// the hint.
func (e *Error) Format() string {
	var b strings.Builder

	header := "ERROR"
	if e.Code != "" {
		header += " " + e.Code
	}
	fmt.Fprintf(&b, "\n%s %s", paint(ansiRed+ansiBold, header+":"), paint(ansiBold, e.Message))
	if e.Category != "" {
		fmt.Fprintf(&b, " %s", paint(ansiGray, "("+string(e.Category)+")"))
	}
	b.WriteString("\n\n")

	var where []string
	if e.Op != "" {
		where = append(where, paint(ansiCyan, "during "+e.Op))
	}
	if e.Subject != "" {
		where = append(where, paint(ansiGray, "["+e.Subject+"]"))
	}
	if len(where) > 0 {
		fmt.Fprintf(&b, "  %s\n\n", strings.Join(where, " "))
	}

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	for cause := e.Wrapped; cause != nil; cause = stderrors.Unwrap(cause) {
		fmt.Fprintf(&b, "  %s%s\n", paint(ansiGray, "Cause: "), cause.Error())
	}
	if e.Wrapped != nil {
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint(ansiCyan, "Hint: "), e.Suggestion)
	}

	return b.String()
}

// FormatCompact returns the single-line form, same as Error.
func (e *Error) FormatCompact() string {
	return e.Error()
}

// wrapText breaks text into lines of at most width bytes where words
// allow. A word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(word) > width {
			lines = append(lines, word)
			continue
		}
		*last += " " + word
	}
	return lines
}

// Fprint writes err to w. Coded errors anywhere in the chain are rendered
// with Format; anything else gets a plain header.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint(ansiRed+ansiBold, "ERROR:"), err.Error())
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
