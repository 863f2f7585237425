// Package diag writes the program's stderr diagnostics: notes for
// conditions worth flagging and error lines for failures.
package diag

import (
	"fmt"
	"io"
)

// Program is the name diagnostics are prefixed with.
const Program = "urler"

// Logger formats diagnostic lines onto one writer, normally stderr.
type Logger struct {
	w io.Writer
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Warnf writes one note line.
func (l *Logger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, Program+" note: "+format+"\n", args...)
}

// Errorf writes one error line followed by the help hint.
func (l *Logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, Program+" error: "+format+"\n", args...)
	fmt.Fprintf(l.w, Program+" error: Try "+Program+" -h for help\n")
}
