// Package logging wraps the stdlib log package the way the teacher's
// main.go narrates progress and failures: one-line log.Printf/log.Fatalf
// calls, no structured logging library.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger narrates pipeline progress and failures.
type Logger struct {
	*log.Logger
}

// New builds a Logger writing to stdout when toStdout is set, stderr
// otherwise — the --log-stdout CLI flag from spec.md §6.
func New(toStdout bool) *Logger {
	var w io.Writer = os.Stderr
	if toStdout {
		w = os.Stdout
	}
	return &Logger{Logger: log.New(w, "", log.LstdFlags)}
}

// Stage logs the start of a pipeline stage.
func (l *Logger) Stage(name string) {
	l.Printf("[stage] %s", name)
}

// Warn logs a recoverable condition (spec.md §7: absent optional
// artifacts flip a feature off rather than aborting the run).
func (l *Logger) Warn(format string, args ...any) {
	l.Printf("[warn] "+format, args...)
}
