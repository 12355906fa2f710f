// Package diag implements the shared diagnostics log appended to by the
// tokenizer, parser and reducer, following the format and writer contract
// from the interpreter's external interfaces.
package diag

import (
	"fmt"
	"io"

	"github.com/cwbudde/funcity/internal/token"
)

// Kind distinguishes a recoverable warning from a recorded error.
type Kind uint8

const (
	Warning Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "warning"
}

// LogEntry is a single diagnostic carrying the source range it applies to.
type LogEntry struct {
	Kind        Kind
	Description string
	Range       token.Range
}

// Format renders an entry as "<path>:<range>: <kind>: <description>".
func Format(entry LogEntry, path string) string {
	return fmt.Sprintf("%s:%s: %s: %s", path, entry.Range, entry.Kind, entry.Description)
}

// Log is an append-only diagnostics buffer shared across the tokenizer,
// parser and reducer for a single run.
type Log struct {
	entries []LogEntry
}

// NewLog returns an empty diagnostics log.
func NewLog() *Log {
	return &Log{}
}

// Warn appends a warning-kind entry.
func (l *Log) Warn(description string, r token.Range) {
	l.append(Warning, description, r)
}

// Error appends an error-kind entry.
func (l *Log) Error(description string, r token.Range) {
	l.append(Error, description, r)
}

func (l *Log) append(kind Kind, description string, r token.Range) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, LogEntry{Kind: kind, Description: description, Range: r})
}

// Entries returns the accumulated diagnostics in append order.
func (l *Log) Entries() []LogEntry {
	if l == nil {
		return nil
	}
	return l.entries
}

// HasError reports whether any error-kind entry was recorded.
func (l *Log) HasError() bool {
	if l == nil {
		return false
	}
	for _, e := range l.entries {
		if e.Kind == Error {
			return true
		}
	}
	return false
}

// Writer directs warnings and errors from a Log to two sinks, following the
// run's external diagnostics-output contract. It returns whether any
// error-kind entry was written.
type Writer struct {
	Warnings io.Writer
	Errors   io.Writer
	Path     string
}

// Write renders every entry in l to the configured sinks and reports
// whether an error-kind entry was seen.
func (w Writer) Write(l *Log) bool {
	sawError := false
	for _, entry := range l.Entries() {
		line := Format(entry, w.Path) + "\n"
		switch entry.Kind {
		case Error:
			sawError = true
			if w.Errors != nil {
				io.WriteString(w.Errors, line)
			}
		default:
			if w.Warnings != nil {
				io.WriteString(w.Warnings, line)
			}
		}
	}
	return sawError
}
