package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions while decoding a trace.
// They can be checked with errors.Is.
var (
	// ErrFormat is returned when the header or a gathering point line is malformed.
	ErrFormat = errors.New("simtrace: malformed trace preamble")

	// ErrParse is returned when a well-shaped agent record carries an invalid value.
	ErrParse = errors.New("simtrace: invalid agent record")

	// ErrCountMismatch is returned when a frame's health counts do not add up
	// to its agent count.
	ErrCountMismatch = errors.New("simtrace: health counts do not match agent count")

	// ErrAlreadyRunning is returned when Start() is called on a running player.
	ErrAlreadyRunning = errors.New("simtrace: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped player.
	ErrNotRunning = errors.New("simtrace: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("simtrace: shutdown timeout")

	// ErrPlayerUsed is returned when Start() is called on a player that already
	// played its trace. A player consumes its source and cannot rewind.
	ErrPlayerUsed = errors.New("simtrace: player already used")
)

// FormatError describes a malformed header or gathering point line.
type FormatError struct {
	// Line is the 1-based line number in the trace file.
	Line int
	// Field names the value being parsed (e.g. "agent count").
	Field string
	// Err is the underlying cause, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: line %d: %s: %v", ErrFormat, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: line %d: %s", ErrFormat, e.Line, e.Field)
}

// Unwrap lets errors.Is match both ErrFormat and the underlying cause.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}

// ParseError describes an agent record that has the right shape but an
// unusable value, such as an unknown health code.
type ParseError struct {
	Line  int
	Field string
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d: %s %q", ErrParse, e.Line, e.Field, e.Token)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
