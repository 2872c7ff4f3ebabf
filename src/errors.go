package tinytcl

import (
	"fmt"
	"strings"
)

// ParseError reports malformed script text
type ParseError struct {
	Position  SourcePosition
	Reason    string
	Remaining string
	// Incomplete is set when an unterminated construct ran into the end of
	// input, so more text could still complete the script.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Position.Line, e.Position.Column, e.Reason)
}

// IsIncomplete reports whether err is a parse error caused by input ending
// inside an open quote, group or substitution.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// InvalidEscapeError reports an unrecognized backslash escape in a quoted word
type InvalidEscapeError struct {
	Sequence string
}

func (e *InvalidEscapeError) Error() string {
	if e.Sequence == `\` {
		return "truncated escape sequence '\\'"
	}
	return fmt.Sprintf("invalid escape sequence '%s'", e.Sequence)
}

// UnknownCommandError reports a command name with no registered handler
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%s'", e.Name)
}

// ArityError reports a violated argument-count contract
type ArityError struct {
	Command  string
	Expected int
	Received int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d arguments to '%s', received %d", e.Expected, e.Command, e.Received)
}

// ConversionError reports an argument a handler could not interpret
type ConversionError struct {
	Value  string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unable to convert '%s': %s", e.Value, e.Reason)
}

// MalformedError reports well-typed but semantically invalid arguments
type MalformedError struct {
	Command  string
	Reason   string
	Received []string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed '%s' command: %s got %s", e.Command, e.Reason, strings.Join(e.Received, " "))
}

// CommandError attaches the failing command's name and position to an
// evaluation error. Use errors.As to reach the underlying kind.
type CommandError struct {
	Name     string
	Position SourcePosition
	Err      error
}

func (e *CommandError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
