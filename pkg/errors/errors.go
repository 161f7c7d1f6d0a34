package errors

import (
	"fmt"
)

// ValidationError captures invalid run input: an unknown state token, a
// missing required reason, or an empty node list. It is always raised before
// any scontrol invocation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a batch file that could not be decoded, with optional
// line metadata recovered from the YAML decoder.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConnectivityError means the scontrol liveness probe failed: the controller
// is unreachable and the run terminates before any node is queried.
type ConnectivityError struct {
	Err error
}

// NewConnectivityError constructs a ConnectivityError.
func NewConnectivityError(err error) error {
	return &ConnectivityError{Err: err}
}

func (e *ConnectivityError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("connectivity error: slurm controller unreachable: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ConnectivityError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// QueryError means a per-node state query failed or its output could not be
// parsed. It aborts the whole batch even when other nodes would have
// succeeded, so diffing never runs against a partial snapshot.
type QueryError struct {
	Node string
	Err  error
}

// NewQueryError constructs a QueryError for the given node.
func NewQueryError(node string, err error) error {
	return &QueryError{Node: node, Err: err}
}

func (e *QueryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Node != "" {
		return fmt.Sprintf("query error on node %s: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("query error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *QueryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CommandError means an update submission returned non-success. The remaining
// actions in the batch are never submitted.
type CommandError struct {
	Node     string
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

// NewCommandError constructs a CommandError carrying the exit diagnostics of
// the failed update.
func NewCommandError(node, command string, exitCode int, stderr string, err error) error {
	return &CommandError{Node: node, Command: command, ExitCode: exitCode, Stderr: stderr, Err: err}
}

func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("command error on node %s: %q returned exit code %d", e.Node, e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	return msg
}

// Unwrap exposes the underlying error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
