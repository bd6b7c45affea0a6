// Package errors defines the failure kinds of an invocation and renders them
// as the blocks users see.
package errors

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

// Exit codes returned by a finished invocation.
const (
	ExitOK      = 0
	ExitHandler = 1
	ExitUsage   = 2
)

// ValidationError holds every issue found while parsing and validating the
// flags of Command.
type ValidationError struct {
	Command *registry.Command
	Issues  []schema.Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}
	return "validation error: " + strings.Join(lines, "; ")
}

// UnionConflictError reports that more than one member of a union group was
// supplied. Message names the members, e.g. "--step and --to are
// incompatible and cannot be used together".
type UnionConflictError struct {
	Command *registry.Command
	Message string
}

func (e *UnionConflictError) Error() string {
	return e.Message
}

// HandlerError wraps a failure returned by a command handler.
type HandlerError struct {
	Command string
	Err     error
	// Verbose selects the full cause chain over the one-line summary.
	Verbose bool
}

func (e *HandlerError) Error() string {
	return e.Err.Error()
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// ExitError carries the process exit code of a failed invocation. Its
// output has already been written.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Code returns the exit code for err: ExitOK for nil, the carried code for
// an *ExitError and ExitHandler otherwise.
func Code(err error) int {
	if err == nil {
		return ExitOK
	}
	var exit *ExitError
	if As(err, &exit) {
		return exit.Code
	}
	return ExitHandler
}
