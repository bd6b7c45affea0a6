package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/decli/internal/colors"
	"github.com/cristianoliveira/decli/internal/help"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

// Standard library helpers, so callers need a single errors import.
var (
	As     = stderrors.As
	Is     = stderrors.Is
	New    = stderrors.New
	Unwrap = stderrors.Unwrap
)

// ValidationBlock renders the issue list followed by the command's help.
// Only the header line is styled for w.
func ValidationBlock(w io.Writer, c *registry.Command, issues []schema.Issue) string {
	var b strings.Builder
	b.WriteString(colors.Header(w, "Validation error") + "\n")
	for _, issue := range issues {
		b.WriteString("  - " + issue.String() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(help.Detail(c))
	return b.String()
}

// ConflictBlock renders a union conflict followed by the command's help.
func ConflictBlock(w io.Writer, c *registry.Command, message string) string {
	return colors.Header(w, message) + "\n\n" + help.Detail(c)
}

// UnknownBlock renders an unresolved command path followed by the command
// list.
func UnknownBlock(w io.Writer, err *registry.UnknownCommandError, cmds []*registry.Command) string {
	header := "No command specified"
	if len(err.Path) > 0 {
		header = fmt.Sprintf("Command not found: %q", strings.Join(err.Path, " "))
	}
	return colors.Header(w, header) + "\n\n" + help.List(cmds)
}

// Summary renders the first line of err's message.
func Summary(w io.Writer, err error) string {
	first, _, _ := strings.Cut(err.Error(), "\n")
	return colors.Header(w, "Error: "+first) + "\n"
}

// Verbose renders err's full message and every wrapped cause beneath it.
func Verbose(w io.Writer, err error) string {
	var b strings.Builder
	lines := strings.Split(err.Error(), "\n")
	b.WriteString(colors.Header(w, "Error: "+lines[0]) + "\n")
	for _, line := range lines[1:] {
		b.WriteString(line + "\n")
	}
	for cause := causeOf(err); cause != nil; cause = causeOf(cause) {
		b.WriteString("caused by: " + cause.Error() + "\n")
	}
	return b.String()
}

// causeOf skips the engine's own wrappers so the first cause shown is one
// the handler did not already print.
func causeOf(err error) error {
	cause := stderrors.Unwrap(err)
	if h, ok := err.(*HandlerError); ok {
		cause = stderrors.Unwrap(h.Err)
	}
	return cause
}
