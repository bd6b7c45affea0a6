package errors

import (
	"io"
	"os"

	"github.com/cristianoliveira/decli/internal/registry"
)

// Reporter writes failure blocks and decides the exit code. Usage failures
// go to Out next to the help they embed; handler failures go to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer
	// Commands backs the list shown after an unknown command.
	Commands []*registry.Command
}

// NewReporter returns a reporter writing to out and errOut. Nil writers
// default to the process streams.
func NewReporter(out, errOut io.Writer, cmds []*registry.Command) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Reporter{Out: out, Err: errOut, Commands: cmds}
}

// Report renders err and returns the exit code it maps to.
func (r *Reporter) Report(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		validation *ValidationError
		conflict   *UnionConflictError
		unknown    *registry.UnknownCommandError
		handler    *HandlerError
	)
	switch {
	case As(err, &conflict):
		io.WriteString(r.Out, ConflictBlock(r.Out, conflict.Command, conflict.Message))
		return ExitUsage
	case As(err, &validation):
		io.WriteString(r.Out, ValidationBlock(r.Out, validation.Command, validation.Issues))
		return ExitUsage
	case As(err, &unknown):
		io.WriteString(r.Out, UnknownBlock(r.Out, unknown, r.Commands))
		return ExitUsage
	case As(err, &handler) && handler.Verbose:
		io.WriteString(r.Err, Verbose(r.Err, handler))
		return ExitHandler
	default:
		io.WriteString(r.Err, Summary(r.Err, err))
		return Code(err)
	}
}
