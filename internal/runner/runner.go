// Package runner resolves a command line against a registry and runs the
// matching command.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/decli/internal/argv"
	"github.com/cristianoliveira/decli/internal/errors"
	"github.com/cristianoliveira/decli/internal/format"
	"github.com/cristianoliveira/decli/internal/help"
	"github.com/cristianoliveira/decli/internal/logging"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

// Runner dispatches invocations. Out receives help, usage error blocks and
// printed results; Err receives handler failures.
type Runner struct {
	Registry *registry.Registry
	Out      io.Writer
	Err      io.Writer
	Logger   logging.Logger
	// Verbose renders handler failures with their full cause chain, as if
	// --verbose-errors was passed.
	Verbose bool
}

// New returns a runner over reg writing to the process streams.
func New(reg *registry.Registry) *Runner {
	return &Runner{Registry: reg, Out: os.Stdout, Err: os.Stderr, Logger: logging.Nop()}
}

// Run executes one invocation. It returns nil on success or after printing
// help, and an *errors.ExitError once a failure has been reported.
func (r *Runner) Run(ctx context.Context, args []string) error {
	args, verbose := argv.StripVerbose(args)
	verbose = verbose || r.Verbose
	log := r.logger()

	if argv.HasHelp(args) {
		path, _ := argv.Split(args)
		io.WriteString(r.out(), r.help(path))
		return nil
	}

	cmd, tail, err := r.Registry.Resolve(args)
	if err != nil {
		path, _ := argv.Split(args)
		log.Debug("resolve failed", "path", path, "error", err)
		return r.fail(err)
	}
	log = log.With("command", cmd.Name)

	raw, issues := argv.Parse(tail, cmd.Flags)
	log.Debug("parsed flags", rawPairs(raw)...)

	outcome := schema.Validate(cmd.Flags, cmd.Unions, raw)
	if outcome.Conflict {
		return r.fail(&errors.UnionConflictError{Command: cmd, Message: outcome.Issues[0].Message})
	}
	issues = append(issues, outcome.Issues...)
	if len(issues) > 0 {
		return r.fail(&errors.ValidationError{Command: cmd, Issues: issues})
	}

	log.Info("dispatch")
	result, err := cmd.Handler(ctx, outcome.Values)
	if err != nil {
		log.Error("handler failed", "error", err)
		return r.fail(&errors.HandlerError{Command: cmd.Name, Err: err, Verbose: verbose})
	}
	if result != nil {
		fmt.Fprintln(r.out(), format.Inspect(result))
	}
	return nil
}

// help renders detail help for the deepest command the path resolves to,
// otherwise the list of the namespace it names, otherwise the root list.
func (r *Runner) help(path []string) string {
	if cmd, _, err := r.Registry.Resolve(path); err == nil {
		return help.Detail(cmd)
	}
	if len(path) > 0 {
		if cmds := r.Registry.ListPrefix(registry.Namespace(path)); len(cmds) > 0 {
			return help.List(cmds)
		}
	}
	return help.List(r.Registry.List())
}

func (r *Runner) fail(err error) error {
	reporter := errors.NewReporter(r.out(), r.errOut(), r.Registry.List())
	return &errors.ExitError{Code: reporter.Report(err), Err: err}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) errOut() io.Writer {
	if r.Err == nil {
		return os.Stderr
	}
	return r.Err
}

func (r *Runner) logger() logging.Logger {
	if r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}

// rawPairs flattens raw flags into logger key/value pairs. Secret-looking
// names are redacted by the logger.
func rawPairs(raw *schema.RawFlags) []any {
	pairs := make([]any, 0, raw.Len()*2)
	for p := raw.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, p.Key, p.Value.String())
	}
	return pairs
}
