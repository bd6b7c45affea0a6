// Package app boots a command table into a process: configuration, colour
// mode, logging, signal handling and the exit code.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/decli/internal/colors"
	"github.com/cristianoliveira/decli/internal/config"
	"github.com/cristianoliveira/decli/internal/errors"
	"github.com/cristianoliveira/decli/internal/logging"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/runner"
)

// Builder produces the command table once configuration is loaded. The
// returned cleanup, when not nil, runs after the invocation.
type Builder func(ctx context.Context) (cmds []registry.Command, cleanup func() error, err error)

// Options configures Run.
type Options struct {
	// Program names the binary. It selects the config and state
	// directories and prefixes log files.
	Program string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Static returns a Builder for a fixed command table.
func Static(cmds []registry.Command) Builder {
	return func(context.Context) ([]registry.Command, func() error, error) {
		return cmds, nil, nil
	}
}

// Main runs commands against the process arguments and returns the exit
// code.
func Main(program string, cmds []registry.Command) int {
	return MainWith(program, Static(cmds))
}

// MainWith is Main for command tables that depend on configuration.
func MainWith(program string, build Builder) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, Options{
		Program: program,
		Args:    os.Args[1:],
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, build)
}

// Run executes one invocation and returns its exit code.
func Run(ctx context.Context, opts Options, build Builder) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	colors.SetOutput(opts.Stdout, opts.Stderr)

	config.Load(opts.Program)
	colors.SetMode(colors.Mode(config.Get("color", string(colors.ModeAuto))))
	colors.SetDebug(config.GetBool("debug", false))

	if err := logging.InitGlobal(opts.Program); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	defer func() {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug(fmt.Sprintf("closing log file: %v", err))
		}
	}()
	logger := logging.GetGlobal()

	cmds, cleanup, err := build(ctx)
	if err != nil {
		logger.Error("build commands", "error", err)
		colors.Error(err.Error())
		return errors.ExitHandler
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				colors.Warning(fmt.Sprintf("cleanup: %v", err))
			}
		}()
	}

	reg := registry.New()
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			logger.Error("register command", "command", c.Name, "error", err)
			colors.Error(fmt.Sprintf("invalid command %q: %v", c.Name, err))
			return errors.ExitHandler
		}
	}

	r := &runner.Runner{
		Registry: reg,
		Out:      opts.Stdout,
		Err:      opts.Stderr,
		Logger:   logger,
		Verbose:  config.GetBool("verbose_errors", false),
	}
	code := errors.Code(r.Run(ctx, opts.Args))
	logger.Info("finished", "exit_code", code)
	return code
}
