// Package registry stores command declarations keyed by their dotted path.
//
// Namespaces such as "search" in "search.byName" are not separate nodes:
// every command lives in one ordered table and namespace views are derived
// by prefix comparison.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/shlex"

	"github.com/cristianoliveira/decli/internal/schema"
)

// Handler runs a command with its validated flags. The returned value is
// printed by the runner.
type Handler func(ctx context.Context, flags *schema.Values) (any, error)

// Command is one declared command.
type Command struct {
	// Name is the dotted path, e.g. "search.byName".
	Name        string
	Description string
	// Version is optional and must be a semantic version.
	Version string
	// Examples are full command lines starting with Name.
	Examples []string
	Flags    []schema.Flag
	Unions   []schema.Union
	Handler  Handler
}

// DuplicateCommandError is returned when a path is registered twice.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// UnknownCommandError is returned when no registered path matches.
type UnknownCommandError struct {
	// Path holds the tokens that failed to resolve; empty when no command
	// was given.
	Path []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Path) == 0 {
		return "no command specified"
	}
	return fmt.Sprintf("command not found: %q", strings.Join(e.Path, " "))
}

// Registry is an ordered table of commands. It is built once at startup and
// only read afterwards.
type Registry struct {
	order  []string
	byName map[string]*Command
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds a command under its dotted path.
func (r *Registry) Register(cmd Command) error {
	if err := validPath(cmd.Name); err != nil {
		return err
	}
	if _, exists := r.byName[cmd.Name]; exists {
		return &DuplicateCommandError{Name: cmd.Name}
	}
	if cmd.Handler == nil {
		return fmt.Errorf("registry: command %q has no handler", cmd.Name)
	}
	if err := schema.CheckFlags(cmd.Flags, cmd.Unions); err != nil {
		return fmt.Errorf("registry: command %q: %w", cmd.Name, err)
	}
	if cmd.Version != "" {
		if _, err := semver.StrictNewVersion(cmd.Version); err != nil {
			return fmt.Errorf("registry: command %q: invalid version %q: %w", cmd.Name, cmd.Version, err)
		}
	}
	for _, ex := range cmd.Examples {
		if err := checkExample(cmd.Name, ex); err != nil {
			return fmt.Errorf("registry: command %q: %w", cmd.Name, err)
		}
	}

	c := cmd
	r.order = append(r.order, cmd.Name)
	r.byName[cmd.Name] = &c
	return nil
}

// MustRegister registers every command and panics on the first error. It is
// meant for static command tables.
func (r *Registry) MustRegister(cmds ...Command) *Registry {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
	return r
}

// Get returns the command registered under an exact dotted path.
func (r *Registry) Get(name string) (*Command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Resolve matches the longest registered path formed by the leading tokens
// and returns the command and the unconsumed tokens. Tokens may spell a path
// as one dotted token ("search.byName") or as separate segments
// ("search byName").
func (r *Registry) Resolve(tokens []string) (*Command, []string, error) {
	var segments []string
	var ends []int // ends[i] is the token count that produced segments[:i+1]
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			break
		}
		for _, seg := range strings.Split(tok, ".") {
			segments = append(segments, seg)
			ends = append(ends, i+1)
		}
	}

	for n := len(segments); n > 0; n-- {
		// A dotted token can only be consumed whole.
		if n < len(segments) && ends[n] == ends[n-1] {
			continue
		}
		if c, ok := r.byName[strings.Join(segments[:n], ".")]; ok {
			return c, tokens[ends[n-1]:], nil
		}
	}

	var path []string
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			break
		}
		path = append(path, tok)
	}
	return nil, tokens, &UnknownCommandError{Path: path}
}

// List returns every command in declaration order.
func (r *Registry) List() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// ListPrefix returns the commands under a namespace, e.g. "search" lists
// "search.byName" and "search.byContent", in declaration order.
func (r *Registry) ListPrefix(namespace string) []*Command {
	prefix := namespace + "."
	var out []*Command
	for _, name := range r.order {
		if strings.HasPrefix(name, prefix) {
			out = append(out, r.byName[name])
		}
	}
	return out
}

// Namespace joins path tokens into a dotted namespace, e.g. ["search"] or
// ["search.by"] become "search".
func Namespace(tokens []string) string {
	return strings.Join(tokens, ".")
}

func validPath(name string) error {
	if name == "" {
		return fmt.Errorf("registry: empty command name")
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" || strings.HasPrefix(seg, "-") || strings.ContainsAny(seg, " \t\n") {
			return fmt.Errorf("registry: invalid command name %q", name)
		}
	}
	return nil
}

// checkExample verifies an example splits into a command line that starts
// with the command's path.
func checkExample(name, example string) error {
	words, err := shlex.Split(example)
	if err != nil {
		return fmt.Errorf("example %q: %w", example, err)
	}
	path, _ := splitPath(words)
	if strings.Join(path, ".") != name && (len(path) == 0 || path[0] != name) {
		return fmt.Errorf("example %q does not start with %q", example, name)
	}
	return nil
}

func splitPath(words []string) ([]string, []string) {
	for i, w := range words {
		if strings.HasPrefix(w, "-") {
			return words[:i], words[i:]
		}
	}
	return words, nil
}
