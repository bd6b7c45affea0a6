package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/decli/internal/schema"
)

func noop(context.Context, *schema.Values) (any, error) { return nil, nil }

func names(cmds []*Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Name)
	}
	return out
}

func newTestRegistry() *Registry {
	return New().MustRegister(
		Command{Name: "add", Handler: noop},
		Command{Name: "search.byName", Handler: noop},
		Command{Name: "search.byContent", Handler: noop},
		Command{Name: "search", Handler: noop},
		Command{Name: "divide", Version: "1.0.0", Examples: []string{"divide --left 8 --right 4"}, Handler: noop},
	)
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry()

	err := r.Register(Command{Name: "add", Handler: noop})

	var dup *DuplicateCommandError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "add", dup.Name)
	assert.Equal(t, `command "add" is already registered`, err.Error())
}

func TestRegisterRejectsInvalidDeclarations(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"empty name", Command{Handler: noop}, "empty command name"},
		{"empty segment", Command{Name: "search..x", Handler: noop}, "invalid command name"},
		{"no handler", Command{Name: "x"}, "has no handler"},
		{"bad version", Command{Name: "x", Version: "v1", Handler: noop}, `invalid version "v1"`},
		{"bad schema", Command{Name: "x", Flags: []schema.Flag{{Name: "a"}}, Handler: noop}, "unknown type"},
		{"foreign example", Command{Name: "x", Examples: []string{"y --a 1"}, Handler: noop}, `does not start with "x"`},
		{"unbalanced example", Command{Name: "x", Examples: []string{`x --a "1`}, Handler: noop}, "example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Register(tt.cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveExactAndLongest(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		tokens []string
		want   string
		tail   []string
	}{
		{[]string{"add", "--left", "1"}, "add", []string{"--left", "1"}},
		{[]string{"search.byName", "--name", "two"}, "search.byName", []string{"--name", "two"}},
		{[]string{"search", "byName", "--name", "two"}, "search.byName", []string{"--name", "two"}},
		{[]string{"search", "--x"}, "search", []string{"--x"}},
		{[]string{"search", "other"}, "search", []string{"other"}},
		{[]string{"add", "extra"}, "add", []string{"extra"}},
	}
	for _, tt := range tests {
		c, tail, err := r.Resolve(tt.tokens)
		require.NoError(t, err, "%v", tt.tokens)
		assert.Equal(t, tt.want, c.Name)
		assert.Equal(t, tt.tail, tail)
	}
}

func TestResolveDottedTokenIsConsumedWhole(t *testing.T) {
	r := New().MustRegister(Command{Name: "search", Handler: noop})

	_, _, err := r.Resolve([]string{"search.byName"})

	var unknown *UnknownCommandError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"search.byName"}, unknown.Path)
}

func TestResolveUnknown(t *testing.T) {
	r := newTestRegistry()

	_, _, err := r.Resolve([]string{"nope", "--left", "1"})
	var unknown *UnknownCommandError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"nope"}, unknown.Path)
	assert.Equal(t, `command not found: "nope"`, err.Error())

	_, _, err = r.Resolve(nil)
	require.True(t, errors.As(err, &unknown))
	assert.Empty(t, unknown.Path)
	assert.Equal(t, "no command specified", err.Error())
}

func TestListKeepsDeclarationOrder(t *testing.T) {
	r := newTestRegistry()

	assert.Equal(t, []string{"add", "search.byName", "search.byContent", "search", "divide"}, names(r.List()))
	assert.Equal(t, []string{"search.byName", "search.byContent"}, names(r.ListPrefix("search")))
	assert.Empty(t, r.ListPrefix("add"))
}

func TestGet(t *testing.T) {
	r := newTestRegistry()

	c, ok := r.Get("divide")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", c.Version)

	_, ok = r.Get("search.by")
	assert.False(t, ok)
}
