// Package search provides interchangeable matching strategies for filtering
// migrations. Strategies (exact, substring, regex, token-based) share the
// Provider interface so commands can pick one by name.
package search

import (
	"fmt"
	"strings"
)

// Document is anything with named text fields to match against.
type Document interface {
	// Field returns the value of a field, or "" when it is unknown.
	Field(name string) string
}

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the document matches the search query.
	Match(doc Document, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Validator is implemented by providers whose queries can be malformed.
type Validator interface {
	Validate(query string) error
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{"name", "content"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
func WithFields(fields ...string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Modes lists the provider names accepted by New.
var Modes = []string{"exact", "substring", "regex", "token"}

// New returns the provider registered under mode.
func New(mode string, opts ...Option) (Provider, error) {
	switch strings.ToLower(mode) {
	case "exact":
		return NewExactProvider(opts...), nil
	case "", "substring":
		return NewSubstringProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	case "token":
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("search: unknown mode %q", mode)
	}
}

// fieldValues returns the non-empty configured fields of doc.
func fieldValues(doc Document, fields []string) []string {
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := doc.Field(f); v != "" {
			values = append(values, v)
		}
	}
	return values
}
