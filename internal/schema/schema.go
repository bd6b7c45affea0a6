// Package schema describes command flags and validates raw argument values
// against them.
//
// Flags are declared with camelCase names and appear kebab-cased on the
// command line: a flag named "searchTerm" is supplied as --search-term.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Type is the declared value type of a flag.
type Type string

const (
	// TypeString accepts any token as-is.
	TypeString Type = "string"
	// TypeNumber parses the token as a float64.
	TypeNumber Type = "number"
	// TypeEnum accepts one of Flag.Enum.
	TypeEnum Type = "enum"
	// TypeBoolean needs no value token.
	TypeBoolean Type = "boolean"
)

// Reserved flag names handled by the runner itself.
const (
	HelpFlag          = "help"
	HelpAlias         = "h"
	VerboseErrorsFlag = "verboseErrors"
)

// Flag declares a single command flag.
type Flag struct {
	// Name is the internal camelCase name, e.g. "searchTerm".
	Name string
	// Alias is an optional single character, supplied as -a.
	Alias       string
	Type        Type
	Description string
	// Enum holds the accepted values of a TypeEnum flag.
	Enum []string
	// Default is used when the flag is not supplied. Numbers may be given
	// as int or float64.
	Default  any
	Required bool
	// Checks run in order after the value has been coerced.
	Checks []Check
}

// CLIName returns the flag as typed on the command line, e.g. "--search-term".
func (f Flag) CLIName() string {
	return "--" + KebabCase(f.Name)
}

// TakesValue reports whether the flag consumes a value token.
func (f Flag) TakesValue() bool {
	return f.Type != TypeBoolean
}

// Hint returns the bracketed type hint shown in help, or "" for booleans.
func (f Flag) Hint() string {
	switch f.Type {
	case TypeBoolean:
		return ""
	case TypeNumber:
		return "<number>"
	default:
		return "<string>"
	}
}

// Union is a set of flag names of which at most one may be supplied.
type Union []string

// Lookup finds a flag by its internal name, its kebab-case name or its alias.
// Leading dashes are ignored.
func Lookup(flags []Flag, name string) (Flag, bool) {
	trimmed := strings.TrimLeft(name, "-")
	if len(trimmed) == 1 && !strings.HasPrefix(name, "--") {
		for _, f := range flags {
			if f.Alias == trimmed {
				return f, true
			}
		}
		return Flag{}, false
	}
	camel := CamelCase(trimmed)
	for _, f := range flags {
		if f.Name == camel {
			return f, true
		}
	}
	return Flag{}, false
}

// CheckFlags verifies the schema invariants of one command: valid and unique
// names and aliases, known types, well-formed enums and defaults, checks that
// fit the flag type, and unions that only name declared flags.
func CheckFlags(flags []Flag, unions []Union) error {
	names := make(map[string]bool, len(flags))
	aliases := make(map[string]string, len(flags))

	for _, f := range flags {
		if !validName(f.Name) {
			return fmt.Errorf("schema: invalid flag name %q", f.Name)
		}
		if f.Name == HelpFlag || f.Name == VerboseErrorsFlag {
			return fmt.Errorf("schema: flag name %q is reserved", f.Name)
		}
		if names[f.Name] {
			return fmt.Errorf("schema: duplicate flag %q", f.Name)
		}
		names[f.Name] = true

		if f.Alias != "" {
			if len(f.Alias) != 1 || !isASCIILetterOrDigit(rune(f.Alias[0])) {
				return fmt.Errorf("schema: flag %q: alias %q must be a single letter or digit", f.Name, f.Alias)
			}
			if f.Alias == HelpAlias {
				return fmt.Errorf("schema: flag %q: alias %q is reserved", f.Name, f.Alias)
			}
			if other, ok := aliases[f.Alias]; ok {
				return fmt.Errorf("schema: flags %q and %q share alias %q", other, f.Name, f.Alias)
			}
			aliases[f.Alias] = f.Name
		}

		switch f.Type {
		case TypeString, TypeNumber, TypeBoolean:
			if len(f.Enum) > 0 {
				return fmt.Errorf("schema: flag %q: enum values require type %q", f.Name, TypeEnum)
			}
		case TypeEnum:
			if len(f.Enum) == 0 {
				return fmt.Errorf("schema: flag %q: enum flag without values", f.Name)
			}
		default:
			return fmt.Errorf("schema: flag %q: unknown type %q", f.Name, f.Type)
		}

		if f.Default != nil {
			if _, err := normalizeDefault(f); err != nil {
				return fmt.Errorf("schema: flag %q: %w", f.Name, err)
			}
		}

		for _, c := range f.Checks {
			if c.numeric() && f.Type != TypeNumber {
				return fmt.Errorf("schema: flag %q: %s check needs a number flag", f.Name, c.kind)
			}
		}
	}

	for _, u := range unions {
		if len(u) < 2 {
			return fmt.Errorf("schema: union %v needs at least two flags", []string(u))
		}
		for _, name := range u {
			if !names[name] {
				return fmt.Errorf("schema: union %v names undeclared flag %q", []string(u), name)
			}
		}
	}
	return nil
}

// normalizeDefault converts a declared default into the value type the
// validator produces for the flag.
func normalizeDefault(f Flag) (any, error) {
	switch f.Type {
	case TypeNumber:
		switch d := f.Default.(type) {
		case float64:
			return d, nil
		case int:
			return float64(d), nil
		}
	case TypeString:
		if d, ok := f.Default.(string); ok {
			return d, nil
		}
	case TypeEnum:
		if d, ok := f.Default.(string); ok {
			for _, e := range f.Enum {
				if e == d {
					return d, nil
				}
			}
			return nil, fmt.Errorf("default %q is not one of %s", d, strings.Join(f.Enum, ","))
		}
	case TypeBoolean:
		if d, ok := f.Default.(bool); ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("default %v (%T) does not match type %q", f.Default, f.Default, f.Type)
}

// FormatDefault renders a default value the way it would be typed on the
// command line.
func FormatDefault(v any) string {
	switch d := v.(type) {
	case float64:
		return FormatNumber(d)
	case int:
		return strconv.Itoa(d)
	case bool:
		return strconv.FormatBool(d)
	case string:
		return d
	default:
		return fmt.Sprint(v)
	}
}

// FormatNumber renders a float without exponent or trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// KebabCase converts "searchTerm" to "search-term".
func KebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelCase converts "search-term" to "searchTerm". Names without dashes are
// returned unchanged.
func CamelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validName(name string) bool {
	if name == "" || !unicode.IsLower(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if !isASCIILetterOrDigit(r) {
			return false
		}
	}
	return true
}

func isASCIILetterOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
