package schema

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RawValue is a flag occurrence as it appeared in argv.
type RawValue struct {
	// Text is the value token; empty for a bare boolean flag.
	Text string
	// Bare is set when the flag was given without a value token.
	Bare bool
}

// String returns the token, or "true" for a bare flag.
func (r RawValue) String() string {
	if r.Bare {
		return "true"
	}
	return r.Text
}

// RawFlags maps internal flag names to their last occurrence, in the order
// the flags were first seen.
type RawFlags = orderedmap.OrderedMap[string, RawValue]

// NewRawFlags returns an empty RawFlags.
func NewRawFlags() *RawFlags {
	return orderedmap.New[string, RawValue]()
}

// Issue is one validation failure. Path is the CLI name of the flag, e.g.
// "--right", or empty when the issue is not tied to a flag.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s at %q", i.Message, i.Path)
}

// Outcome is the result of Validate: either Values or a non-empty Issues.
type Outcome struct {
	Values *Values
	Issues []Issue
	// Conflict is set when two or more members of a union were supplied. The
	// outcome then holds a single issue and no per-flag validation ran.
	Conflict bool
}

// OK reports whether validation succeeded.
func (o Outcome) OK() bool {
	return len(o.Issues) == 0
}

// Validate coerces and validates raw flags against a command's schema.
//
// Union conflicts are checked first and short-circuit. Otherwise coercion,
// per-flag checks and the required check all run and every issue is
// collected, in flag declaration order.
func Validate(flags []Flag, unions []Union, raw *RawFlags) Outcome {
	if raw == nil {
		raw = NewRawFlags()
	}

	if issue, ok := checkUnions(flags, unions, raw); !ok {
		return Outcome{Issues: []Issue{issue}, Conflict: true}
	}

	var issues []Issue
	typed := make(map[string]any, len(flags))
	failed := make(map[string]bool)

	for _, f := range flags {
		rv, ok := raw.Get(f.Name)
		if !ok {
			continue
		}
		v, msg := coerce(f, rv)
		if msg != "" {
			issues = append(issues, Issue{Path: f.CLIName(), Message: msg})
			failed[f.Name] = true
			continue
		}
		if msgs := runChecks(f, v); len(msgs) > 0 {
			for _, m := range msgs {
				issues = append(issues, Issue{Path: f.CLIName(), Message: m})
			}
			failed[f.Name] = true
			continue
		}
		typed[f.Name] = v
	}

	for _, f := range flags {
		if _, ok := typed[f.Name]; ok || failed[f.Name] {
			continue
		}
		if f.Default != nil {
			if d, err := normalizeDefault(f); err == nil {
				typed[f.Name] = d
				continue
			}
		}
		if f.Required && !waivedByUnion(flags, f.Name, unions, raw) {
			issues = append(issues, Issue{Path: f.CLIName(), Message: "Required"})
		}
	}

	if len(issues) > 0 {
		return Outcome{Issues: issues}
	}

	values := NewValues()
	for _, f := range flags {
		if v, ok := typed[f.Name]; ok {
			values.Set(f.Name, v)
		}
	}
	return Outcome{Values: values}
}

// checkUnions returns a conflict issue for the first union with more than one
// supplied member.
func checkUnions(flags []Flag, unions []Union, raw *RawFlags) (Issue, bool) {
	for _, u := range unions {
		var names []string
		for _, name := range u {
			if f, ok := supplied(flags, name, raw); ok {
				names = append(names, f.CLIName())
			}
		}
		if len(names) > 1 {
			return Issue{Message: ConflictMessage(names)}, false
		}
	}
	return Issue{}, true
}

// supplied returns the flag declared exactly as name when raw carries it. A
// token equal to the flag's default does not count.
func supplied(flags []Flag, name string, raw *RawFlags) (Flag, bool) {
	rv, ok := raw.Get(name)
	if !ok {
		return Flag{}, false
	}
	for _, f := range flags {
		if f.Name != name {
			continue
		}
		if f.Default != nil && rv.String() == FormatDefault(f.Default) {
			return Flag{}, false
		}
		return f, true
	}
	return Flag{}, false
}

// ConflictMessage names incompatible flags, e.g.
// "--step and --to are incompatible and cannot be used together".
func ConflictMessage(names []string) string {
	var list string
	switch len(names) {
	case 0:
		return ""
	case 1:
		list = names[0]
	default:
		list = strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
	return list + " are incompatible and cannot be used together"
}

// waivedByUnion reports whether another member of a union containing name
// was supplied, which makes name optional.
func waivedByUnion(flags []Flag, name string, unions []Union, raw *RawFlags) bool {
	for _, u := range unions {
		if !slices.Contains(u, name) {
			continue
		}
		for _, m := range u {
			if m == name {
				continue
			}
			if _, ok := supplied(flags, m, raw); ok {
				return true
			}
		}
	}
	return false
}

// coerce converts a raw token to the flag's type. It returns an issue
// message when the token cannot be converted.
func coerce(f Flag, rv RawValue) (any, string) {
	switch f.Type {
	case TypeBoolean:
		if rv.Bare {
			return true, ""
		}
		switch strings.ToLower(rv.Text) {
		case "true", "1", "yes", "on":
			return true, ""
		case "false", "0", "no", "off":
			return false, ""
		}
		return nil, "Expected boolean, received string"
	case TypeNumber:
		if rv.Bare {
			return nil, "Expected number, received boolean"
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(rv.Text), 64)
		if err != nil {
			n = math.NaN()
		}
		if math.IsNaN(n) {
			return nil, "Expected number, received nan"
		}
		return n, ""
	case TypeEnum:
		if rv.Bare {
			return nil, "Expected string, received boolean"
		}
		for _, e := range f.Enum {
			if e == rv.Text {
				return rv.Text, ""
			}
		}
		quoted := make([]string, len(f.Enum))
		for i, e := range f.Enum {
			quoted[i] = "'" + e + "'"
		}
		return nil, fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), rv.Text)
	default:
		if rv.Bare {
			return nil, "Expected string, received boolean"
		}
		return rv.Text, ""
	}
}
