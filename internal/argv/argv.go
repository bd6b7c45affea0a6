// Package argv splits a command line into command path tokens and flag
// values.
//
// Tokenizing happens in two steps because pairing a flag with its value
// depends on the flag's type: Split takes the leading path tokens before the
// command is known, Parse reads the remaining tokens against the resolved
// command's flags.
package argv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/decli/internal/schema"
)

const (
	helpLong      = "--help"
	helpShort     = "-h"
	verboseErrors = "--verbose-errors"
	endOfFlags    = "--"
)

// Parsed is a tokenized command line.
type Parsed struct {
	Path []string
	Raw  *schema.RawFlags
}

// Split returns the leading non-flag tokens and everything after them.
func Split(args []string) (path, rest []string) {
	for i, tok := range args {
		if strings.HasPrefix(tok, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// HasHelp reports whether -h or --help appears before any "--" terminator.
func HasHelp(args []string) bool {
	for _, tok := range args {
		if tok == endOfFlags {
			return false
		}
		if tok == helpLong || tok == helpShort {
			return true
		}
	}
	return false
}

// StripVerbose removes every --verbose-errors token and reports whether one
// was present.
func StripVerbose(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for i, tok := range args {
		if tok == endOfFlags {
			out = append(out, args[i:]...)
			break
		}
		if tok == verboseErrors {
			found = true
			continue
		}
		out = append(out, tok)
	}
	return out, found
}

// Parse pairs flag tokens with their values using the command's flags.
//
// Long flags may be written kebab-case or camelCase, with the value as the
// next token or after "=". Boolean flags take no value token. A value-taking
// flag followed by another flag (or nothing) is recorded as bare and fails
// type coercion. When a flag repeats, the last occurrence wins.
func Parse(args []string, flags []schema.Flag) (*schema.RawFlags, []schema.Issue) {
	raw := schema.NewRawFlags()
	var issues []schema.Issue

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == endOfFlags {
			for _, rest := range args[i+1:] {
				issues = append(issues, unexpected(rest))
			}
			break
		}
		if !looksLikeFlag(tok) {
			issues = append(issues, unexpected(tok))
			continue
		}

		name, value, hasValue := strings.Cut(tok, "=")
		if name == helpLong || name == helpShort {
			continue
		}

		f, ok := schema.Lookup(flags, name)
		if !ok {
			issues = append(issues, schema.Issue{Path: name, Message: "Unrecognized flag"})
			if !hasValue && i+1 < len(args) && !looksLikeFlag(args[i+1]) {
				i++
			}
			continue
		}

		switch {
		case hasValue:
			raw.Set(f.Name, schema.RawValue{Text: value})
		case !f.TakesValue():
			raw.Set(f.Name, schema.RawValue{Bare: true})
		case i+1 < len(args) && !looksLikeFlag(args[i+1]):
			raw.Set(f.Name, schema.RawValue{Text: args[i+1]})
			i++
		default:
			raw.Set(f.Name, schema.RawValue{Bare: true})
		}
	}
	return raw, issues
}

func unexpected(tok string) schema.Issue {
	return schema.Issue{Message: fmt.Sprintf("Unexpected argument '%s'", tok)}
}

// looksLikeFlag reports whether tok starts a flag. Negative numbers such as
// "-5" are values, not flags.
func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}
