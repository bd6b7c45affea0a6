package logging

import (
	"regexp"
	"strings"
	"unicode"
)

const redacted = "[REDACTED]"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// redactor hides values whose key names a secret.
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "auth", "credential"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact returns a copy of the flattened key/value pairs with sensitive
// values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		if key, ok := result[i].(string); ok && r.isSensitive(key) {
			result[i+1] = redacted
		}
	}
	return result
}

// isSensitive reports whether any segment of key is a sensitive word.
// Segments are split on non-alphanumerics, and camelCase keys are also
// split at case boundaries, so "api_token" and "apiToken" both match.
func (r *redactor) isSensitive(key string) bool {
	for _, form := range []string{strings.ToLower(key), splitCamel(key)} {
		for _, part := range nonAlphanumeric.Split(form, -1) {
			if r.sensitiveWords[part] {
				return true
			}
		}
	}
	return false
}

// splitCamel lower-cases key, inserting "_" where a lower-case letter or
// digit is followed by an upper-case one.
func splitCamel(key string) string {
	var b strings.Builder
	var prev rune
	for _, c := range key {
		upper := unicode.IsUpper(c)
		if upper && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(c))
		prev = c
	}
	return b.String()
}
