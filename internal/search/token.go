package search

import "strings"

// StatusField names the field that status tokens filter on.
const StatusField = "status"

// statusTokens are query words that filter on the status field instead of
// matching text.
var statusTokens = map[string]bool{"pending": true, "executed": true}

// TokenProvider splits the query on whitespace. Every text token must match
// at least one configured field (AND logic). The words "pending" and
// "executed" restrict results to that status.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match returns true if all text tokens match and the status filter, if
// any, holds. Naming both statuses cancels the filter.
func (p *TokenProvider) Match(doc Document, query string) bool {
	var texts []string
	statuses := map[string]bool{}
	for _, tok := range strings.Fields(query) {
		lower := strings.ToLower(tok)
		if statusTokens[lower] {
			statuses[lower] = true
			continue
		}
		if p.opts.CaseInsensitive {
			tok = lower
		}
		texts = append(texts, tok)
	}

	if len(statuses) == 1 && !statuses[strings.ToLower(doc.Field(StatusField))] {
		return false
	}

	values := fieldValues(doc, p.opts.Fields)
	for _, tok := range texts {
		if !containsAny(values, tok, p.opts.CaseInsensitive) {
			return false
		}
	}
	return true
}

func containsAny(values []string, tok string, fold bool) bool {
	for _, v := range values {
		if fold {
			v = strings.ToLower(v)
		}
		if strings.Contains(v, tok) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
