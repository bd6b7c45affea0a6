package search

import "strings"

// ExactProvider matches if any configured field equals the query.
type ExactProvider struct {
	opts Options
}

// NewExactProvider creates a new exact-match search provider.
func NewExactProvider(opts ...Option) Provider {
	return &ExactProvider{opts: applyOptions(opts)}
}

// Match compares whole field values. An empty query matches nothing.
func (p *ExactProvider) Match(doc Document, query string) bool {
	for _, v := range fieldValues(doc, p.opts.Fields) {
		if v == query || (p.opts.CaseInsensitive && strings.EqualFold(v, query)) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *ExactProvider) Name() string {
	return "exact"
}
