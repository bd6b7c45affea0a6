package search

import (
	"fmt"
	"regexp"
	"sync"
)

// RegexProvider matches if any configured field matches the pattern.
// Compiled patterns are cached per provider.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns false for every document when the query does not compile;
// call Validate first to report the error.
func (p *RegexProvider) Match(doc Document, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.getRegex(query)
	if err != nil {
		return false
	}
	for _, v := range fieldValues(doc, p.opts.Fields) {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// Validate reports whether query compiles.
func (p *RegexProvider) Validate(query string) error {
	if _, err := p.getRegex(query); err != nil {
		return fmt.Errorf("search: invalid pattern: %w", err)
	}
	return nil
}

func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}
