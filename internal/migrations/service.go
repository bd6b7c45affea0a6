package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/decli/internal/search"
)

// Service implements the migration commands over a Repository.
type Service struct {
	repo Repository
}

// NewService returns a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ApplyOptions selects which pending migrations Apply executes. At most one
// of To and Step is set; with neither every pending migration runs.
type ApplyOptions struct {
	// To executes pending migrations up to and including this one.
	To string
	// Step executes this many pending migrations.
	Step int
}

// Apply marks pending migrations as executed and returns a "name: status"
// line per migration.
func (s *Service) Apply(ctx context.Context, opts ApplyOptions) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	limit := len(all)
	if opts.To != "" {
		idx := indexOf(all, opts.To)
		if idx < 0 {
			return nil, fmt.Errorf("apply: %w: %q", ErrNotFound, opts.To)
		}
		limit = idx + 1
	}

	var names []string
	for _, m := range all[:limit] {
		if opts.Step > 0 && len(names) == opts.Step {
			break
		}
		if m.Status == StatusPending {
			names = append(names, m.Name)
		}
	}
	if len(names) > 0 {
		if err := s.repo.SetStatus(ctx, names, StatusExecuted); err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}
	}

	all, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	lines := make([]string, 0, len(all))
	for _, m := range all {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Name, m.Status))
	}
	return lines, nil
}

// Create adds a pending migration.
func (s *Service) Create(ctx context.Context, name, content string) (Migration, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(content) == "" {
		return Migration{}, fmt.Errorf("create: %w: name and content are required", ErrInvalid)
	}
	m := Migration{Name: name, Content: content, Status: StatusPending}
	if err := s.repo.Create(ctx, m); err != nil {
		return Migration{}, fmt.Errorf("create %q: %w", name, err)
	}
	return m, nil
}

// List returns the migrations with the given status, or all of them when
// status is empty.
func (s *Service) List(ctx context.Context, status Status) ([]Migration, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return filter(all, func(m Migration) bool { return status == "" || m.Status == status }), nil
}

// SearchOptions tunes SearchByContent.
type SearchOptions struct {
	// Mode names a search provider; see search.Modes. Defaults to substring.
	Mode       string
	IgnoreCase bool
}

// SearchByName returns the migrations named exactly name.
func (s *Service) SearchByName(ctx context.Context, name string) ([]Migration, error) {
	return s.search(ctx, search.NewExactProvider(search.WithFields("name")), name)
}

// SearchByContent returns the migrations whose content matches term.
func (s *Service) SearchByContent(ctx context.Context, term string, opts SearchOptions) ([]Migration, error) {
	p, err := search.New(opts.Mode, search.WithFields("content"), search.WithCaseInsensitive(opts.IgnoreCase))
	if err != nil {
		return nil, err
	}
	return s.search(ctx, p, term)
}

func (s *Service) search(ctx context.Context, p search.Provider, query string) ([]Migration, error) {
	if v, ok := p.(search.Validator); ok {
		if err := v.Validate(query); err != nil {
			return nil, err
		}
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return filter(all, func(m Migration) bool { return p.Match(m, query) }), nil
}

func indexOf(all []Migration, name string) int {
	for i, m := range all {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// filter never returns nil so empty results print as [].
func filter(all []Migration, keep func(Migration) bool) []Migration {
	out := []Migration{}
	for _, m := range all {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
