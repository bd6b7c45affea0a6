package main

import (
	"context"

	"github.com/cristianoliveira/decli/internal/migrations"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
	"github.com/cristianoliveira/decli/internal/search"
)

type searchClient interface {
	SearchByName(ctx context.Context, name string) ([]migrations.Migration, error)
	SearchByContent(ctx context.Context, term string, opts migrations.SearchOptions) ([]migrations.Migration, error)
}

// NewSearchByNameCmd creates the search.byName command.
func NewSearchByNameCmd(client searchClient) registry.Command {
	if client == nil {
		panic("NewSearchByNameCmd: client dependency cannot be nil")
	}

	return registry.Command{
		Name:        "search.byName",
		Description: "Look for migrations by name",
		Examples:    []string{"search.byName --name two", "search byName --name five"},
		Flags: []schema.Flag{
			{Name: "name", Type: schema.TypeString, Description: "Exact migration name", Required: true},
		},
		Handler: func(ctx context.Context, f *schema.Values) (any, error) {
			return client.SearchByName(ctx, f.String("name"))
		},
	}
}

// NewSearchByContentCmd creates the search.byContent command.
func NewSearchByContentCmd(client searchClient) registry.Command {
	if client == nil {
		panic("NewSearchByContentCmd: client dependency cannot be nil")
	}

	return registry.Command{
		Name:        "search.byContent",
		Description: "Look for migrations by their content",
		Examples: []string{
			"search.byContent -q three",
			`search.byContent --search-term "create table"`,
			`search byContent -q "^create table t" --mode regex`,
			"search.byContent -q TABLE --ignore-case",
		},
		Flags: []schema.Flag{
			{Name: "searchTerm", Alias: "q", Type: schema.TypeString, Description: "Text the migration content contains", Required: true},
			{Name: "mode", Type: schema.TypeEnum, Enum: search.Modes, Default: "substring", Description: "How the search term is matched"},
			{Name: "ignoreCase", Alias: "i", Type: schema.TypeBoolean, Description: "Match regardless of letter case"},
		},
		Handler: func(ctx context.Context, f *schema.Values) (any, error) {
			return client.SearchByContent(ctx, f.String("searchTerm"), migrations.SearchOptions{
				Mode:       f.String("mode"),
				IgnoreCase: f.Bool("ignoreCase"),
			})
		},
	}
}
