package main

import (
	"context"

	"github.com/cristianoliveira/decli/internal/migrations"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

type applyClient interface {
	Apply(ctx context.Context, opts migrations.ApplyOptions) ([]string, error)
}

// NewApplyCmd creates the apply command with explicit dependencies.
func NewApplyCmd(client applyClient) registry.Command {
	if client == nil {
		panic("NewApplyCmd: client dependency cannot be nil")
	}

	return registry.Command{
		Name:        "apply",
		Description: "Apply pending migrations",
		Examples: []string{
			"apply",
			"apply --to four",
			"apply --step 1",
		},
		Flags: []schema.Flag{
			{Name: "to", Type: schema.TypeString, Description: "Apply pending migrations up to and including this one"},
			{Name: "step", Type: schema.TypeNumber, Description: "Number of pending migrations to apply", Checks: []schema.Check{schema.Int(), schema.ExclusiveMin(0)}},
		},
		Unions: []schema.Union{{"step", "to"}},
		Handler: func(ctx context.Context, f *schema.Values) (any, error) {
			return client.Apply(ctx, migrations.ApplyOptions{
				To:   f.String("to"),
				Step: int(f.Number("step")),
			})
		},
	}
}
