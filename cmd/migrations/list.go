package main

import (
	"context"

	"github.com/cristianoliveira/decli/internal/migrations"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

type listClient interface {
	List(ctx context.Context, status migrations.Status) ([]migrations.Migration, error)
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) registry.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	return registry.Command{
		Name:        "list",
		Description: "List all migrations",
		Examples:    []string{"list", "list --status pending"},
		Flags: []schema.Flag{
			{Name: "status", Type: schema.TypeEnum, Enum: migrations.Statuses, Description: "Only show migrations with this status"},
		},
		Handler: func(ctx context.Context, f *schema.Values) (any, error) {
			return client.List(ctx, migrations.Status(f.String("status")))
		},
	}
}
