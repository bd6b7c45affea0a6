package main

import (
	"context"

	"github.com/cristianoliveira/decli/internal/migrations"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

type createClient interface {
	Create(ctx context.Context, name, content string) (migrations.Migration, error)
}

// NewCreateCmd creates the create command with explicit dependencies.
func NewCreateCmd(client createClient) registry.Command {
	if client == nil {
		panic("NewCreateCmd: client dependency cannot be nil")
	}

	return registry.Command{
		Name:        "create",
		Description: "Create a pending migration",
		Examples:    []string{`create --name six --content "create table six(id int, name text)"`},
		Flags: []schema.Flag{
			{Name: "name", Type: schema.TypeString, Description: "Unique migration name", Required: true},
			{Name: "content", Type: schema.TypeString, Description: "SQL to run when the migration is applied", Required: true},
		},
		Handler: func(ctx context.Context, f *schema.Values) (any, error) {
			return client.Create(ctx, f.String("name"), f.String("content"))
		},
	}
}
