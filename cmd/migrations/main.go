package main

import (
	"context"
	"os"

	"github.com/cristianoliveira/decli/internal/app"
	"github.com/cristianoliveira/decli/internal/migrations"
	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/storage"
)

func main() {
	os.Exit(app.MainWith("migrations", build))
}

// build opens the configured repository once configuration is loaded.
func build(context.Context) ([]registry.Command, func() error, error) {
	repo, err := storage.NewFromConfig()
	if err != nil {
		return nil, nil, err
	}
	return Commands(migrations.NewService(repo)), repo.Close, nil
}

// Commands returns the migration command table backed by svc.
func Commands(svc *migrations.Service) []registry.Command {
	return []registry.Command{
		NewApplyCmd(svc),
		NewCreateCmd(svc),
		NewListCmd(svc),
		NewSearchByNameCmd(svc),
		NewSearchByContentCmd(svc),
		NewVersionCmd(),
	}
}
