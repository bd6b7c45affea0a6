package main

import (
	"context"

	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
	"github.com/cristianoliveira/decli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() registry.Command {
	return registry.Command{
		Name:        "version",
		Description: "Show version information",
		Examples:    []string{"version", "version --build"},
		Flags: []schema.Flag{
			{Name: "build", Type: schema.TypeBoolean, Description: "Include commit and Go version"},
		},
		Handler: func(_ context.Context, f *schema.Values) (any, error) {
			if f.Bool("build") {
				return version.Get(), nil
			}
			return version.String(), nil
		},
	}
}
