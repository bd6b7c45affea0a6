package main

import (
	"context"

	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

func operands(left, right string, rightChecks ...schema.Check) []schema.Flag {
	return []schema.Flag{
		{Name: "left", Type: schema.TypeNumber, Description: left, Required: true},
		{Name: "right", Type: schema.TypeNumber, Description: right, Required: true, Checks: rightChecks},
	}
}

func binary(op func(l, r float64) float64) registry.Handler {
	return func(_ context.Context, f *schema.Values) (any, error) {
		return op(f.Number("left"), f.Number("right")), nil
	}
}

// Commands returns the calculator command table.
func Commands() []registry.Command {
	return []registry.Command{
		{
			Name:        "add",
			Description: "Add two numbers. Use this if you have apples and someone gives you more apples.",
			Flags:       operands("The first number", "The second number"),
			Handler:     binary(func(l, r float64) float64 { return l + r }),
		},
		{
			Name:        "subtract",
			Description: "Subtract two numbers. Useful if you have a number and you want to make it smaller.",
			Flags:       operands("The first number", "The second number"),
			Handler:     binary(func(l, r float64) float64 { return l - r }),
		},
		{
			Name:        "multiply",
			Description: "Multiply two numbers together. Useful if you want to count the number of tiles on your bathroom wall and are short on time.",
			Flags:       operands("The first number", "The second number"),
			Handler:     binary(func(l, r float64) float64 { return l * r }),
		},
		{
			Name:        "divide",
			Version:     "1.0.0",
			Description: "Divide two numbers. Useful if you have a number and you want to make it smaller and `subtract` isn't quite powerful enough for you.",
			Examples:    []string{"divide --left 8 --right 4"},
			Flags: operands("The numerator of the division", "The denominator of the division. Must not be zero.",
				schema.Refine(func(v any) bool { return v.(float64) != 0 }, ""),
			),
			Handler: binary(func(l, r float64) float64 { return l / r }),
		},
	}
}
