// Command calculator does arithmetic on two numbers.
package main

import (
	"os"

	"github.com/cristianoliveira/decli/internal/app"
)

func main() {
	os.Exit(app.Main("calculator", Commands()))
}
