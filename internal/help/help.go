// Package help renders command lists and per-command help from declarations.
//
// Output is plain text and depends only on the declarations, so it can be
// compared verbatim in tests.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/decli/internal/registry"
	"github.com/cristianoliveira/decli/internal/schema"
)

// gutter is the space between the name column and the description column.
const gutter = 2

// Row is one aligned line of a section: a name and its description.
type Row struct {
	Name        string
	Description string
}

var helpRow = Row{Name: "-h, --help", Description: "Show help"}

// GlobalFlags are the process-wide flags listed under the command list.
var GlobalFlags = []Row{
	helpRow,
	{Name: "--verbose-errors", Description: "Throw raw errors (by default errors are summarised)"},
}

// List renders the command list followed by the process-wide flags. Both
// sections share one column width.
func List(cmds []*registry.Command) string {
	rows := make([]Row, 0, len(cmds))
	for _, c := range cmds {
		rows = append(rows, Row{Name: c.Name, Description: c.Description})
	}
	width := columnWidth(rows, GlobalFlags)

	var b strings.Builder
	b.WriteString("Commands:\n")
	writeRows(&b, rows, width)
	b.WriteString("\nFlags:\n")
	writeRows(&b, GlobalFlags, width)
	return b.String()
}

// Detail renders the help of one command.
func Detail(c *registry.Command) string {
	var b strings.Builder

	b.WriteString(c.Name)
	if c.Version != "" {
		b.WriteString(" v" + c.Version)
	}
	b.WriteString("\n\n")

	if c.Description != "" {
		b.WriteString(c.Description + "\n\n")
	}

	b.WriteString("Usage:\n")
	b.WriteString("  " + c.Name + " [flags...]\n\n")

	rows := FlagRows(c.Flags)
	b.WriteString("Flags:\n")
	writeRows(&b, rows, columnWidth(rows))

	if len(c.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for _, ex := range c.Examples {
			b.WriteString("  " + ex + "\n")
		}
	}
	return b.String()
}

// FlagRows returns the help row first, then one row per flag in declaration
// order.
func FlagRows(flags []schema.Flag) []Row {
	rows := make([]Row, 0, len(flags)+1)
	rows = append(rows, helpRow)
	for _, f := range flags {
		rows = append(rows, Row{Name: signature(f), Description: describe(f)})
	}
	return rows
}

// signature renders "-a, --long-name <type>".
func signature(f schema.Flag) string {
	sig := f.CLIName()
	if f.Alias != "" {
		sig = "-" + f.Alias + ", " + sig
	}
	if hint := f.Hint(); hint != "" {
		sig += " " + hint
	}
	return sig
}

// describe joins the flag description with its metadata suffixes.
func describe(f schema.Flag) string {
	var parts []string
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	if f.Type == schema.TypeEnum {
		parts = append(parts, "Enum: "+strings.Join(f.Enum, ","))
	}
	for _, c := range f.Checks {
		if d := c.Describe(); d != "" {
			parts = append(parts, d)
		}
	}
	if f.Default != nil {
		parts = append(parts, "Default: "+schema.FormatDefault(f.Default))
	}
	return strings.Join(parts, "; ")
}

func columnWidth(sections ...[]Row) int {
	longest := 0
	for _, rows := range sections {
		for _, r := range rows {
			if w := lipgloss.Width(r.Name); w > longest {
				longest = w
			}
		}
	}
	return longest + gutter
}

func writeRows(b *strings.Builder, rows []Row, width int) {
	for _, r := range rows {
		line := "  " + r.Name
		if r.Description != "" {
			line += strings.Repeat(" ", width-lipgloss.Width(r.Name)) + r.Description
		}
		b.WriteString(line + "\n")
	}
}
