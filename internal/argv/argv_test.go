package argv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/decli/internal/schema"
)

var testFlags = []schema.Flag{
	{Name: "left", Type: schema.TypeNumber},
	{Name: "right", Alias: "r", Type: schema.TypeNumber},
	{Name: "searchTerm", Alias: "q", Type: schema.TypeString},
	{Name: "dryRun", Type: schema.TypeBoolean},
}

func rawMap(raw *schema.RawFlags) map[string]schema.RawValue {
	out := make(map[string]schema.RawValue)
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

func TestSplit(t *testing.T) {
	path, rest := Split([]string{"search", "byName", "--name", "two"})
	assert.Equal(t, []string{"search", "byName"}, path)
	assert.Equal(t, []string{"--name", "two"}, rest)

	path, rest = Split([]string{"add"})
	assert.Equal(t, []string{"add"}, path)
	assert.Empty(t, rest)

	path, rest = Split([]string{"--help"})
	assert.Empty(t, path)
	assert.Equal(t, []string{"--help"}, rest)
}

func TestHasHelp(t *testing.T) {
	assert.True(t, HasHelp([]string{"add", "--left", "1", "--help"}))
	assert.True(t, HasHelp([]string{"-h"}))
	assert.False(t, HasHelp([]string{"add", "--left", "1"}))
	assert.False(t, HasHelp([]string{"add", "--", "--help"}))
}

func TestStripVerbose(t *testing.T) {
	args, ok := StripVerbose([]string{"--verbose-errors", "divide", "--left", "1"})
	assert.True(t, ok)
	assert.Equal(t, []string{"divide", "--left", "1"}, args)

	args, ok = StripVerbose([]string{"add", "--", "--verbose-errors"})
	assert.False(t, ok)
	assert.Equal(t, []string{"add", "--", "--verbose-errors"}, args)
}

func TestParseForms(t *testing.T) {
	raw, issues := Parse([]string{"--left", "1", "-r=2", "--search-term=abc", "--dryRun"}, testFlags)

	require.Empty(t, issues)
	assert.Equal(t, map[string]schema.RawValue{
		"left":       {Text: "1"},
		"right":      {Text: "2"},
		"searchTerm": {Text: "abc"},
		"dryRun":     {Bare: true},
	}, rawMap(raw))
}

func TestParseNegativeNumberIsValue(t *testing.T) {
	raw, issues := Parse([]string{"--left", "-5", "--right", "-0.5"}, testFlags)

	require.Empty(t, issues)
	assert.Equal(t, map[string]schema.RawValue{
		"left":  {Text: "-5"},
		"right": {Text: "-0.5"},
	}, rawMap(raw))
}

func TestParseLastOccurrenceWins(t *testing.T) {
	raw, issues := Parse([]string{"--left", "1", "--right", "2", "--left", "3"}, testFlags)

	require.Empty(t, issues)
	v, _ := raw.Get("left")
	assert.Equal(t, "3", v.Text)
	assert.Equal(t, "left", raw.Oldest().Key)
}

func TestParseMissingValueIsBare(t *testing.T) {
	raw, issues := Parse([]string{"--left", "--right", "2"}, testFlags)

	require.Empty(t, issues)
	v, _ := raw.Get("left")
	assert.True(t, v.Bare)
}

func TestParseIssues(t *testing.T) {
	_, issues := Parse([]string{"--nope", "x", "stray", "-z", "--", "after"}, testFlags)

	assert.Equal(t, []schema.Issue{
		{Path: "--nope", Message: "Unrecognized flag"},
		{Message: "Unexpected argument 'stray'"},
		{Path: "-z", Message: "Unrecognized flag"},
		{Message: "Unexpected argument 'after'"},
	}, issues)
}

func TestParseSkipsHelp(t *testing.T) {
	raw, issues := Parse([]string{"--help", "-h"}, testFlags)

	assert.Empty(t, issues)
	assert.Equal(t, 0, raw.Len())
}
