package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawOf(pairs ...string) *RawFlags {
	raw := NewRawFlags()
	for i := 0; i+1 < len(pairs); i += 2 {
		raw.Set(pairs[i], RawValue{Text: pairs[i+1]})
	}
	return raw
}

var arithmeticFlags = []Flag{
	{Name: "left", Type: TypeNumber, Required: true},
	{Name: "right", Type: TypeNumber, Required: true},
}

func TestValidateCoercesNumbers(t *testing.T) {
	out := Validate(arithmeticFlags, nil, rawOf("left", "1", "right", "2.5"))

	require.True(t, out.OK(), "issues: %v", out.Issues)
	assert.Equal(t, []string{"left", "right"}, out.Values.Keys())
	assert.Equal(t, 1.0, out.Values.Number("left"))
	assert.Equal(t, 2.5, out.Values.Number("right"))
}

func TestValidateNotANumber(t *testing.T) {
	for _, token := range []string{"notanumber", "", "NaN", "1x"} {
		out := Validate(arithmeticFlags, nil, rawOf("left", "1", "right", token))

		require.Len(t, out.Issues, 1, "token %q", token)
		assert.Equal(t, `Expected number, received nan at "--right"`, out.Issues[0].String())
		assert.False(t, out.Conflict)
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	out := Validate(arithmeticFlags, nil, rawOf("right", "abc"))

	assert.Equal(t, []Issue{
		{Path: "--right", Message: "Expected number, received nan"},
		{Path: "--left", Message: "Required"},
	}, out.Issues)
	assert.Nil(t, out.Values)
}

func TestValidateRefinement(t *testing.T) {
	flags := []Flag{
		{Name: "left", Type: TypeNumber, Required: true},
		{Name: "right", Type: TypeNumber, Required: true, Checks: []Check{
			Refine(func(v any) bool { return v.(float64) != 0 }, ""),
		}},
	}

	out := Validate(flags, nil, rawOf("left", "8", "right", "0"))
	require.Len(t, out.Issues, 1)
	assert.Equal(t, `Invalid input at "--right"`, out.Issues[0].String())

	flags[1].Checks = []Check{Refine(func(v any) bool { return v.(float64) != 0 }, "Denominator must not be zero")}
	out = Validate(flags, nil, rawOf("left", "8", "right", "0"))
	require.Len(t, out.Issues, 1)
	assert.Equal(t, "Denominator must not be zero", out.Issues[0].Message)

	out = Validate(flags, nil, rawOf("left", "8", "right", "4"))
	require.True(t, out.OK())
}

func TestValidateNumericChecks(t *testing.T) {
	flags := []Flag{{Name: "step", Type: TypeNumber, Checks: []Check{Int(), ExclusiveMin(0), Max(10)}}}

	tests := []struct {
		token string
		want  []string
	}{
		{token: "3"},
		{token: "0", want: []string{"Number must be greater than 0"}},
		{token: "-1.5", want: []string{"Expected integer, received float", "Number must be greater than 0"}},
		{token: "11", want: []string{"Number must be less than or equal to 10"}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			out := Validate(flags, nil, rawOf("step", tt.token))
			var got []string
			for _, issue := range out.Issues {
				assert.Equal(t, "--step", issue.Path)
				got = append(got, issue.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRefineSkippedAfterFailedCheck(t *testing.T) {
	called := false
	flags := []Flag{{Name: "n", Type: TypeNumber, Checks: []Check{
		Min(5),
		Refine(func(any) bool { called = true; return false }, "never"),
	}}}

	out := Validate(flags, nil, rawOf("n", "1"))

	require.Len(t, out.Issues, 1)
	assert.Equal(t, "Number must be greater than or equal to 5", out.Issues[0].Message)
	assert.False(t, called)
}

func TestValidateEnum(t *testing.T) {
	flags := []Flag{{Name: "status", Type: TypeEnum, Enum: []string{"pending", "executed"}}}

	out := Validate(flags, nil, rawOf("status", "done"))
	require.Len(t, out.Issues, 1)
	assert.Equal(t, `Invalid enum value. Expected 'pending' | 'executed', received 'done' at "--status"`, out.Issues[0].String())

	out = Validate(flags, nil, rawOf("status", "pending"))
	require.True(t, out.OK())
	assert.Equal(t, "pending", out.Values.String("status"))
}

func TestValidateBoolean(t *testing.T) {
	flags := []Flag{{Name: "dryRun", Type: TypeBoolean}}

	raw := NewRawFlags()
	raw.Set("dryRun", RawValue{Bare: true})
	out := Validate(flags, nil, raw)
	require.True(t, out.OK())
	assert.True(t, out.Values.Bool("dryRun"))

	out = Validate(flags, nil, rawOf("dryRun", "false"))
	require.True(t, out.OK())
	assert.False(t, out.Values.Bool("dryRun"))
	assert.True(t, out.Values.Has("dryRun"))

	out = Validate(flags, nil, rawOf("dryRun", "maybe"))
	require.Len(t, out.Issues, 1)
	assert.Equal(t, `Expected boolean, received string at "--dry-run"`, out.Issues[0].String())
}

func TestValidateDefaults(t *testing.T) {
	flags := []Flag{
		{Name: "format", Type: TypeEnum, Enum: []string{"plain", "json"}, Default: "plain"},
		{Name: "limit", Type: TypeNumber, Default: 10},
		{Name: "query", Type: TypeString},
	}

	out := Validate(flags, nil, rawOf("query", "x"))

	require.True(t, out.OK())
	assert.Equal(t, []string{"format", "limit", "query"}, out.Values.Keys())
	assert.Equal(t, "plain", out.Values.String("format"))
	assert.Equal(t, 10.0, out.Values.Number("limit"))
}

func TestValidateOptionalAbsent(t *testing.T) {
	flags := []Flag{{Name: "query", Type: TypeString}}

	out := Validate(flags, nil, nil)

	require.True(t, out.OK())
	assert.Equal(t, 0, out.Values.Len())
	assert.False(t, out.Values.Has("query"))
}

var applyFlags = []Flag{
	{Name: "to", Type: TypeString},
	{Name: "step", Type: TypeNumber, Checks: []Check{Int(), ExclusiveMin(0)}},
}

var applyUnions = []Union{{"step", "to"}}

func TestValidateUnionConflictShortCircuits(t *testing.T) {
	// Both values are individually valid.
	out := Validate(applyFlags, applyUnions, rawOf("to", "four", "step", "1"))

	require.True(t, out.Conflict)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, "--step and --to are incompatible and cannot be used together", out.Issues[0].Message)

	// An invalid step is not reported either.
	out = Validate(applyFlags, applyUnions, rawOf("to", "four", "step", "abc"))
	require.True(t, out.Conflict)
	require.Len(t, out.Issues, 1)
}

func TestValidateSingleUnionMemberProceeds(t *testing.T) {
	out := Validate(applyFlags, applyUnions, rawOf("step", "0"))
	require.False(t, out.Conflict)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, `Number must be greater than 0 at "--step"`, out.Issues[0].String())

	out = Validate(applyFlags, applyUnions, rawOf("to", "four"))
	require.True(t, out.OK())
	assert.Equal(t, "four", out.Values.String("to"))
}

func TestValidateUnionIgnoresDefaultValue(t *testing.T) {
	flags := []Flag{
		{Name: "to", Type: TypeString},
		{Name: "step", Type: TypeNumber, Default: 1},
	}

	out := Validate(flags, applyUnions, rawOf("to", "four", "step", "1"))

	require.True(t, out.OK(), "issues: %v", out.Issues)
}

func TestValidateUnionWaivesRequiredSibling(t *testing.T) {
	flags := []Flag{
		{Name: "to", Type: TypeString, Required: true},
		{Name: "step", Type: TypeNumber, Required: true},
	}

	out := Validate(flags, applyUnions, rawOf("step", "2"))
	require.True(t, out.OK(), "issues: %v", out.Issues)

	out = Validate(flags, applyUnions, nil)
	assert.Equal(t, []Issue{
		{Path: "--to", Message: "Required"},
		{Path: "--step", Message: "Required"},
	}, out.Issues)
}

func TestValidateUnionSingleLetterMembers(t *testing.T) {
	flags := []Flag{
		{Name: "x", Type: TypeNumber},
		{Name: "y", Type: TypeNumber},
		{Name: "z", Alias: "x", Type: TypeNumber},
	}
	require.NoError(t, CheckFlags(flags, []Union{{"x", "y"}}))

	out := Validate(flags, []Union{{"x", "y"}}, rawOf("x", "1", "y", "2"))

	require.True(t, out.Conflict)
	assert.Equal(t, "--x and --y are incompatible and cannot be used together", out.Issues[0].Message)

	out = Validate(flags, []Union{{"x", "y"}}, rawOf("y", "2", "z", "3"))
	require.True(t, out.OK(), "issues: %v", out.Issues)
}

func TestValidateDefaultValuedSiblingDoesNotWaiveRequired(t *testing.T) {
	flags := []Flag{
		{Name: "to", Type: TypeString, Required: true},
		{Name: "step", Type: TypeNumber, Default: 1},
	}

	out := Validate(flags, applyUnions, rawOf("step", "1"))

	assert.Equal(t, []Issue{{Path: "--to", Message: "Required"}}, out.Issues)
}

func TestConflictMessage(t *testing.T) {
	assert.Equal(t, "--a and --b are incompatible and cannot be used together", ConflictMessage([]string{"--a", "--b"}))
	assert.Equal(t, "--a, --b and --c are incompatible and cannot be used together", ConflictMessage([]string{"--a", "--b", "--c"}))
}
