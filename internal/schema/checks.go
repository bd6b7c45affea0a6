package schema

import (
	"fmt"
	"math"
)

type checkKind string

const (
	checkExclusiveMin checkKind = "exclusive minimum"
	checkMin          checkKind = "minimum"
	checkMax          checkKind = "maximum"
	checkInt          checkKind = "integer"
	checkRefine       checkKind = "refine"
)

// defaultRefineMessage is reported by a failed refinement without a message.
const defaultRefineMessage = "Invalid input"

// Check is one composable constraint applied to a coerced flag value.
// Build checks with ExclusiveMin, Min, Max, Int and Refine.
type Check struct {
	kind    checkKind
	bound   float64
	pred    func(any) bool
	message string
}

// ExclusiveMin requires a number strictly greater than n.
func ExclusiveMin(n float64) Check {
	return Check{kind: checkExclusiveMin, bound: n}
}

// Min requires a number greater than or equal to n.
func Min(n float64) Check {
	return Check{kind: checkMin, bound: n}
}

// Max requires a number less than or equal to n.
func Max(n float64) Check {
	return Check{kind: checkMax, bound: n}
}

// Int requires a whole number.
func Int() Check {
	return Check{kind: checkInt}
}

// Refine applies a custom predicate to the coerced value (float64, string or
// bool depending on the flag type). An empty message reports "Invalid input".
func Refine(pred func(v any) bool, message string) Check {
	return Check{kind: checkRefine, pred: pred, message: message}
}

// Describe returns the help suffix for the check, or "" when the check is not
// shown in help.
func (c Check) Describe() string {
	switch c.kind {
	case checkExclusiveMin:
		return "Exclusive minimum: " + FormatNumber(c.bound)
	case checkMin:
		return "Minimum: " + FormatNumber(c.bound)
	case checkMax:
		return "Maximum: " + FormatNumber(c.bound)
	default:
		return ""
	}
}

func (c Check) numeric() bool {
	return c.kind != checkRefine
}

// apply returns the issue message when v fails the check.
func (c Check) apply(v any) (string, bool) {
	if c.kind == checkRefine {
		if c.pred == nil || c.pred(v) {
			return "", true
		}
		if c.message == "" {
			return defaultRefineMessage, false
		}
		return c.message, false
	}

	n, ok := v.(float64)
	if !ok {
		return "", true
	}
	switch c.kind {
	case checkExclusiveMin:
		if n > c.bound {
			return "", true
		}
		return fmt.Sprintf("Number must be greater than %s", FormatNumber(c.bound)), false
	case checkMin:
		if n >= c.bound {
			return "", true
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", FormatNumber(c.bound)), false
	case checkMax:
		if n <= c.bound {
			return "", true
		}
		return fmt.Sprintf("Number must be less than or equal to %s", FormatNumber(c.bound)), false
	case checkInt:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return "", true
		}
		return "Expected integer, received float", false
	}
	return "", true
}

// runChecks applies every check of f to v. Refinements only run when the
// preceding checks passed.
func runChecks(f Flag, v any) []string {
	var msgs []string
	for _, c := range f.Checks {
		if c.kind == checkRefine && len(msgs) > 0 {
			continue
		}
		if msg, ok := c.apply(v); !ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
