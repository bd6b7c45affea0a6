package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Values is the typed flag record handed to a command handler. Keys are
// internal flag names in declaration order; numbers are float64, strings and
// enums are string, booleans are bool.
type Values struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewValues returns an empty record.
func NewValues() *Values {
	return &Values{m: orderedmap.New[string, any]()}
}

// Set stores a value, keeping the position of an existing key.
func (v *Values) Set(name string, value any) {
	if v.m == nil {
		v.m = orderedmap.New[string, any]()
	}
	v.m.Set(name, value)
}

// Get returns the value of a flag and whether it is present.
func (v *Values) Get(name string) (any, bool) {
	if v == nil || v.m == nil {
		return nil, false
	}
	return v.m.Get(name)
}

// Has reports whether the flag was supplied or defaulted.
func (v *Values) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// Number returns a number flag, or 0 when absent.
func (v *Values) Number(name string) float64 {
	val, _ := v.Get(name)
	n, _ := val.(float64)
	return n
}

// String returns a string or enum flag, or "" when absent.
func (v *Values) String(name string) string {
	val, _ := v.Get(name)
	s, _ := val.(string)
	return s
}

// Bool returns a boolean flag, or false when absent.
func (v *Values) Bool(name string) bool {
	val, _ := v.Get(name)
	b, _ := val.(bool)
	return b
}

// Keys returns the present flag names in declaration order.
func (v *Values) Keys() []string {
	if v == nil || v.m == nil {
		return nil
	}
	keys := make([]string, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of present flags.
func (v *Values) Len() int {
	if v == nil || v.m == nil {
		return 0
	}
	return v.m.Len()
}
