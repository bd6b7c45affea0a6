// Package format renders command return values as readable literals.
//
// The layout is a fixed contract checked verbatim by tests: strings are
// single-quoted, mapping keys are bare identifiers, and every non-empty
// sequence or mapping is broken over lines with two-space indentation.
//
//	[
//	  {
//	    name: 'two',
//	    status: 'executed'
//	  }
//	]
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const indentUnit = "  "

// OrderedMap is a mapping that keeps its own key order, such as the flag
// record passed to handlers.
type OrderedMap interface {
	Keys() []string
	Get(key string) (any, bool)
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Inspect renders v without a trailing newline.
func Inspect(v any) string {
	var b strings.Builder
	write(&b, v, "")
	return b.String()
}

type entry struct {
	key   string
	value any
}

func write(b *strings.Builder, v any, indent string) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
		return
	case string:
		b.WriteString(Quote(x))
		return
	case bool:
		b.WriteString(strconv.FormatBool(x))
		return
	case float64:
		b.WriteString(Number(x))
		return
	case float32:
		b.WriteString(Number(float64(x)))
		return
	case json.Number:
		b.WriteString(x.String())
		return
	case time.Time:
		b.WriteString(x.UTC().Format(time.RFC3339Nano))
		return
	case error:
		b.WriteString(Quote(x.Error()))
		return
	case *orderedmap.OrderedMap[string, any]:
		if x == nil {
			b.WriteString("null")
			return
		}
		var entries []entry
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			entries = append(entries, entry{pair.Key, pair.Value})
		}
		writeObject(b, entries, indent)
		return
	case OrderedMap:
		var entries []entry
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			entries = append(entries, entry{k, val})
		}
		writeObject(b, entries, indent)
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			b.WriteString("null")
			return
		}
		write(b, rv.Elem().Interface(), indent)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(Number(rv.Float()))
	case reflect.String:
		b.WriteString(Quote(rv.String()))
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			b.WriteString("[]")
			return
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		writeArray(b, items, indent)
	case reflect.Map:
		writeObject(b, mapEntries(rv), indent)
	case reflect.Struct:
		writeObject(b, structEntries(rv), indent)
	default:
		b.WriteString(fmt.Sprintf("[%s]", rv.Kind()))
	}
}

func writeArray(b *strings.Builder, items []any, indent string) {
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	inner := indent + indentUnit
	b.WriteString("[\n")
	for i, item := range items {
		b.WriteString(inner)
		write(b, item, inner)
		if i < len(items)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(indent + "]")
}

func writeObject(b *strings.Builder, entries []entry, indent string) {
	if len(entries) == 0 {
		b.WriteString("{}")
		return
	}
	inner := indent + indentUnit
	b.WriteString("{\n")
	for i, e := range entries {
		b.WriteString(inner + Key(e.key) + ": ")
		write(b, e.value, inner)
		if i < len(entries)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(indent + "}")
}

// mapEntries returns the entries of a map sorted by their rendered key.
func mapEntries(rv reflect.Value) []entry {
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{fmt.Sprint(iter.Key().Interface()), iter.Value().Interface()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries
}

// structEntries returns exported fields in declaration order, named by their
// json tag or lower-camel field name. Fields tagged "-" are skipped, and
// omitempty fields are skipped when zero.
func structEntries(rv reflect.Value) []entry {
	rt := rv.Type()
	var entries []entry
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := lowerFirst(field.Name)
		omitEmpty := false
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, opts, _ := strings.Cut(tag, ",")
			if tagName == "-" && opts == "" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
			omitEmpty = strings.Contains(","+opts+",", ",omitempty,")
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		entries = append(entries, entry{name, fv.Interface()})
	}
	return entries
}

// Quote renders s as a single-quoted literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\x%02X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// Key renders a mapping key: bare when it is an identifier, quoted otherwise.
func Key(k string) string {
	if identifier.MatchString(k) {
		return k
	}
	return Quote(k)
}

// Number renders a float the way a literal dump does: 3, 0.5, -0, NaN,
// Infinity.
func Number(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0 && math.Signbit(n):
		return "-0"
	}
	abs := math.Abs(n)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		if strings.HasPrefix(exp, "+") {
			return mantissa + "e+" + strings.TrimLeft(exp[1:], "0")
		}
		return mantissa + "e-" + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
