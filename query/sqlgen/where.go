// Package sqlgen provides WHERE clause structures.
package sqlgen

import (
	"fmt"
	"sort"
	"strings"
)

// Pair is a single column/value binding.
type Pair struct {
	Column string
	Value  interface{}
}

// Values is an ordered column -> value mapping. The order of the pairs is the
// order in which placeholders appear in the generated SQL and in which the
// values are bound.
type Values []Pair

// V builds Values from alternating column names and values:
//
//	sqlgen.V("name", "Ann", "age", 30)
//
// It panics on an odd argument count or a non-string column, both of which are
// programming errors at the call site.
func V(kv ...interface{}) Values {
	if len(kv)%2 != 0 {
		panic("sqlgen.V: odd number of arguments")
	}
	values := make(Values, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		col, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("sqlgen.V: column at position %d is %T, not string", i, kv[i]))
		}
		values = append(values, Pair{Column: col, Value: kv[i+1]})
	}
	return values
}

// FromMap converts a map into Values ordered by column name, so that a map
// always renders the same statement.
func FromMap(m map[string]interface{}) Values {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(Values, 0, len(keys))
	for _, k := range keys {
		values = append(values, Pair{Column: k, Value: m[k]})
	}
	return values
}

// Columns returns the column names in order.
func (v Values) Columns() []string {
	cols := make([]string, len(v))
	for i, p := range v {
		cols[i] = p.Column
	}
	return cols
}

// Args returns the values in order.
func (v Values) Args() []interface{} {
	args := make([]interface{}, len(v))
	for i, p := range v {
		args[i] = p.Value
	}
	return args
}

// Get returns the value bound to column.
func (v Values) Get(column string) (interface{}, bool) {
	for _, p := range v {
		if p.Column == column {
			return p.Value, true
		}
	}
	return nil, false
}

// RenderPredicate renders a WHERE predicate.
//
// A string is caller-supplied SQL and is passed through verbatim with no bound
// values; it is not sanitized. Values (or a map, ordered by key) renders as a
// conjunction of "column = placeholder" comparisons whose values are returned
// in the same order. A nil predicate renders nothing, while an empty mapping
// is a contract violation so that it cannot widen an UPDATE or DELETE to every
// row. Anything else is a contract violation too.
func RenderPredicate(where interface{}, placeholder string) (string, []interface{}, error) {
	switch w := where.(type) {
	case nil:
		return "", nil, nil
	case string:
		return w, nil, nil
	case Values:
		if len(w) == 0 {
			return "", nil, fmt.Errorf("%w: empty predicate mapping", ErrContractViolation)
		}
		return renderEquals(w, placeholder), w.Args(), nil
	case map[string]interface{}:
		if len(w) == 0 {
			return "", nil, fmt.Errorf("%w: empty predicate mapping", ErrContractViolation)
		}
		values := FromMap(w)
		return renderEquals(values, placeholder), values.Args(), nil
	default:
		return "", nil, fmt.Errorf("%w: predicate must be a string or a column/value mapping, got %T", ErrContractViolation, where)
	}
}

func renderEquals(values Values, placeholder string) string {
	clauses := make([]string, len(values))
	for i, p := range values {
		clauses[i] = fmt.Sprintf("%s = %s", p.Column, placeholder)
	}
	return strings.Join(clauses, " AND ")
}
