package sqlgen

import (
	"fmt"
	"sort"
	"strings"
)

// Sort directions.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// All selects every column of a table.
const All = "*"

// Order is an ORDER BY clause: columns followed by a single direction token,
// which SQL applies to the last column only.
type Order struct {
	Columns   []string
	Direction string // ASC when empty
}

// RenderOrder renders the body of an ORDER BY clause.
//
// A string passes through verbatim. A []string lists columns, optionally with
// a direction token (ASC or DESC) anywhere in the list; the token is removed
// from the columns and appended once. The direction defaults to ASC.
func RenderOrder(order interface{}) (string, error) {
	switch o := order.(type) {
	case nil:
		return "", nil
	case string:
		return o, nil
	case []string:
		direction := ASC
		cols := make([]string, 0, len(o))
		for _, c := range o {
			switch strings.ToUpper(c) {
			case ASC, DESC:
				direction = strings.ToUpper(c)
			default:
				cols = append(cols, c)
			}
		}
		return renderOrder(cols, direction)
	case Order:
		return renderOrder(o.Columns, o.Direction)
	default:
		return "", fmt.Errorf("%w: order must be a string, a column list or an Order, got %T", ErrContractViolation, order)
	}
}

func renderOrder(cols []string, direction string) (string, error) {
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: order has no columns", ErrContractViolation)
	}
	switch strings.ToUpper(direction) {
	case "", ASC:
		direction = ASC
	case DESC:
		direction = DESC
	default:
		return "", fmt.Errorf("%w: order direction must be ASC or DESC, got %q", ErrContractViolation, direction)
	}
	return strings.Join(cols, ", ") + " " + direction, nil
}

// Alias renames a column in a projection.
type Alias struct {
	Column string
	As     string
}

// Rename is an ordered column -> alias projection.
type Rename []Alias

// RenderProjection renders the column list of a SELECT and reports the names
// the result columns will carry. For "all columns" names is nil, since only
// the catalog knows them.
func RenderProjection(cols interface{}) (string, []string, error) {
	text, aliases, err := projection(cols)
	if err != nil || aliases == nil {
		return text, nil, err
	}
	names := make([]string, len(aliases))
	for i, a := range aliases {
		names[i] = a.As
	}
	return text, names, nil
}

// ProjectionSources maps each result column name of a projection to the
// expression it is selected from: "name" for "name AS n", "COUNT(*)" for
// "COUNT(*) AS total". It is nil for "all columns".
func ProjectionSources(cols interface{}) (map[string]string, error) {
	_, aliases, err := projection(cols)
	if err != nil || aliases == nil {
		return nil, err
	}
	sources := make(map[string]string, len(aliases))
	for _, a := range aliases {
		sources[a.As] = a.Column
	}
	return sources, nil
}

// projection renders cols and returns one Alias per result column, with As
// always set to the result name.
func projection(cols interface{}) (string, []Alias, error) {
	switch c := cols.(type) {
	case nil:
		return All, nil, nil
	case string:
		if c == "" || c == All {
			return All, nil, nil
		}
		return c, splitColumns(c), nil
	case []string:
		if len(c) == 0 {
			return All, nil, nil
		}
		aliases := make([]Alias, len(c))
		for i, col := range c {
			aliases[i] = columnAlias(col)
		}
		return strings.Join(c, ", "), aliases, nil
	case Rename:
		return renderRename(c)
	case map[string]string:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rename := make(Rename, len(keys))
		for i, k := range keys {
			rename[i] = Alias{Column: k, As: c[k]}
		}
		return renderRename(rename)
	default:
		return "", nil, fmt.Errorf("%w: projection must be a column, a column list or a rename mapping, got %T", ErrContractViolation, cols)
	}
}

func renderRename(rename Rename) (string, []Alias, error) {
	if len(rename) == 0 {
		return All, nil, nil
	}
	parts := make([]string, len(rename))
	aliases := make([]Alias, len(rename))
	for i, a := range rename {
		if a.As == "" {
			parts[i] = a.Column
			aliases[i] = Alias{Column: a.Column, As: a.Column}
			continue
		}
		parts[i] = fmt.Sprintf("%s AS %s", a.Column, a.As)
		aliases[i] = a
	}
	return strings.Join(parts, ", "), aliases, nil
}

// splitColumns names the result columns of a raw column list such as
// "id, COUNT(*) AS n": top-level commas separate columns and a trailing AS
// alias replaces the expression.
func splitColumns(list string) []Alias {
	var aliases []Alias
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				aliases = append(aliases, columnAlias(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(aliases, columnAlias(list[start:]))
}

func columnAlias(expr string) Alias {
	expr = strings.TrimSpace(expr)
	if i := strings.LastIndex(strings.ToUpper(expr), " AS "); i >= 0 {
		return Alias{Column: strings.TrimSpace(expr[:i]), As: strings.TrimSpace(expr[i+4:])}
	}
	return Alias{Column: expr, As: expr}
}
