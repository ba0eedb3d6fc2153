// Package sqlgen builds parameterized SQL statements for the supported engines.
//
// Values are always delegated to parameter binding. Identifiers, raw
// predicates, GROUP BY and ORDER BY text are trusted caller input and are
// copied into the statement as-is.
package sqlgen

import (
	"fmt"
	"strings"
)

// Statement is SQL text with placeholders and the values bound to them, in
// the order the placeholders appear.
type Statement struct {
	SQL  string
	Args []interface{}
}

// Insert describes an INSERT of a single row.
type Insert struct {
	Table  string
	Values Values
}

// Select describes a SELECT.
type Select struct {
	Table string

	// Columns is nil or "*" for all columns, a column name, a []string, a
	// Rename or a map[string]string of column -> alias.
	Columns interface{}

	// Where is nil, raw SQL text, Values or a map[string]interface{}.
	Where interface{}

	GroupBy string

	// OrderBy is raw text, a []string with an optional direction token, or an Order.
	OrderBy interface{}

	// Limit is ignored when not positive.
	Limit int
}

// Update describes an UPDATE.
type Update struct {
	Table string
	Set   Values
	Where interface{}
}

// Delete describes a DELETE.
type Delete struct {
	Table string
	Where interface{}
}

// CreateTable describes a CREATE TABLE.
type CreateTable struct {
	Table string

	// Fields is Values of column -> type string, a map[string]string (ordered
	// by column name) or a raw field definition string.
	Fields interface{}
}

// Builder renders statements for one placeholder style.
type Builder struct {
	Placeholder string
}

// NewBuilder creates a builder emitting the given placeholder token, "%s"
// for MySQL or "?" for SQLite.
func NewBuilder(placeholder string) *Builder {
	return &Builder{Placeholder: placeholder}
}

// Insert renders INSERT INTO table (cols) VALUES (placeholders).
func (b *Builder) Insert(op Insert) (Statement, error) {
	if op.Table == "" {
		return Statement{}, ErrNoTable
	}
	if len(op.Values) == 0 {
		return Statement{}, fmt.Errorf("%w: insert requires at least one column", ErrContractViolation)
	}

	placeholders := make([]string, len(op.Values))
	for i := range op.Values {
		placeholders[i] = b.Placeholder
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		op.Table,
		strings.Join(op.Values.Columns(), ", "),
		strings.Join(placeholders, ", "))

	return Statement{SQL: sql, Args: op.Values.Args()}, nil
}

// Select renders a SELECT with optional WHERE, GROUP BY, ORDER BY and LIMIT,
// in that order. Only the predicate contributes bound values.
func (b *Builder) Select(op Select) (Statement, error) {
	if op.Table == "" {
		return Statement{}, ErrNoTable
	}

	projection, _, err := RenderProjection(op.Columns)
	if err != nil {
		return Statement{}, err
	}

	parts := []string{fmt.Sprintf("SELECT %s FROM %s", projection, op.Table)}

	where, args, err := RenderPredicate(op.Where, b.Placeholder)
	if err != nil {
		return Statement{}, err
	}
	if where != "" {
		parts = append(parts, "WHERE "+where)
	}

	if op.GroupBy != "" {
		parts = append(parts, "GROUP BY "+op.GroupBy)
	}

	order, err := RenderOrder(op.OrderBy)
	if err != nil {
		return Statement{}, err
	}
	if order != "" {
		parts = append(parts, "ORDER BY "+order)
	}

	if op.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", op.Limit))
	}

	return Statement{SQL: strings.Join(parts, " ") + ";", Args: args}, nil
}

// Update renders UPDATE table SET col = placeholder, ... [WHERE ...]. The bound
// values are the new values followed by the predicate values.
func (b *Builder) Update(op Update) (Statement, error) {
	if op.Table == "" {
		return Statement{}, ErrNoTable
	}
	if len(op.Set) == 0 {
		return Statement{}, fmt.Errorf("%w: update requires at least one column", ErrContractViolation)
	}

	pairs := make([]string, len(op.Set))
	for i, p := range op.Set {
		pairs[i] = fmt.Sprintf("%s = %s", p.Column, b.Placeholder)
	}
	sql := fmt.Sprintf("UPDATE %s SET %s", op.Table, strings.Join(pairs, ", "))
	args := op.Set.Args()

	where, whereArgs, err := RenderPredicate(op.Where, b.Placeholder)
	if err != nil {
		return Statement{}, err
	}
	if where != "" {
		sql += " WHERE " + where
		args = append(args, whereArgs...)
	}

	return Statement{SQL: sql + ";", Args: args}, nil
}

// Delete renders DELETE FROM table [WHERE ...].
func (b *Builder) Delete(op Delete) (Statement, error) {
	if op.Table == "" {
		return Statement{}, ErrNoTable
	}

	sql := "DELETE FROM " + op.Table
	where, args, err := RenderPredicate(op.Where, b.Placeholder)
	if err != nil {
		return Statement{}, err
	}
	if where != "" {
		sql += " WHERE " + where
	}

	return Statement{SQL: sql + ";", Args: args}, nil
}

// CreateTable renders CREATE TABLE name (fields). It has no bound values.
func (b *Builder) CreateTable(op CreateTable) (Statement, error) {
	if op.Table == "" {
		return Statement{}, ErrNoTable
	}

	var fields string
	switch f := op.Fields.(type) {
	case string:
		fields = strings.TrimSpace(f)
		if fields == "" {
			return Statement{}, fmt.Errorf("%w: create table requires field definitions", ErrContractViolation)
		}
		if !strings.HasPrefix(fields, "(") || !strings.HasSuffix(fields, ")") {
			fields = "(" + fields + ")"
		}
	case Values:
		defs, err := columnDefinitions(f)
		if err != nil {
			return Statement{}, err
		}
		fields = defs
	case map[string]string:
		m := make(map[string]interface{}, len(f))
		for k, v := range f {
			m[k] = v
		}
		defs, err := columnDefinitions(FromMap(m))
		if err != nil {
			return Statement{}, err
		}
		fields = defs
	default:
		return Statement{}, fmt.Errorf("%w: fields must be a column/type mapping or a string, got %T", ErrContractViolation, op.Fields)
	}

	return Statement{SQL: fmt.Sprintf("CREATE TABLE %s %s;", op.Table, fields)}, nil
}

func columnDefinitions(values Values) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("%w: create table requires at least one column", ErrContractViolation)
	}
	defs := make([]string, len(values))
	for i, p := range values {
		typ, ok := p.Value.(string)
		if !ok {
			return "", fmt.Errorf("%w: type of column %q must be a string, got %T", ErrContractViolation, p.Column, p.Value)
		}
		defs[i] = fmt.Sprintf("%s %s", p.Column, typ)
	}
	return "(" + strings.Join(defs, ", ") + ")", nil
}
