package client

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/satishbabariya/mysqlite-go/query/sqlgen"
)

// Row is one materialized row: a column -> value mapping that remembers the
// table it came from.
//
// Values marked with JSONPrefix are held decoded. The row also keeps the
// values as stored, which identify it for Update.
type Row struct {
	db      *DB
	table   string
	columns []string
	values  map[string]interface{}
	stored  map[string]interface{}

	// sources maps result names to the expressions they were selected from.
	// Names missing from it are table columns.
	sources map[string]string
	// detached rows carry caller-supplied names and cannot be written back.
	detached bool
}

var plainColumn = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)?$`)

// Table returns the table the row was read from.
func (r *Row) Table() string {
	return r.table
}

// Columns returns the column names in order.
func (r *Row) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Values returns the values in column order.
func (r *Row) Values() []interface{} {
	values := make([]interface{}, len(r.columns))
	for i, col := range r.columns {
		values[i] = r.values[col]
	}
	return values
}

// Get returns the value of column and whether the row has it.
func (r *Row) Get(column string) (interface{}, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value of column, or nil.
func (r *Row) Value(column string) interface{} {
	return r.values[column]
}

// Set changes a value in memory only. Use Update to write it back.
func (r *Row) Set(column string, value interface{}) {
	r.addColumn(column)
	decoded, _ := decodeValue(value)
	r.values[column] = decoded
}

// Map returns a copy of the row as a map.
func (r *Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Decode stores the row in dest, a pointer to a struct or map. Fields are
// matched by their json tags.
func (r *Row) Decode(dest interface{}) error {
	data, err := json.Marshal(r.Map())
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return nil
}

// Update writes column = value back to the table and then applies it to the
// row in memory.
func (r *Row) Update(ctx context.Context, column string, value interface{}) error {
	return r.UpdateValues(ctx, sqlgen.Values{{Column: column, Value: value}})
}

// UpdateValues writes set back to the table and then applies it to the row
// in memory.
//
// The row is located by an equality predicate over the values it held when it
// was read, or last written back. NULLs, floats and times are left out, as are
// columns computed by an expression. Any matching duplicate is updated as
// well. The write and the in-memory change are not atomic.
//
// Columns renamed by the projection are written under their table name. A
// column computed by an expression, or any column of a row read with
// caller-supplied names, cannot be written.
func (r *Row) UpdateValues(ctx context.Context, set sqlgen.Values) error {
	if r.table == "" {
		return newError("update", "", ErrNoTable, "row was read without a table")
	}

	target := make(sqlgen.Values, len(set))
	for i, p := range set {
		src, ok := r.source(p.Column)
		if !ok {
			return newError("update", r.table, ErrContractViolation, "column %q does not map to a table column", p.Column)
		}
		target[i] = sqlgen.Pair{Column: src, Value: p.Value}
	}

	identity := r.identity()
	if len(identity) == 0 {
		return newError("update", r.table, ErrContractViolation, "row has no value that can identify it")
	}

	res, err := r.db.Update(ctx, r.table, target, identity)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return newError("update", r.table, ErrNoRowsMatched, "row was changed or deleted since it was read")
	}

	for _, p := range set {
		r.addColumn(p.Column)
		r.stored[p.Column] = p.Value
		decoded, _ := decodeValue(p.Value)
		r.values[p.Column] = decoded
	}
	return nil
}

func (r *Row) addColumn(column string) {
	for _, col := range r.columns {
		if col == column {
			return
		}
	}
	r.columns = append(r.columns, column)
}

// source returns the table column that result column name was selected
// from, and whether it is a plain column that can be bound in SQL.
func (r *Row) source(name string) (string, bool) {
	if r.detached {
		return "", false
	}
	src := name
	if s, ok := r.sources[name]; ok {
		src = s
	}
	return src, plainColumn.MatchString(src)
}

// identity returns column = stored value for every column whose value compares
// equal once bound again. NULL never compares equal. The drivers parse
// DATETIME text into time.Time, which binds back in another layout, and floats
// may not survive the text round trip.
func (r *Row) identity() sqlgen.Values {
	identity := make(sqlgen.Values, 0, len(r.columns))
	for _, col := range r.columns {
		v, ok := r.stored[col]
		if !ok || !roundTrips(v) {
			continue
		}
		src, ok := r.source(col)
		if !ok {
			continue
		}
		identity = append(identity, sqlgen.Pair{Column: src, Value: v})
	}
	return identity
}

func roundTrips(v interface{}) bool {
	switch v.(type) {
	case nil, time.Time, float32, float64:
		return false
	}
	return true
}
