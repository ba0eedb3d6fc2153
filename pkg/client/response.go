package client

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
)

// Response is the ordered result of a fetch.
type Response struct {
	db      *DB
	table   string
	columns []string
	rows    []*Row
}

func newResponse(db *DB, table string, columns []string, rows []*Row) *Response {
	if rows == nil {
		rows = []*Row{}
	}
	return &Response{db: db, table: table, columns: columns, rows: rows}
}

// Table returns the table the rows were read from, or "" when the statement
// named none.
func (r *Response) Table() string {
	return r.table
}

// Len returns the number of rows.
func (r *Response) Len() int {
	return len(r.rows)
}

// OK reports whether the response holds at least one row.
func (r *Response) OK() bool {
	return len(r.rows) > 0
}

// Empty reports whether the response holds no rows.
func (r *Response) Empty() bool {
	return len(r.rows) == 0
}

// Rows returns the rows in order.
func (r *Response) Rows() []*Row {
	return append([]*Row(nil), r.rows...)
}

// All iterates over the rows in order.
func (r *Response) All() iter.Seq2[int, *Row] {
	return func(yield func(int, *Row) bool) {
		for i, row := range r.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Row returns the row at index i.
func (r *Response) Row(i int) (*Row, error) {
	if i < 0 || i >= len(r.rows) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, len(r.rows))
	}
	return r.rows[i], nil
}

// Column returns the values of column across all rows.
func (r *Response) Column(name string) ([]interface{}, error) {
	values := make([]interface{}, len(r.rows))
	for i, row := range r.rows {
		v, ok := row.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no column %q", ErrContractViolation, i, name)
		}
		values[i] = v
	}
	return values, nil
}

// Get returns a column of the only row. It fails unless the response holds
// exactly one row.
func (r *Response) Get(name string) (interface{}, error) {
	if len(r.rows) != 1 {
		return nil, fmt.Errorf("%w: %d rows", ErrNotSingleRow, len(r.rows))
	}
	v, ok := r.rows[0].Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", ErrContractViolation, name)
	}
	return v, nil
}

// Columns returns the column names of the response. For an empty result of an
// all-columns select they are looked up in the catalog on first use.
func (r *Response) Columns(ctx context.Context) ([]string, error) {
	if r.columns != nil {
		return append([]string(nil), r.columns...), nil
	}
	if r.table == "" {
		return nil, newError("columns", "", ErrUnknownColumns, "response has no table")
	}
	columns, err := r.db.Columns(ctx, r.table)
	if err != nil {
		return nil, err
	}
	r.columns = columns
	return append([]string(nil), columns...), nil
}

// Records returns the column names and every row formatted as strings, in
// column order, for display.
func (r *Response) Records(ctx context.Context) ([]string, [][]string, error) {
	columns, err := r.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}
	records := make([][]string, len(r.rows))
	for i, row := range r.rows {
		record := make([]string, len(columns))
		for j, col := range columns {
			record[j] = formatValue(row.Value(col))
		}
		records[i] = record
	}
	return columns, records, nil
}

// Nulls reports which values of Records are SQL NULL, in the same layout.
// Records renders NULL as "NULL", which a stored text can equal.
func (r *Response) Nulls(ctx context.Context) ([][]bool, error) {
	columns, err := r.Columns(ctx)
	if err != nil {
		return nil, err
	}
	nulls := make([][]bool, len(r.rows))
	for i, row := range r.rows {
		mask := make([]bool, len(columns))
		for j, col := range columns {
			mask[j] = row.Value(col) == nil
		}
		nulls[i] = mask
	}
	return nulls, nil
}

// Decode stores the rows in dest, which must point to a slice of structs or
// maps. Fields are matched by their json tags.
func (r *Response) Decode(dest interface{}) error {
	maps := make([]map[string]interface{}, len(r.rows))
	for i, row := range r.rows {
		maps[i] = row.Map()
	}
	data, err := json.Marshal(maps)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal rows: %w", err)
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("Response{table: %q, rows: %d, columns: %s}", r.table, len(r.rows), describeColumns(r.columns))
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("%x", val)
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
