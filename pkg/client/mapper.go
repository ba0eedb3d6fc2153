package client

import (
	"context"
	"fmt"

	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
)

// materialize turns raw driver output into rows keyed by column name.
//
// Named rows keep the names reported by the driver. Positional rows are named
// by the requested projection, or, when all columns were selected, by the
// catalog entry of table. Without either, materialization fails rather than
// guessing. The returned columns are nil when they are still unknown, which
// only happens for an empty result of an all-columns select.
func (db *DB) materialize(ctx context.Context, raw database.RawRows, table string, names []string) ([]string, []*Row, error) {
	if raw.IsNamed() {
		rows := make([]*Row, len(raw.Named))
		for i, values := range raw.Named {
			rows[i] = db.newRow(table, raw.Columns, values)
		}
		return raw.Columns, rows, nil
	}

	if len(raw.Tuples) == 0 {
		return names, nil, nil
	}

	width := len(raw.Tuples[0])
	columns := names
	if columns == nil {
		if table == "" {
			return nil, nil, newError("materialize", "", ErrUnknownColumns,
				"statement names no table and no columns were given")
		}
		catalog, err := db.Columns(ctx, table)
		if err != nil {
			return nil, nil, err
		}
		columns = catalog
	}
	if len(columns) != width {
		return nil, nil, newError("materialize", table, ErrUnknownColumns,
			"%d column names for rows of %d values", len(columns), width)
	}

	rows := make([]*Row, len(raw.Tuples))
	for i, tuple := range raw.Tuples {
		values := make(map[string]interface{}, len(columns))
		for j, col := range columns {
			values[col] = tuple[j]
		}
		rows[i] = db.newRow(table, columns, values)
	}
	return columns, rows, nil
}

func (db *DB) newRow(table string, columns []string, stored map[string]interface{}) *Row {
	row := &Row{
		db:      db,
		table:   table,
		columns: append([]string(nil), columns...),
		values:  make(map[string]interface{}, len(columns)),
		stored:  make(map[string]interface{}, len(columns)),
	}
	for _, col := range columns {
		v := stored[col]
		row.stored[col] = v
		decoded, ok := decodeValue(v)
		if !ok {
			db.logger.Warn("invalid JSON in marked value", "table", table, "column", col)
		}
		row.values[col] = decoded
	}
	return row
}

func describeColumns(columns []string) string {
	if columns == nil {
		return "unknown"
	}
	return fmt.Sprint(columns)
}
