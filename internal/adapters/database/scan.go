package database

import (
	"database/sql"
	"strconv"
	"strings"
)

// NormalizeValue converts driver output to plain Go values. Drivers hand
// back text as []byte; numeric columns read through the text protocol are
// parsed according to their declared type. Binary columns stay []byte.
func NormalizeValue(v interface{}, typeName string) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	typ := strings.ToUpper(typeName)
	typ = strings.TrimPrefix(typ, "UNSIGNED ")

	switch {
	case strings.Contains(typ, "BLOB"), strings.Contains(typ, "BINARY"), typ == "BIT", typ == "GEOMETRY":
		return append([]byte(nil), b...)
	case isIntegerType(typ):
		if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(string(b), 10, 64); err == nil {
			return n
		}
	case typ == "DECIMAL", typ == "FLOAT", typ == "DOUBLE", typ == "REAL", typ == "NUMERIC":
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			return f
		}
	}
	return string(b)
}

func isIntegerType(typ string) bool {
	switch typ {
	case "INT", "INTEGER", "TINYINT", "SMALLINT", "MEDIUMINT", "BIGINT", "YEAR":
		return true
	}
	return false
}

// ColumnTypeNames returns the declared type name of every column.
func ColumnTypeNames(rows *sql.Rows) ([]string, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.DatabaseTypeName()
	}
	return names, nil
}
