// Package database defines the engine contract shared by the MySQL and SQLite
// adapters.
package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
	"github.com/jmoiron/sqlx"
)

// ErrUnreachable indicates that a connection to the engine could not be opened.
var ErrUnreachable = errors.New("mysqlite: backend unreachable")

// Kind identifies an engine.
type Kind string

const (
	// MySQL is the client/server engine.
	MySQL Kind = "mysql"
	// SQLite is the embedded, file-based engine.
	SQLite Kind = "sqlite3"
)

// Engine is the capability contract implemented once per backend.
//
// Every connection returned by Open is owned by the caller, who must close it.
type Engine interface {
	// Kind returns the engine identity.
	Kind() Kind

	// Open opens and verifies a fresh connection. Failures wrap ErrUnreachable.
	Open(ctx context.Context) (*sqlx.DB, error)

	// Placeholder returns the bind parameter token understood by the driver.
	Placeholder() string

	// TablesQuery returns the catalog query listing all tables.
	TablesQuery() (string, []interface{})

	// ColumnsQuery returns the catalog query listing the columns of table in
	// declaration order.
	ColumnsQuery(table string) (string, []interface{})

	// Fetch runs a query on conn and returns the rows in the engine's native shape.
	Fetch(ctx context.Context, conn *sqlx.DB, query string, args []interface{}) (RawRows, error)

	// Exists reports whether the database is reachable without touching any table.
	Exists(ctx context.Context) (bool, error)

	// ServerVersion reports the engine version seen through conn.
	ServerVersion(ctx context.Context, conn *sqlx.DB) (ServerInfo, error)
}

// RawRows is backend-native fetch output: named rows for engines whose driver
// reports column names with each row, positional tuples otherwise.
type RawRows struct {
	// Columns is the column order of Named rows. It is nil for tuples.
	Columns []string

	Named  []map[string]interface{}
	Tuples [][]interface{}
}

// Len returns the number of rows.
func (r RawRows) Len() int {
	if r.Named != nil {
		return len(r.Named)
	}
	return len(r.Tuples)
}

// IsNamed reports whether the rows carry their own column names.
func (r RawRows) IsNamed() bool {
	return r.Columns != nil
}

// FirstColumn returns the first value of every row as a string. Catalog
// queries select a single name column.
func (r RawRows) FirstColumn() []string {
	out := make([]string, 0, r.Len())
	if r.IsNamed() {
		if len(r.Columns) == 0 {
			return out
		}
		for _, row := range r.Named {
			out = append(out, fmt.Sprint(row[r.Columns[0]]))
		}
		return out
	}
	for _, row := range r.Tuples {
		if len(row) > 0 {
			out = append(out, fmt.Sprint(row[0]))
		}
	}
	return out
}

// ServerInfo describes a reachable engine.
type ServerInfo struct {
	Kind Kind
	Raw  string

	// Version is nil when Raw could not be parsed.
	Version *version.Version
}

func (i ServerInfo) String() string {
	return fmt.Sprintf("%s %s", i.Kind, i.Raw)
}

var leadingVersion = regexp.MustCompile(`^\d+(\.\d+)*`)

// NewServerInfo parses a version string as reported by the engine, such as
// "8.0.36-0ubuntu0.22.04.1" or "10.11.2-MariaDB-1:10.11.2+maria~ubu2204".
func NewServerInfo(kind Kind, raw string) ServerInfo {
	info := ServerInfo{Kind: kind, Raw: raw}
	if v, err := version.NewVersion(raw); err == nil {
		info.Version = v
		return info
	}
	if m := leadingVersion.FindString(raw); m != "" {
		if v, err := version.NewVersion(m); err == nil {
			info.Version = v
		}
	}
	return info
}
