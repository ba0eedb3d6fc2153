// Package sqlite implements the SQLite engine.
package sqlite

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
	"github.com/spf13/afero"
)

const (
	tablesQuery  = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name;"
	columnsQuery = "SELECT name FROM pragma_table_info(?) ORDER BY cid;"
)

// Table-valued pragma functions appeared in SQLite 3.16.0.
var minLibVersion = version.Must(version.NewVersion("3.16.0"))

// Config holds SQLite settings.
type Config struct {
	Filename string

	// Fs is used for the existence check. Defaults to the OS file system.
	Fs afero.Fs
}

// Engine implements database.Engine for SQLite.
type Engine struct {
	config Config
}

// NewEngine creates a SQLite engine. It fails when the linked SQLite library
// cannot answer catalog queries.
func NewEngine(config Config) (*Engine, error) {
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}

	lib, _, _ := sqlite3.Version()
	v, err := version.NewVersion(lib)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sqlite library version %q: %w", lib, err)
	}
	if v.LessThan(minLibVersion) {
		return nil, fmt.Errorf("sqlite library %s is older than required %s", v, minLibVersion)
	}

	return &Engine{config: config}, nil
}

// Kind returns database.SQLite.
func (e *Engine) Kind() database.Kind {
	return database.SQLite
}

// Open opens the database file, creating it when missing.
func (e *Engine) Open(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", e.config.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite3: %v", database.ErrUnreachable, err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite3 %s: %v", database.ErrUnreachable, e.config.Filename, err)
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite3 %s: %v", database.ErrUnreachable, e.config.Filename, err)
	}

	return db, nil
}

// Placeholder returns "?".
func (e *Engine) Placeholder() string {
	return "?"
}

// TablesQuery lists user tables.
func (e *Engine) TablesQuery() (string, []interface{}) {
	return tablesQuery, nil
}

// ColumnsQuery lists the columns of table.
func (e *Engine) ColumnsQuery(table string) (string, []interface{}) {
	return columnsQuery, []interface{}{table}
}

// Fetch returns positional tuples. Column names are left to the caller.
func (e *Engine) Fetch(ctx context.Context, conn *sqlx.DB, query string, args []interface{}) (database.RawRows, error) {
	rows, err := conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return database.RawRows{}, err
	}
	defer rows.Close()

	types, err := database.ColumnTypeNames(rows.Rows)
	if err != nil {
		return database.RawRows{}, err
	}

	out := database.RawRows{Tuples: [][]interface{}{}}
	for rows.Next() {
		tuple, err := rows.SliceScan()
		if err != nil {
			return database.RawRows{}, err
		}
		for i := range tuple {
			tuple[i] = database.NormalizeValue(tuple[i], types[i])
		}
		out.Tuples = append(out.Tuples, tuple)
	}
	if err := rows.Err(); err != nil {
		return database.RawRows{}, err
	}
	return out, nil
}

// Exists reports whether the database file is present. It never opens it.
func (e *Engine) Exists(ctx context.Context) (bool, error) {
	return afero.Exists(e.config.Fs, e.config.Filename)
}

// ServerVersion reports the result of SELECT sqlite_version().
func (e *Engine) ServerVersion(ctx context.Context, conn *sqlx.DB) (database.ServerInfo, error) {
	var raw string
	if err := conn.GetContext(ctx, &raw, "SELECT sqlite_version();"); err != nil {
		return database.ServerInfo{}, err
	}
	return database.NewServerInfo(database.SQLite, raw), nil
}

// Ensure Engine implements database.Engine.
var _ database.Engine = (*Engine)(nil)
