// Package client is a minimal ORM over MySQL and SQLite.
//
// A DB is configured once for one backend and is otherwise stateless: every
// operation opens its own connection, executes a single auto-committed
// statement and closes the connection before returning. Calls block until
// the engine answers; the only deadline is the one carried by ctx.
package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
	"github.com/satishbabariya/mysqlite-go/internal/adapters/database/mysql"
	"github.com/satishbabariya/mysqlite-go/internal/adapters/database/sqlite"
	"github.com/satishbabariya/mysqlite-go/internal/debug"
	"github.com/satishbabariya/mysqlite-go/query/sqlgen"
)

// Values is an ordered column -> value mapping.
type Values = sqlgen.Values

// V builds Values from alternating column names and values.
var V = sqlgen.V

// Kind identifies a backend.
type Kind = database.Kind

// Backends.
const (
	MySQL  = database.MySQL
	SQLite = database.SQLite
)

// ServerInfo describes a reachable backend.
type ServerInfo = database.ServerInfo

// Sort directions and the all-columns projection.
const (
	ASC  = sqlgen.ASC
	DESC = sqlgen.DESC
	All  = sqlgen.All
)

// DB is the facade over one configured backend.
type DB struct {
	engine  database.Engine
	builder *sqlgen.Builder
	config  Config
	logger  *slog.Logger
}

// New resolves cfg against the WithDefaults values and the built-in defaults,
// selects the backend and returns a DB. It never connects.
func New(cfg Config, opts ...Option) (*DB, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	resolved := cfg.withFallback(o.defaults).withFallback(DefaultConfig())

	hasMySQL := resolved.DBName != "" && resolved.Password != ""
	hasSQLite := resolved.Filename != ""

	var engine database.Engine
	switch {
	case hasMySQL && hasSQLite:
		return nil, fmt.Errorf("%w: both MySQL credentials and a SQLite file were provided", ErrConfiguration)
	case hasMySQL:
		engine = mysql.NewEngine(mysql.Config{
			Host:     resolved.Host,
			Port:     resolved.Port,
			User:     resolved.User,
			Password: resolved.Password,
			DBName:   resolved.DBName,
			Charset:  resolved.Charset,
		})
	case hasSQLite:
		e, err := sqlite.NewEngine(sqlite.Config{Filename: resolved.Filename, Fs: o.fs})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		engine = e
	default:
		return nil, fmt.Errorf("%w: neither data for MySQL (database name and password) nor for SQLite (file name) provided", ErrConfiguration)
	}

	logger := o.logger
	if logger == nil {
		logger = debug.Logger()
	}

	return &DB{
		engine:  engine,
		builder: sqlgen.NewBuilder(engine.Placeholder()),
		config:  resolved,
		logger:  logger.With("engine", string(engine.Kind())),
	}, nil
}

// Kind returns the configured backend.
func (db *DB) Kind() Kind {
	return db.engine.Kind()
}

// Table returns the default table.
func (db *DB) Table() string {
	return db.config.Table
}

// WithTable returns a copy of db whose default table is table.
func (db *DB) WithTable(table string) *DB {
	clone := *db
	clone.config.Table = table
	return &clone
}

func (db *DB) table(table string) string {
	if table != "" {
		return table
	}
	return db.config.Table
}

// Insert inserts one row.
func (db *DB) Insert(ctx context.Context, table string, values Values) (Result, error) {
	stmt, err := db.builder.Insert(sqlgen.Insert{Table: db.table(table), Values: values})
	if err != nil {
		return Result{}, err
	}
	return db.commit(ctx, stmt)
}

// Select fetches rows described by q. An empty q.Table selects from the
// default table.
func (db *DB) Select(ctx context.Context, q sqlgen.Select) (*Response, error) {
	q.Table = db.table(q.Table)
	stmt, err := db.builder.Select(q)
	if err != nil {
		return nil, err
	}
	_, names, err := sqlgen.RenderProjection(q.Columns)
	if err != nil {
		return nil, err
	}
	sources, err := sqlgen.ProjectionSources(q.Columns)
	if err != nil {
		return nil, err
	}
	return db.fetch(ctx, stmt, names, sources)
}

// Update sets columns on every row matching where. The bound values are the
// new values followed by those of the predicate. An empty mapping is rejected;
// pass nil to update every row.
func (db *DB) Update(ctx context.Context, table string, set Values, where interface{}) (Result, error) {
	stmt, err := db.builder.Update(sqlgen.Update{Table: db.table(table), Set: set, Where: where})
	if err != nil {
		return Result{}, err
	}
	return db.commit(ctx, stmt)
}

// Delete deletes every row matching where, or all rows when where is nil. An
// empty mapping is rejected rather than treated as nil.
func (db *DB) Delete(ctx context.Context, table string, where interface{}) (Result, error) {
	stmt, err := db.builder.Delete(sqlgen.Delete{Table: db.table(table), Where: where})
	if err != nil {
		return Result{}, err
	}
	return db.commit(ctx, stmt)
}

// CreateTable creates a table from a column -> type mapping or a raw field
// definition string.
func (db *DB) CreateTable(ctx context.Context, name string, fields interface{}) (Result, error) {
	stmt, err := db.builder.CreateTable(sqlgen.CreateTable{Table: name, Fields: fields})
	if err != nil {
		return Result{}, err
	}
	return db.commit(ctx, stmt)
}

// RawSelect runs caller-supplied SQL and materializes its rows. On SQLite the
// column names come from the catalog of the table following FROM, so the
// query must select all columns of one table; use RawSelectNamed otherwise.
//
// WARNING: query is not sanitized. Pass values through args.
func (db *DB) RawSelect(ctx context.Context, query string, args ...interface{}) (*Response, error) {
	return db.fetch(ctx, sqlgen.Statement{SQL: query, Args: args}, nil, nil)
}

// RawSelectNamed runs caller-supplied SQL whose result columns are named by
// columns, in order. Its rows cannot be written back with Row.Update, since
// the names need not match the table.
func (db *DB) RawSelectNamed(ctx context.Context, columns []string, query string, args ...interface{}) (*Response, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no column names given", ErrContractViolation)
	}
	resp, err := db.fetch(ctx, sqlgen.Statement{SQL: query, Args: args}, columns, nil)
	if err != nil {
		return nil, err
	}
	for _, row := range resp.rows {
		row.detached = true
	}
	return resp, nil
}

// RawSelectTuples runs caller-supplied SQL and returns the values of every
// row positionally, without resolving column names.
func (db *DB) RawSelectTuples(ctx context.Context, query string, args ...interface{}) ([][]interface{}, error) {
	raw, _, err := db.runStatement(ctx, sqlgen.Statement{SQL: query, Args: args}, fetchMode)
	if err != nil {
		return nil, err
	}
	if !raw.IsNamed() {
		return raw.Tuples, nil
	}
	tuples := make([][]interface{}, len(raw.Named))
	for i, row := range raw.Named {
		tuple := make([]interface{}, len(raw.Columns))
		for j, col := range raw.Columns {
			tuple[j] = row[col]
		}
		tuples[i] = tuple
	}
	return tuples, nil
}

// RawCommit runs a caller-supplied statement that returns no rows.
//
// WARNING: query is not sanitized. Pass values through args.
func (db *DB) RawCommit(ctx context.Context, query string, args ...interface{}) (Result, error) {
	return db.commit(ctx, sqlgen.Statement{SQL: query, Args: args})
}

// Tables lists the tables of the database.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	query, args := db.engine.TablesQuery()
	raw, _, err := db.runStatement(ctx, sqlgen.Statement{SQL: query, Args: args}, fetchMode)
	if err != nil {
		return nil, err
	}
	return raw.FirstColumn(), nil
}

// Columns lists the columns of table in declaration order.
func (db *DB) Columns(ctx context.Context, table string) ([]string, error) {
	table = db.table(table)
	if table == "" {
		return nil, ErrNoTable
	}
	query, args := db.engine.ColumnsQuery(table)
	db.logger.Debug("looking up columns", "table", table)
	raw, _, err := db.runStatement(ctx, sqlgen.Statement{SQL: query, Args: args}, fetchMode)
	if err != nil {
		return nil, err
	}
	return raw.FirstColumn(), nil
}

// Exists reports whether the backend is reachable without touching any
// table: a file check for SQLite, a connect-and-close probe for MySQL.
func (db *DB) Exists(ctx context.Context) (bool, error) {
	return db.engine.Exists(ctx)
}

// Ping connects and reports the engine version.
func (db *DB) Ping(ctx context.Context) (ServerInfo, error) {
	conn, err := db.engine.Open(ctx)
	if err != nil {
		return ServerInfo{}, err
	}
	defer db.close(conn)
	return db.engine.ServerVersion(ctx, conn)
}
