package client

import (
	"context"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
	"github.com/satishbabariya/mysqlite-go/query/sqlgen"
)

type mode int

const (
	commitMode mode = iota
	fetchMode
)

func (m mode) String() string {
	if m == fetchMode {
		return "fetch"
	}
	return "commit"
}

// Result acknowledges a statement that returns no rows.
type Result struct {
	// Committed is true once the statement has been executed and committed.
	Committed bool

	// RowsAffected is the number of rows matched by an UPDATE or DELETE, or
	// inserted by an INSERT.
	RowsAffected int64

	// LastInsertID is the id generated by an INSERT, if any.
	LastInsertID int64
}

var fromTable = regexp.MustCompile("(?i)\\bFROM\\s+[`\"\\[]?(\\w+)")

// tableOf returns the identifier following the first FROM in query, or "".
func tableOf(query string) string {
	m := fromTable.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	return m[1]
}

// runStatement opens a connection, executes stmt once and closes the
// connection on every path.
func (db *DB) runStatement(ctx context.Context, stmt sqlgen.Statement, m mode) (database.RawRows, Result, error) {
	conn, err := db.engine.Open(ctx)
	if err != nil {
		return database.RawRows{}, Result{}, err
	}
	defer db.close(conn)

	db.logger.Debug("executing statement", "mode", m.String(), "verb", verbOf(stmt.SQL), "sql", stmt.SQL, "args", len(stmt.Args))

	if m == fetchMode {
		raw, err := db.engine.Fetch(ctx, conn, stmt.SQL, stmt.Args)
		return raw, Result{}, err
	}

	res, err := conn.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return database.RawRows{}, Result{}, err
	}
	result := Result{Committed: true}
	if n, err := res.RowsAffected(); err == nil {
		result.RowsAffected = n
	}
	if id, err := res.LastInsertId(); err == nil {
		result.LastInsertID = id
	}
	return database.RawRows{}, result, nil
}

func (db *DB) close(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		db.logger.Warn("failed to close connection", "error", err)
	}
}

func (db *DB) commit(ctx context.Context, stmt sqlgen.Statement) (Result, error) {
	_, result, err := db.runStatement(ctx, stmt, commitMode)
	return result, err
}

// fetch runs stmt and materializes its rows. names are the result column
// names requested by the caller, nil when all columns were selected. sources
// maps those names to the expressions they were selected from.
func (db *DB) fetch(ctx context.Context, stmt sqlgen.Statement, names []string, sources map[string]string) (*Response, error) {
	raw, _, err := db.runStatement(ctx, stmt, fetchMode)
	if err != nil {
		return nil, err
	}

	table := tableOf(stmt.SQL)
	if table == "" {
		db.logger.Debug("no table found in statement", "sql", stmt.SQL)
	}

	columns, rows, err := db.materialize(ctx, raw, table, names)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.sources = sources
	}
	return newResponse(db, table, columns, rows), nil
}

func verbOf(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
