// Package mysql implements the MySQL engine.
package mysql

import (
	"context"
	"fmt"
	"net"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
)

const (
	tablesQuery  = "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME;"
	columnsQuery = "SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION;"
)

// Config holds MySQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Charset  string
}

// Engine implements database.Engine for MySQL.
type Engine struct {
	config Config
}

// NewEngine creates a MySQL engine. It does not connect.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// DSN returns the driver data source name.
func (e *Engine) DSN() string {
	cfg := gomysql.NewConfig()
	cfg.User = e.config.User
	cfg.Passwd = e.config.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(e.config.Host, strconv.Itoa(e.config.Port))
	cfg.DBName = e.config.DBName
	cfg.ParseTime = true
	// Row write-back compares matched rows, not changed rows.
	cfg.ClientFoundRows = true
	if e.config.Charset != "" {
		cfg.Params = map[string]string{"charset": e.config.Charset}
	}
	return cfg.FormatDSN()
}

// Kind returns database.MySQL.
func (e *Engine) Kind() database.Kind {
	return database.MySQL
}

// Open connects to the server and verifies the connection.
func (e *Engine) Open(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", e.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: mysql: %v", database.ErrUnreachable, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: mysql %s@%s: %v", database.ErrUnreachable, e.config.User, e.config.Host, err)
	}
	return db, nil
}

// Placeholder returns "?", the token go-sql-driver/mysql binds.
func (e *Engine) Placeholder() string {
	return "?"
}

// TablesQuery lists the tables of the configured schema.
func (e *Engine) TablesQuery() (string, []interface{}) {
	return tablesQuery, []interface{}{e.config.DBName}
}

// ColumnsQuery lists the columns of table in the configured schema.
func (e *Engine) ColumnsQuery(table string) (string, []interface{}) {
	return columnsQuery, []interface{}{e.config.DBName, table}
}

// Fetch returns named rows, one map per row.
func (e *Engine) Fetch(ctx context.Context, conn *sqlx.DB, query string, args []interface{}) (database.RawRows, error) {
	rows, err := conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return database.RawRows{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return database.RawRows{}, err
	}
	types, err := database.ColumnTypeNames(rows.Rows)
	if err != nil {
		return database.RawRows{}, err
	}

	out := database.RawRows{Columns: columns, Named: []map[string]interface{}{}}
	for rows.Next() {
		row := make(map[string]interface{}, len(columns))
		if err := rows.MapScan(row); err != nil {
			return database.RawRows{}, err
		}
		for i, col := range columns {
			row[col] = database.NormalizeValue(row[col], types[i])
		}
		out.Named = append(out.Named, row)
	}
	if err := rows.Err(); err != nil {
		return database.RawRows{}, err
	}
	return out, nil
}

// Exists connects and immediately disconnects.
func (e *Engine) Exists(ctx context.Context) (bool, error) {
	db, err := e.Open(ctx)
	if err != nil {
		return false, nil
	}
	return true, db.Close()
}

// ServerVersion reports the result of SELECT VERSION().
func (e *Engine) ServerVersion(ctx context.Context, conn *sqlx.DB) (database.ServerInfo, error) {
	var raw string
	if err := conn.GetContext(ctx, &raw, "SELECT VERSION();"); err != nil {
		return database.ServerInfo{}, err
	}
	return database.NewServerInfo(database.MySQL, raw), nil
}

// Ensure Engine implements database.Engine.
var _ database.Engine = (*Engine)(nil)
