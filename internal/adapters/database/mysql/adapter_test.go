package mysql

import (
	"context"
	"os"
	"strconv"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/satishbabariya/mysqlite-go/internal/adapters/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLEngine_DSN(t *testing.T) {
	engine := NewEngine(Config{
		Host:     "db.internal",
		Port:     3307,
		User:     "app",
		Password: "s3cret",
		DBName:   "shop",
		Charset:  "utf8mb4",
	})

	cfg, err := gomysql.ParseDSN(engine.DSN())
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "s3cret", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db.internal:3307", cfg.Addr)
	assert.Equal(t, "shop", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.True(t, cfg.ClientFoundRows)
}

func TestMySQLEngine_Contract(t *testing.T) {
	engine := NewEngine(Config{DBName: "shop"})

	assert.Equal(t, database.MySQL, engine.Kind())
	assert.Equal(t, "?", engine.Placeholder())

	query, args := engine.ColumnsQuery("users")
	assert.Contains(t, query, "INFORMATION_SCHEMA.COLUMNS")
	assert.Equal(t, []interface{}{"shop", "users"}, args)

	query, args = engine.TablesQuery()
	assert.Contains(t, query, "INFORMATION_SCHEMA.TABLES")
	assert.Equal(t, []interface{}{"shop"}, args)
}

func TestMySQLEngine_Unreachable(t *testing.T) {
	// Nothing listens on port 1 of the loopback interface.
	engine := NewEngine(Config{Host: "127.0.0.1", Port: 1, User: "root", Password: "x", DBName: "none"})

	_, err := engine.Open(context.Background())
	assert.ErrorIs(t, err, database.ErrUnreachable)

	exists, err := engine.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

// testEngine returns an engine for the server described by MYSQLITE_TEST_MYSQL_*
// variables, skipping the test when none is configured.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	dbName := os.Getenv("MYSQLITE_TEST_MYSQL_DB")
	password := os.Getenv("MYSQLITE_TEST_MYSQL_PASSWORD")
	if dbName == "" || password == "" {
		t.Skip("Integration test - requires MYSQLITE_TEST_MYSQL_DB and MYSQLITE_TEST_MYSQL_PASSWORD")
	}

	cfg := Config{Host: "localhost", Port: 3306, User: "root", Password: password, DBName: dbName, Charset: "utf8mb4"}
	if host := os.Getenv("MYSQLITE_TEST_MYSQL_HOST"); host != "" {
		cfg.Host = host
	}
	if user := os.Getenv("MYSQLITE_TEST_MYSQL_USER"); user != "" {
		cfg.User = user
	}
	if port, err := strconv.Atoi(os.Getenv("MYSQLITE_TEST_MYSQL_PORT")); err == nil {
		cfg.Port = port
	}
	return NewEngine(cfg)
}

func TestMySQLEngine_FetchReturnsNamedRows(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	conn, err := engine.Open(ctx)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.ExecContext(ctx, "DROP TABLE IF EXISTS adapter_fetch")
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "CREATE TABLE adapter_fetch (id INT PRIMARY KEY, name VARCHAR(32))")
	require.NoError(t, err)
	defer conn.ExecContext(ctx, "DROP TABLE adapter_fetch")

	_, err = conn.ExecContext(ctx, "INSERT INTO adapter_fetch (id, name) VALUES (?, ?)", 1, "Ann")
	require.NoError(t, err)

	rows, err := engine.Fetch(ctx, conn, "SELECT id, name FROM adapter_fetch", nil)
	require.NoError(t, err)
	require.True(t, rows.IsNamed())
	require.Equal(t, 1, rows.Len())
	assert.Equal(t, []string{"id", "name"}, rows.Columns)
	assert.Equal(t, int64(1), rows.Named[0]["id"])
	assert.Equal(t, "Ann", rows.Named[0]["name"])

	query, args := engine.ColumnsQuery("adapter_fetch")
	rows, err = engine.Fetch(ctx, conn, query, args)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rows.FirstColumn())

	info, err := engine.ServerVersion(ctx, conn)
	require.NoError(t, err)
	assert.NotNil(t, info.Version)
}
