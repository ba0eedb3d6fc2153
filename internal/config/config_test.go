package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetOnCleanup(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if _, ok := os.LookupEnv(k); ok {
			t.Fatalf("%s is set in the test environment", k)
		}
		k := k
		t.Cleanup(func() { os.Unsetenv(k) })
	}
}

func TestLoadExplicitFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf.yaml", []byte(`
db: shop
user: app
password: secret
host: db.internal
port: 3307
table: orders
debug: true
log_format: json
`), 0o644))

	cfg, err := NewLoader(fs).Load("conf.yaml")
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.Client.DBName)
	assert.Equal(t, "app", cfg.Client.User)
	assert.Equal(t, "secret", cfg.Client.Password)
	assert.Equal(t, "db.internal", cfg.Client.Host)
	assert.Equal(t, 3307, cfg.Client.Port)
	assert.Equal(t, "orders", cfg.Client.Table)
	assert.Empty(t, cfg.Client.Filename)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "conf.yaml", cfg.File)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).Load("nope.yaml")
	assert.Error(t, err)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(wd, ".mysqlite.yaml"), []byte("file: app.db\n"), 0o644))

	cfg, err := NewLoader(fs).Load("")
	require.NoError(t, err)
	assert.Equal(t, "app.db", cfg.Client.Filename)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Debug)
}

func TestLoadWithoutAnyFile(t *testing.T) {
	cfg, err := NewLoader(afero.NewMemMapFs()).Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.Client.Filename)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf.yaml", []byte("file: from-file.db\ntable: a\n"), 0o644))
	t.Setenv("MYSQLITE_FILE", "from-env.db")

	cfg, err := NewLoader(fs).Load("conf.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Client.Filename)
	assert.Equal(t, "a", cfg.Client.Table)
}

func TestDotenv(t *testing.T) {
	unsetOnCleanup(t, "MYSQLITE_TABLE", "MYSQLITE_LOG_FORMAT")
	t.Setenv("MYSQLITE_FILE", "kept.db")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("MYSQLITE_FILE=ignored.db\nMYSQLITE_TABLE=users\nMYSQLITE_LOG_FORMAT=text\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte("MYSQLITE_LOG_FORMAT=json\n"), 0o644))

	cfg, err := NewLoader(fs).Load("")
	require.NoError(t, err)
	assert.Equal(t, "kept.db", cfg.Client.Filename)
	assert.Equal(t, "users", cfg.Client.Table)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFlagsTakePrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "conf.yaml", []byte("table: a\n"), 0o644))

	l := NewLoader(fs)
	l.Viper().Set(KeyTable, "b")

	cfg, err := l.Load("conf.yaml")
	require.NoError(t, err)
	assert.Equal(t, "b", cfg.Client.Table)
}
