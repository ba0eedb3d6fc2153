// Package client provides client configuration options.
package client

import (
	"log/slog"

	"github.com/spf13/afero"
)

// Config contains the connection settings of a DB.
//
// Exactly one backend must be fully described: DBName and Password select
// MySQL, Filename selects SQLite.
type Config struct {
	// DBName is the MySQL database (schema) name.
	DBName string

	// User is the MySQL user.
	// Default: root
	User string

	// Password is the MySQL password.
	Password string

	// Host is the MySQL server host.
	// Default: localhost
	Host string

	// Port is the MySQL server port.
	// Default: 3306
	Port int

	// Charset is the MySQL connection character set.
	// Default: utf8mb4
	Charset string

	// Filename is the SQLite database file.
	Filename string

	// Table is used by operations that are not given a table.
	Table string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		User:    "root",
		Host:    "localhost",
		Port:    3306,
		Charset: "utf8mb4",
	}
}

// withFallback fills every zero field of c from fallback.
func (c Config) withFallback(fallback Config) Config {
	if c.DBName == "" {
		c.DBName = fallback.DBName
	}
	if c.User == "" {
		c.User = fallback.User
	}
	if c.Password == "" {
		c.Password = fallback.Password
	}
	if c.Host == "" {
		c.Host = fallback.Host
	}
	if c.Port == 0 {
		c.Port = fallback.Port
	}
	if c.Charset == "" {
		c.Charset = fallback.Charset
	}
	if c.Filename == "" {
		c.Filename = fallback.Filename
	}
	if c.Table == "" {
		c.Table = fallback.Table
	}
	return c
}

type options struct {
	defaults Config
	logger   *slog.Logger
	fs       afero.Fs
}

// Option is a function that configures the client.
type Option func(*options)

// WithDefaults sets application-wide fallback values. They apply to every
// field the explicit Config leaves empty, and take precedence over the
// built-in defaults.
func WithDefaults(defaults Config) Option {
	return func(o *options) {
		o.defaults = defaults
	}
}

// WithLogger sets the logger statements are logged to at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFs sets the file system used to check that a SQLite file exists.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}
