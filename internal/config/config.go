// Package config loads the mysqlite CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/satishbabariya/mysqlite-go/pkg/client"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the file system configuration is read from.
var AppFs = afero.NewOsFs()

// Configuration keys. Environment variables use the MYSQLITE_ prefix and
// upper case, e.g. MYSQLITE_LOG_FORMAT.
const (
	KeyDB        = "db"
	KeyUser      = "user"
	KeyPassword  = "password"
	KeyHost      = "host"
	KeyPort      = "port"
	KeyCharset   = "charset"
	KeyFile      = "file"
	KeyTable     = "table"
	KeyDebug     = "debug"
	KeyLogFormat = "log_format"
)

// Config holds the CLI configuration.
type Config struct {
	Client    client.Config
	Debug     bool
	LogFormat string

	// File is the configuration file that was read, if any.
	File string
}

// Loader resolves configuration from a file, the environment and dotenv
// files. Flags are bound to Viper() by the caller and take precedence.
type Loader struct {
	fs afero.Fs
	v  *viper.Viper
}

// NewLoader returns a Loader reading from fs, or AppFs when fs is nil.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = AppFs
	}
	v := viper.New()
	v.SetFs(fs)
	return &Loader{fs: fs, v: v}
}

// Viper returns the underlying instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads the configuration. An explicit file must exist; otherwise
// .mysqlite.yaml is searched in the working directory, the home directory
// and ~/.config/mysqlite, and a missing file is not an error.
func (l *Loader) Load(file string) (*Config, error) {
	v := l.v

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".mysqlite")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "mysqlite"))
		}
	}

	v.SetEnvPrefix("MYSQLITE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFormat, "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := l.loadDotenv(); err != nil {
		return nil, err
	}

	return &Config{
		Client: client.Config{
			DBName:   v.GetString(KeyDB),
			User:     v.GetString(KeyUser),
			Password: v.GetString(KeyPassword),
			Host:     v.GetString(KeyHost),
			Port:     v.GetInt(KeyPort),
			Charset:  v.GetString(KeyCharset),
			Filename: v.GetString(KeyFile),
			Table:    v.GetString(KeyTable),
		},
		Debug:     v.GetBool(KeyDebug),
		LogFormat: v.GetString(KeyLogFormat),
		File:      v.ConfigFileUsed(),
	}, nil
}

// loadDotenv exports .env and then .env.local into the environment.
// Variables already set in the environment are kept; .env.local overrides
// values that came from .env.
func (l *Loader) loadDotenv() error {
	values := map[string]string{}
	for _, name := range []string{".env", ".env.local"} {
		env, err := l.readDotenv(name)
		if err != nil {
			return err
		}
		for k, val := range env {
			values[k] = val
		}
	}

	for k, val := range values {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return fmt.Errorf("failed to export %s: %w", k, err)
		}
	}
	return nil
}

func (l *Loader) readDotenv(name string) (map[string]string, error) {
	f, err := l.fs.Open(name)
	if err != nil {
		// Don't fail if the file is absent
		return nil, nil
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return env, nil
}
