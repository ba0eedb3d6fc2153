// Package commands implements the mysqlite command line.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/config"
	"github.com/satishbabariya/mysqlite-go/internal/debug"
	"github.com/satishbabariya/mysqlite-go/internal/ui"
	"github.com/satishbabariya/mysqlite-go/pkg/client"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	loader      *config.Loader
	cfg         *config.Config
	configFile  string
	askPassword bool

	// prompt reads a password interactively.
	prompt func(message string) (string, error)
}

// flagKeys maps global flags to configuration keys.
var flagKeys = map[string]string{
	"db":         config.KeyDB,
	"user":       config.KeyUser,
	"password":   config.KeyPassword,
	"host":       config.KeyHost,
	"port":       config.KeyPort,
	"charset":    config.KeyCharset,
	"file":       config.KeyFile,
	"table":      config.KeyTable,
	"debug":      config.KeyDebug,
	"log-format": config.KeyLogFormat,
}

// Execute runs the command line and prints any error.
func Execute(ctx context.Context) error {
	err := NewRootCmd(nil).ExecuteContext(ctx)
	if err != nil {
		ui.PrintError("%v", err)
	}
	return err
}

// NewRootCmd builds the command tree. loader may be nil.
func NewRootCmd(loader *config.Loader) *cobra.Command {
	if loader == nil {
		loader = config.NewLoader(nil)
	}
	a := &app{loader: loader, prompt: askPassword}

	root := &cobra.Command{
		Use:   "mysqlite",
		Short: "Query MySQL and SQLite databases",
		Long: `mysqlite runs single statements against a MySQL database or a SQLite file.

Every command opens its own connection, executes one auto-committed statement
and closes the connection again. Configure the database with flags, MYSQLITE_*
environment variables, a .env file or .mysqlite.yaml.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "config file (default .mysqlite.yaml)")
	f.String("db", "", "MySQL database name")
	f.String("user", "", "MySQL user (default root)")
	f.String("password", "", "MySQL password")
	f.BoolVar(&a.askPassword, "ask-password", false, "prompt for the MySQL password")
	f.String("host", "", "MySQL host (default localhost)")
	f.Int("port", 0, "MySQL port (default 3306)")
	f.String("charset", "", "MySQL connection charset (default utf8mb4)")
	f.StringP("file", "f", "", "SQLite database file")
	f.StringP("table", "t", "", "default table")
	f.Bool("debug", false, "log statements to stderr")
	f.String("log-format", "text", "log format: text or json")

	for name, key := range flagKeys {
		if err := loader.Viper().BindPFlag(key, f.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newTablesCmd(a),
		newColumnsCmd(a),
		newDescribeCmd(a),
		newSelectCmd(a),
		newInsertCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newCreateTableCmd(a),
		newQueryCmd(a),
		newExecCmd(a),
		newPingCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := a.loader.Load(a.configFile)
	if err != nil {
		return err
	}

	format := debug.Format(cfg.LogFormat)
	if format != debug.Text && format != debug.JSON {
		return fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}
	debug.Configure(cfg.Debug, os.Stderr, format)
	if cfg.File != "" {
		debug.Debug("loaded config", "file", cfg.File)
	}

	if a.askPassword {
		password, err := a.prompt("MySQL password:")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		cfg.Client.Password = password
	}

	a.cfg = cfg
	return nil
}

func (a *app) db() (*client.DB, error) {
	return client.New(a.cfg.Client)
}

func askPassword(message string) (string, error) {
	var password string
	err := survey.AskOne(&survey.Password{Message: message}, &password, survey.WithStdio(os.Stdin, os.Stderr, os.Stderr))
	return password, err
}
