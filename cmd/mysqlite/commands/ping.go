package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
	"github.com/satishbabariya/mysqlite-go/pkg/client"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.db()
			if err != nil {
				return err
			}

			if err := requireDatabase(ctx, a, db); err != nil {
				return err
			}

			info, err := db.Ping(ctx)
			if err != nil {
				return err
			}
			ui.PrintSuccess("Connected")
			ui.PrintKeyValue("Engine", info.Kind)
			ui.PrintKeyValue("Server Version", info.Raw)
			if info.Version != nil {
				ui.PrintKeyValue("Parsed Version", info.Version.String())
			}
			return nil
		},
	}
}

// requireDatabase fails when the database is missing. Opening a missing
// SQLite file would create it.
func requireDatabase(ctx context.Context, a *app, db *client.DB) error {
	exists, err := db.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if db.Kind() == client.SQLite {
		return fmt.Errorf("database file %s does not exist", a.cfg.Client.Filename)
	}
	return fmt.Errorf("%w: %s", client.ErrUnreachable, a.cfg.Client.DBName)
}
