package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
	"github.com/satishbabariya/mysqlite-go/pkg/client"
)

func newQueryCmd(a *app) *cobra.Command {
	var columns []string
	cmd := &cobra.Command{
		Use:   "query sql [args...]",
		Short: "Run a raw SELECT and print its rows",
		Long: `Run a raw SELECT. Additional arguments are bound to the ? placeholders.

On SQLite, column names are taken from the table following FROM, which only
works when every column of that table is selected. Name the result columns
with --columns otherwise.`,
		Example: `  mysqlite -f app.db query "SELECT * FROM users WHERE age > ?" 30
  mysqlite -f app.db query "SELECT name, COUNT(*) FROM users GROUP BY name" --columns name,n`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var resp *client.Response
			if len(columns) > 0 {
				resp, err = db.RawSelectNamed(ctx, columns, args[0], parseValues(args[1:])...)
			} else {
				resp, err = db.RawSelect(ctx, args[0], parseValues(args[1:])...)
			}
			if errors.Is(err, client.ErrUnknownColumns) {
				ui.PrintWarning("Result columns could not be named; pass --columns")
			}
			if err != nil {
				return err
			}
			return printResponse(ctx, resp)
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "names of the result columns, in order")
	return cmd
}

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "exec sql [args...]",
		Short:   "Run a raw statement that returns no rows",
		Example: `  mysqlite -f app.db exec "UPDATE users SET age = age + 1 WHERE name = ?" Ann`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			res, err := db.RawCommit(cmd.Context(), args[0], parseValues(args[1:])...)
			if err != nil {
				return err
			}
			ui.PrintSuccess("Committed, %d rows affected", res.RowsAffected)
			return nil
		},
	}
}
