package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			tables, err := db.Tables(cmd.Context())
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				ui.PrintInfo("No tables")
				return nil
			}
			ui.PrintList(tables)
			return nil
		},
	}
}

func newColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns [table]",
		Short: "List the columns of a table in declaration order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			table := ""
			if len(args) > 0 {
				table = args[0]
			}
			columns, err := db.Columns(cmd.Context(), table)
			if err != nil {
				return err
			}
			ui.PrintList(columns)
			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Describe every table of the database",
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
			tables, err := db.Tables(ctx)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n", databaseName(a))
			fmt.Fprintf(&b, "%s, %d tables\n\n", info, len(tables))
			for _, table := range tables {
				columns, err := db.Columns(ctx, table)
				if err != nil {
					return err
				}
				rows := make([][]string, len(columns))
				for i, col := range columns {
					rows[i] = []string{strconv.Itoa(i + 1), col}
				}
				fmt.Fprintf(&b, "## %s\n\n%s\n", table, ui.MarkdownTable([]string{"#", "column"}, rows))
			}
			return ui.PrintMarkdown(b.String())
		},
	}
}

func databaseName(a *app) string {
	if a.cfg.Client.Filename != "" {
		return a.cfg.Client.Filename
	}
	return a.cfg.Client.DBName
}
