package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
)

type filterOptions struct {
	where    []string
	whereRaw string
	all      bool
}

func (o *filterOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&o.where, "where", "w", nil, "equality filter column=value (repeatable)")
	f.StringVar(&o.whereRaw, "where-raw", "", "raw WHERE condition, inserted verbatim")
	f.BoolVar(&o.all, "all", false, "affect every row of the table")
}

// predicate requires a filter unless --all is given.
func (o *filterOptions) predicate() (interface{}, error) {
	where, err := whereFrom(o.where, o.whereRaw)
	if err != nil {
		return nil, err
	}
	switch {
	case where == nil && !o.all:
		return nil, fmt.Errorf("refusing to touch every row: pass --where, --where-raw or --all")
	case where != nil && o.all:
		return nil, fmt.Errorf("--all cannot be combined with a filter")
	}
	return where, nil
}

func newInsertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "insert column=value...",
		Short:   "Insert one row into the default table",
		Example: `  mysqlite -f app.db -t users insert name=Ann age=30 nickname=null`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args, false)
			if err != nil {
				return err
			}
			db, err := a.db()
			if err != nil {
				return err
			}
			res, err := db.Insert(cmd.Context(), "", values)
			if err != nil {
				return err
			}
			if res.LastInsertID != 0 {
				ui.PrintSuccess("Inserted %d row (id %d)", res.RowsAffected, res.LastInsertID)
				return nil
			}
			ui.PrintSuccess("Inserted %d row", res.RowsAffected)
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	opts := &filterOptions{}
	cmd := &cobra.Command{
		Use:     "update column=value...",
		Short:   "Update rows of the default table",
		Example: `  mysqlite -f app.db -t users update age=31 --where name=Ann`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseAssignments(args, false)
			if err != nil {
				return err
			}
			where, err := opts.predicate()
			if err != nil {
				return err
			}
			db, err := a.db()
			if err != nil {
				return err
			}
			res, err := db.Update(cmd.Context(), "", set, where)
			if err != nil {
				return err
			}
			ui.PrintSuccess("Updated %d rows", res.RowsAffected)
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	opts := &filterOptions{}
	cmd := &cobra.Command{
		Use:     "delete",
		Short:   "Delete rows of the default table",
		Example: `  mysqlite -f app.db -t users delete --where name=Ann`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			where, err := opts.predicate()
			if err != nil {
				return err
			}
			db, err := a.db()
			if err != nil {
				return err
			}
			res, err := db.Delete(cmd.Context(), "", where)
			if err != nil {
				return err
			}
			ui.PrintSuccess("Deleted %d rows", res.RowsAffected)
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func newCreateTableCmd(a *app) *cobra.Command {
	var fields string
	cmd := &cobra.Command{
		Use:   "create-table name [column=type...]",
		Short: "Create a table",
		Example: `  mysqlite -f app.db create-table users id="INTEGER PRIMARY KEY" name=TEXT age=INTEGER
  mysqlite -f app.db create-table users --fields "id INTEGER PRIMARY KEY, name TEXT"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var definition interface{}
			switch {
			case fields != "" && len(args) > 1:
				return fmt.Errorf("--fields cannot be combined with column=type arguments")
			case fields != "":
				definition = fields
			case len(args) > 1:
				columns, err := parseAssignments(args[1:], true)
				if err != nil {
					return err
				}
				definition = columns
			default:
				return fmt.Errorf("no columns: pass column=type arguments or --fields")
			}

			db, err := a.db()
			if err != nil {
				return err
			}
			if _, err := db.CreateTable(cmd.Context(), args[0], definition); err != nil {
				return err
			}
			ui.PrintSuccess("Created table %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&fields, "fields", "", "raw column definitions")
	return cmd
}
