package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
	"github.com/satishbabariya/mysqlite-go/internal/watch"
	"github.com/satishbabariya/mysqlite-go/pkg/client"
	"github.com/satishbabariya/mysqlite-go/query/sqlgen"
)

type selectOptions struct {
	where    []string
	whereRaw string
	groupBy  string
	orderBy  []string
	desc     bool
	limit    int
	watch    bool
}

func newSelectCmd(a *app) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select [columns...]",
		Short: "Select rows from the default table",
		Long: `Select rows from the table given with --table.

Columns may be plain names or expressions with an alias, such as "COUNT(*) AS n".
Without columns every column is selected.`,
		Example: `  mysqlite -f app.db -t users select name age --where active=1 --order-by age --desc --limit 10
  mysqlite -f app.db -t users select "age" "COUNT(*) AS n" --group-by age
  mysqlite -f app.db -t users select --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.query(args)
			if err != nil {
				return err
			}
			db, err := a.db()
			if err != nil {
				return err
			}
			if opts.watch {
				return watchSelect(cmd.Context(), db, a.cfg.Client.Filename, q)
			}
			return runSelect(cmd.Context(), db, q)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.where, "where", "w", nil, "equality filter column=value (repeatable)")
	f.StringVar(&opts.whereRaw, "where-raw", "", "raw WHERE condition, inserted verbatim")
	f.StringVar(&opts.groupBy, "group-by", "", "GROUP BY clause")
	f.StringSliceVar(&opts.orderBy, "order-by", nil, "columns to order by")
	f.BoolVar(&opts.desc, "desc", false, "order descending")
	f.IntVarP(&opts.limit, "limit", "n", 0, "maximum number of rows")
	f.BoolVar(&opts.watch, "watch", false, "re-run the query whenever the SQLite file changes")

	return cmd
}

func (o *selectOptions) query(columns []string) (sqlgen.Select, error) {
	where, err := whereFrom(o.where, o.whereRaw)
	if err != nil {
		return sqlgen.Select{}, err
	}
	if o.desc && len(o.orderBy) == 0 {
		return sqlgen.Select{}, fmt.Errorf("--desc requires --order-by")
	}
	if o.limit < 0 {
		return sqlgen.Select{}, fmt.Errorf("--limit must not be negative")
	}

	q := sqlgen.Select{
		Where:   where,
		GroupBy: o.groupBy,
		Limit:   o.limit,
	}
	if len(columns) > 0 {
		q.Columns = columns
	}
	if len(o.orderBy) > 0 {
		direction := sqlgen.ASC
		if o.desc {
			direction = sqlgen.DESC
		}
		q.OrderBy = sqlgen.Order{Columns: o.orderBy, Direction: direction}
	}
	return q, nil
}

func runSelect(ctx context.Context, db *client.DB, q sqlgen.Select) error {
	resp, err := db.Select(ctx, q)
	if err != nil {
		return err
	}
	return printResponse(ctx, resp)
}

func watchSelect(ctx context.Context, db *client.DB, file string, q sqlgen.Select) error {
	if db.Kind() != client.SQLite {
		return fmt.Errorf("--watch needs a SQLite database file")
	}

	w, err := watch.NewWatcher(file, func(ctx context.Context) error {
		ui.PrintSection(time.Now().Format(time.TimeOnly))
		return runSelect(ctx, db, q)
	})
	if err != nil {
		return err
	}

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", file)
	return w.Run(ctx)
}
