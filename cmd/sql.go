package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/viant/mlnotes/engine"
	"github.com/viant/mlnotes/knntab"
	"github.com/viant/mlnotes/store"
)

var tableSafe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type sqlOptions struct {
	db        string
	k         int
	index     string
	normalize normalizeFlags
}

func newSQLCmd(a *app) *cobra.Command {
	o := &sqlOptions{}
	cmd := &cobra.Command{
		Use:   "sql <statement>",
		Short: "Run SQL with a <set>_knn virtual table for every stored training set",
		Example: `  mlnotes sql --db notes.db --k 3 \
    "SELECT rank, name, label, distance, prediction FROM foods_knn WHERE query MATCH '6,4'"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSQL(cmd, o, args[0])
		},
	}
	cmd.Flags().StringVar(&o.db, "db", "", "SQLite database holding imported training sets")
	cmd.Flags().IntVarP(&o.k, "k", "k", 1, "default number of neighbors")
	cmd.Flags().StringVar(&o.index, "index", "brute", "brute or cover")
	o.normalize.register(cmd)
	return cmd
}

func (a *app) runSQL(cmd *cobra.Command, o *sqlOptions, statement string) error {
	if !cmd.Flags().Changed("db") {
		o.db = a.cfg.Database
	}
	if !cmd.Flags().Changed("k") {
		o.k = a.cfg.K
	}
	if !cmd.Flags().Changed("index") {
		o.index = a.cfg.Index
	}
	if o.db == "" {
		return fmt.Errorf("--db is required")
	}
	if _, _, _, err := o.normalize.resolve(cmd, a.cfg); err != nil {
		return err
	}
	if _, err := newIndex(o.index); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := engine.Open(o.db)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := knntab.Register(db); err != nil {
		return err
	}
	st, err := store.NewSQLiteStore(ctx, db)
	if err != nil {
		return err
	}
	names, err := knntab.PublishStore(ctx, st)
	if err != nil {
		return err
	}
	defer func() {
		for _, name := range names {
			knntab.Withdraw(name)
		}
	}()

	// temp tables live on one connection
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	for _, name := range names {
		if !tableSafe.MatchString(name) {
			a.log.Warnw("set name is not a plain identifier; no knn table created", "set", name)
			continue
		}
		ddl := fmt.Sprintf("CREATE VIRTUAL TABLE temp.%s_knn USING knn(%s, %s)", name, name, strings.Join(o.tableOptions(), ", "))
		a.log.Debugw("knn table", "ddl", ddl)
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("cannot create %s_knn: %w", name, err)
		}
	}
	return printRows(ctx, cmd.OutOrStdout(), conn, statement)
}

func (o *sqlOptions) tableOptions() []string {
	opts := []string{"k=" + strconv.Itoa(o.k)}
	if o.index != "" {
		opts = append(opts, "index="+strings.ToLower(o.index))
	}
	if o.normalize.strategy != "" {
		opts = append(opts, "normalize="+o.normalize.strategy)
	}
	if len(o.normalize.features) > 0 {
		opts = append(opts, "features="+strings.Join(o.normalize.features, "|"))
	}
	if o.normalize.skipDegenerate {
		opts = append(opts, "skip_degenerate=true")
	}
	return opts
}

func printRows(ctx context.Context, w io.Writer, conn *sql.Conn, statement string) error {
	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		cells := make([]string, len(values))
		for i, v := range values {
			switch val := v.(type) {
			case nil:
				cells[i] = "NULL"
			case []byte:
				cells[i] = string(val)
			case float64:
				cells[i] = strconv.FormatFloat(val, 'f', 4, 64)
			default:
				cells[i] = fmt.Sprint(val)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return tw.Flush()
}
