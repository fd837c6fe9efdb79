package cmd

import (
	"bytes"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/asaidimu/go-qsdata/core/query"
	"github.com/asaidimu/go-qsdata/core/schema"
	"github.com/asaidimu/go-qsdata/sqlite"
)

type sourceFlags struct {
	data    string
	db      string
	table   string
	columns []string
	limit   int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "JSON file holding an array of records")
	cmd.Flags().StringVar(&f.db, "db", "", "SQLite database file")
	cmd.Flags().StringVar(&f.table, "table", "", "table to read from --db")
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "columns to read from --table")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum rows to read from --table")
	cmd.MarkFlagsMutuallyExclusive("data", "db")
	cmd.MarkFlagsRequiredTogether("db", "table")
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newQueryCommand(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "query [dsl|-]",
		Short: "Run a filter/sort/aggregate pipeline over records",
		Long: `Runs a query pipeline over records from a JSON file (--data) or a
SQLite table (--db and --table).

Example:
  qsdata query --data people.json \
    '{"filters": [{"field": "city", "operator": "eq", "value": "Paris"}], "sort": {"field": "age"}}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}
			dsl := &query.QueryDSL{}
			if len(bytes.TrimSpace(raw)) > 0 {
				if dsl, err = query.ParseQueryDSL(raw); err != nil {
					return err
				}
			}

			var source query.Source
			switch {
			case src.data != "":
				data, err := readFile(src.data)
				if err != nil {
					return err
				}
				records, err := schema.DecodeCollection(data)
				if err != nil {
					return err
				}
				source = query.StaticSource(records)
			case src.db != "":
				db, err := openSQLite(src.db)
				if err != nil {
					return err
				}
				defer db.Close()
				source = sqlite.NewSource(db, src.table, a.logger.Named("sqlite"), &sqlite.SourceOptions{
					Columns: src.columns,
					Limit:   src.limit,
				})
			default:
				return fmt.Errorf("one of --data or --db is required")
			}

			result, err := query.NewDataProcessor(a.logger.Named("query")).ProcessSource(cmd.Context(), source, dsl)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	src.register(cmd)
	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	var (
		db      string
		table   string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Store a JSON array of records in a SQLite table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = readInput(cmd, args, 0)
			} else {
				data, err = readFile(args[0])
			}
			if err != nil {
				return err
			}
			records, err := schema.DecodeCollection(data)
			if err != nil {
				return err
			}

			conn, err := openSQLite(db)
			if err != nil {
				return err
			}
			defer conn.Close()

			n, err := sqlite.NewWriter(conn, a.logger.Named("sqlite"), &sqlite.WriterOptions{DropIfExists: replace}).
				Save(cmd.Context(), table, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", n, table)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite database file")
	cmd.Flags().StringVar(&table, "table", "", "destination table")
	cmd.Flags().BoolVar(&replace, "replace", false, "drop the table before importing")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}
