// Package sqlite reads record collections from SQLite tables and writes them
// back. It works against any *sql.DB opened with a SQLite driver such as
// github.com/mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/query"
	"github.com/asaidimu/go-qsdata/core/schema"
)

// dbRunner abstracts the common methods of *sql.DB and *sql.Tx.
type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SourceOptions narrows what a Source loads.
type SourceOptions struct {
	// Columns restricts the selected columns. Empty selects all of them.
	Columns []string
	// Limit caps the number of rows. Zero loads every row.
	Limit int
}

// Source loads a table as a record collection. It implements query.Source.
//
// INTEGER values become integer record values and TEXT or BLOB values
// become strings. NULL leaves the key out of the record. REAL values have
// no record representation and fail the load.
type Source struct {
	db      *sql.DB
	table   string
	options SourceOptions
	logger  *zap.Logger
}

var _ query.Source = (*Source)(nil)

// NewSource creates a Source reading table from db.
func NewSource(db *sql.DB, table string, logger *zap.Logger, options *SourceOptions) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = &SourceOptions{}
	}
	return &Source{
		db:      db,
		table:   table,
		options: *options,
		logger:  logger,
	}
}

// Load implements query.Source.
func (s *Source) Load(ctx context.Context) (schema.Collection, error) {
	if s.options.Limit < 0 {
		return nil, core.InvalidArgument("limit should not be negative, got %d", s.options.Limit)
	}

	exists, err := tableExists(ctx, s.db, s.table)
	if err != nil {
		return nil, fmt.Errorf("error accessing database: %w", err)
	}
	if !exists {
		return nil, core.InvalidArgument("table %q does not exist", s.table)
	}

	sqlQuery, params := selectSQL(s.table, s.options.Columns, s.options.Limit)
	s.logger.Debug("Executing SQL SELECT", zap.String("sql", sqlQuery), zap.Any("params", params))

	rows, err := s.db.QueryContext(ctx, sqlQuery, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SELECT query: %w", err)
	}
	defer rows.Close()
	return readRows(rows)
}

// readRows reads all rows from a *sql.Rows object and converts them into a
// collection.
func readRows(rows *sql.Rows) (schema.Collection, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := make(schema.Collection, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(schema.Record, len(columns))
		for i, col := range columns {
			if values[i] == nil {
				continue
			}
			v, err := columnValue(values[i])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", len(results), col, err)
			}
			record[col] = v
		}
		results = append(results, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return results, nil
}

func columnValue(val any) (schema.Value, error) {
	switch v := val.(type) {
	case int64:
		return schema.IntValue(v), nil
	case bool:
		if v {
			return schema.IntValue(1), nil
		}
		return schema.IntValue(0), nil
	case string:
		return schema.StringValue(v), nil
	case []byte:
		return schema.StringValue(v), nil
	case time.Time:
		return schema.StringValue(v.Format(time.RFC3339Nano)), nil
	case float64:
		return nil, core.InvalidArgument("real value %v cannot be stored in a record", v)
	default:
		return nil, core.InvalidArgument("unsupported column type %T", val)
	}
}

// tableExists checks if a table exists in the database.
func tableExists(ctx context.Context, db dbRunner, table string) (bool, error) {
	var name string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name = ?;", table).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
