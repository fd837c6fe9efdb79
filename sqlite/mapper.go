package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/schema"
)

// column is a table column inferred from a collection.
type column struct {
	name    string
	sqlType string
}

// WriterOptions controls how Save creates tables.
type WriterOptions struct {
	// DropIfExists replaces an existing table instead of appending to it.
	DropIfExists bool
}

// DefaultWriterOptions returns options that append to existing tables.
func DefaultWriterOptions() *WriterOptions {
	return &WriterOptions{DropIfExists: false}
}

// Writer stores record collections as SQLite tables.
type Writer struct {
	db      *sql.DB
	options *WriterOptions
	logger  *zap.Logger
}

// NewWriter creates a Writer on db.
func NewWriter(db *sql.DB, logger *zap.Logger, options *WriterOptions) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = DefaultWriterOptions()
	}
	return &Writer{db: db, options: options, logger: logger}
}

// inferColumns derives the table columns from every key in c, sorted by
// name. A key holding only integers gets INTEGER, only strings gets TEXT.
// Mixed keys are declared without a type so that SQLite keeps each value's
// storage class.
func inferColumns(c schema.Collection) ([]column, error) {
	kinds := make(map[string]schema.Kind)
	for i, record := range c {
		for key, v := range record {
			kind := schema.KindOf(v)
			if kind == schema.KindInvalid {
				return nil, core.InvalidArgument("record %d: key %q holds no value", i, key)
			}
			if prev, ok := kinds[key]; ok && prev != kind {
				kinds[key] = schema.KindInvalid
				continue
			}
			if _, ok := kinds[key]; !ok {
				kinds[key] = kind
			}
		}
	}

	columns := make([]column, 0, len(kinds))
	for name, kind := range kinds {
		col := column{name: name}
		switch kind {
		case schema.KindInt:
			col.sqlType = "INTEGER"
		case schema.KindString:
			col.sqlType = "TEXT"
		}
		columns = append(columns, col)
	}
	slices.SortFunc(columns, func(a, b column) int {
		return strings.Compare(a.name, b.name)
	})
	return columns, nil
}

// Save writes c into table, creating the table when needed. The write is
// transactional: either every record is stored or none is.
func (w *Writer) Save(ctx context.Context, table string, c schema.Collection) (int, error) {
	if table == "" {
		return 0, core.InvalidArgument("table name cannot be empty")
	}
	columns, err := inferColumns(c)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, core.InvalidArgument("collection has no keys to store")
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if w.options.DropIfExists {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoteIdentifier(table))); err != nil {
			return 0, fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	ddl := createTableSQL(table, columns, true)
	w.logger.Debug("Executing DDL", zap.String("sql", ddl))
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare INSERT: %w", err)
	}
	defer stmt.Close()

	for i, record := range c {
		params := make([]any, len(columns))
		for j, col := range columns {
			switch v := record[col.name].(type) {
			case schema.IntValue:
				params[j] = int64(v)
			case schema.StringValue:
				params[j] = string(v)
			default:
				params[j] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, params...); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	w.logger.Info("Saved collection", zap.String("table", table), zap.Int("records", len(c)))
	return len(c), nil
}
