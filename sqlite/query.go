package sqlite

import (
	"fmt"
	"strings"
)

// quoteIdentifier safely quotes an identifier, such as a table or column name,
// to prevent SQL injection and to handle names that might be keywords or contain
// special characters.
func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// selectSQL builds the SELECT statement for a table. An empty column list
// selects every column; a positive limit adds a LIMIT parameter.
func selectSQL(table string, columns []string, limit int) (string, []any) {
	cols := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = quoteIdentifier(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	// rowid keeps rows in insertion order for ordinary tables.
	sql := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", cols, quoteIdentifier(table))
	if limit > 0 {
		return sql + " LIMIT ?;", []any{limit}
	}
	return sql + ";", nil
}

// createTableSQL builds the DDL for a table holding the given columns.
func createTableSQL(table string, columns []column, ifNotExists bool) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdentifier(c.name)
		if c.sqlType != "" {
			defs[i] += " " + c.sqlType
		}
	}

	exists := ""
	if ifNotExists {
		exists = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE TABLE %s%s (%s);", exists, quoteIdentifier(table), strings.Join(defs, ", "))
}

// insertSQL builds a single-row INSERT statement for the given columns.
func insertSQL(table string, columns []column) string {
	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quoteIdentifier(c.name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		quoteIdentifier(table), strings.Join(names, ", "), strings.Join(placeholders, ", "))
}
