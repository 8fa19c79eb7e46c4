// Package sqlutil builds the SQL fragments used to load generated data.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// QuoteIdentifier quotes an identifier (table name, column name) with backticks.
// It escapes any existing backticks by doubling them. Both MySQL and SQLite
// accept backtick quoting.
// Example: "people" -> "`people`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex restricts identifiers to alphanumeric and underscore.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name only contains alphanumeric characters
// and underscores.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes an identifier after validating it.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// QuoteIdentifiers validates and quotes names, joined with ", ".
func QuoteIdentifiers(names []string) (string, error) {
	quoted := make([]string, len(names))
	for i, n := range names {
		q, err := QuoteIdentifierSafe(n)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return strings.Join(quoted, ", "), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

// Placeholders returns n comma separated "?" placeholders.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// RowPlaceholders returns rows parenthesized groups of cols placeholders,
// e.g. "(?, ?), (?, ?)" for rows=2, cols=2.
func RowPlaceholders(rows, cols int) string {
	if rows <= 0 || cols <= 0 {
		return ""
	}
	row := "(" + Placeholders(cols) + ")"
	return strings.TrimSuffix(strings.Repeat(row+", ", rows), ", ")
}

// InsertStatement renders a multi-row INSERT for rows rows of columns.
func InsertStatement(table string, columns []string, rows int) (string, error) {
	if rows <= 0 {
		return "", fmt.Errorf("insert into %s: no rows", table)
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("insert into %s: no columns", table)
	}
	qt, err := QuoteIdentifierSafe(table)
	if err != nil {
		return "", err
	}
	qc, err := QuoteIdentifiers(columns)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", qt, qc, RowPlaceholders(rows, len(columns))), nil
}

// SelectStatement renders a SELECT of columns from table ordered by orderBy.
func SelectStatement(table string, columns []string, orderBy string) (string, error) {
	qt, err := QuoteIdentifierSafe(table)
	if err != nil {
		return "", err
	}
	qc, err := QuoteIdentifiers(columns)
	if err != nil {
		return "", err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", qc, qt)
	if orderBy != "" {
		qo, err := QuoteIdentifierSafe(orderBy)
		if err != nil {
			return "", err
		}
		query += " ORDER BY " + qo
	}
	return query, nil
}

// DropTableStatement renders DROP TABLE IF EXISTS for table.
func DropTableStatement(table string) (string, error) {
	qt, err := QuoteIdentifierSafe(table)
	if err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + qt, nil
}
