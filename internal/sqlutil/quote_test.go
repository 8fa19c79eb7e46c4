package sqlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Simple table name", input: "people", expected: "`people`"},
		{name: "Column with underscore", input: "street_name", expected: "`street_name`"},
		{name: "Empty string", input: "", expected: "``"},
		{name: "Single backtick", input: "my`table", expected: "`my``table`"},
		{name: "Backtick at end", input: "table`", expected: "`table```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteIdentifier(tt.input))
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"people", true},
		{"street_name", true},
		{"Table123", true},
		{"", false},
		{"my table", false},
		{"my-table", false},
		{"db.table", false},
		{"my`table", false},
		{"users; DROP TABLE users--", false},
		{"table(1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidIdentifier(tt.input))
		})
	}
}

func TestQuoteIdentifierSafe(t *testing.T) {
	result, err := QuoteIdentifierSafe("transactions")
	require.NoError(t, err)
	assert.Equal(t, "`transactions`", result)

	result, err = QuoteIdentifierSafe("users; DROP TABLE users--")
	assert.Empty(t, result)
	assert.IsType(t, &InvalidIdentifierError{}, err)
	assert.Contains(t, err.Error(), "invalid identifier")
}

func TestQuoteIdentifiers(t *testing.T) {
	result, err := QuoteIdentifiers([]string{"id", "name", "age", "male"})
	require.NoError(t, err)
	assert.Equal(t, "`id`, `name`, `age`, `male`", result)

	_, err = QuoteIdentifiers([]string{"id", "bad name"})
	assert.Error(t, err)
}

func TestInvalidIdentifierError_Error(t *testing.T) {
	err := &InvalidIdentifierError{Name: "bad@table"}
	expected := "invalid identifier: bad@table (must contain only alphanumeric characters and underscores)"
	assert.Equal(t, expected, err.Error())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "", Placeholders(-1))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestRowPlaceholders(t *testing.T) {
	assert.Equal(t, "", RowPlaceholders(0, 3))
	assert.Equal(t, "", RowPlaceholders(2, 0))
	assert.Equal(t, "(?)", RowPlaceholders(1, 1))
	assert.Equal(t, "(?, ?), (?, ?), (?, ?)", RowPlaceholders(3, 2))
}

func TestInsertStatement(t *testing.T) {
	stmt, err := InsertStatement("jobs", []string{"job"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `jobs` (`job`) VALUES (?), (?)", stmt)

	stmt, err = InsertStatement("addresses", []string{"postcode", "country", "city", "street_name"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `addresses` (`postcode`, `country`, `city`, `street_name`) VALUES (?, ?, ?, ?)", stmt)
}

func TestInsertStatement_Errors(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []string
		rows    int
	}{
		{name: "no rows", table: "jobs", columns: []string{"job"}, rows: 0},
		{name: "no columns", table: "jobs", columns: nil, rows: 1},
		{name: "bad table", table: "jobs;", columns: []string{"job"}, rows: 1},
		{name: "bad column", table: "jobs", columns: []string{"job title"}, rows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InsertStatement(tt.table, tt.columns, tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestSelectStatement(t *testing.T) {
	stmt, err := SelectStatement("people", []string{"id", "name"}, "id")
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `name` FROM `people` ORDER BY `id`", stmt)

	stmt, err = SelectStatement("jobs", []string{"job"}, "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT `job` FROM `jobs`", stmt)

	_, err = SelectStatement("people", []string{"id"}, "id desc")
	assert.Error(t, err)
}

func TestDropTableStatement(t *testing.T) {
	stmt, err := DropTableStatement("transactions")
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE IF EXISTS `transactions`", stmt)

	_, err = DropTableStatement("")
	assert.Error(t, err)
}
