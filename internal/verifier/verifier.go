// Package verifier checks that a loaded dataset matches what is stored in the
// target database.
package verifier

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
	"github.com/dbsmedya/godatagen/internal/graph"
	"github.com/dbsmedya/godatagen/internal/logger"
	"github.com/dbsmedya/godatagen/internal/sqlutil"
)

// Method defines how to verify data integrity.
type Method string

const (
	// MethodCount compares row counts (fast)
	MethodCount Method = "count"
	// MethodSHA256 compares a SHA256 hash over every row (slower but thorough)
	MethodSHA256 Method = "sha256"
	// MethodSkip skips verification entirely
	MethodSkip Method = "skip"
)

// ParseMethod maps a config value to a Method. Empty means MethodCount.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "":
		return MethodCount, nil
	case MethodCount, MethodSHA256, MethodSkip:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unsupported verification method: %s", s)
	}
}

// Result holds verification results for a single table.
type Result struct {
	Table         string
	Method        Method
	ExpectedCount int64
	ActualCount   int64
	ExpectedHash  string
	ActualHash    string
	Match         bool
	ErrorMessage  string
}

// Stats contains overall verification statistics.
type Stats struct {
	TablesVerified int
	TablesPassed   int
	TablesFailed   int
	TotalRows      int64
	Method         Method
	Results        []Result
}

// Verifier compares dataset collections with the rows of their tables.
type Verifier struct {
	db     *sql.DB
	graph  *graph.Graph
	kinds  map[string]entity.Kind
	method Method
	logger *logger.Logger
}

// New creates a verifier reading from db. Tables are checked in the create
// order of g.
func New(db *sql.DB, g *graph.Graph, method Method, log *logger.Logger) (*Verifier, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}

	kinds := make(map[string]entity.Kind)
	for _, k := range entity.Kinds() {
		kinds[entity.Prototype(k).CollectionName()] = k
	}

	return &Verifier{
		db:     db,
		graph:  g,
		kinds:  kinds,
		method: method,
		logger: log,
	}, nil
}

// Method returns the configured verification method.
func (v *Verifier) Method() Method {
	return v.method
}

// Verify checks every table of the graph against ds and stops at the first
// mismatch.
func (v *Verifier) Verify(ctx context.Context, ds dataset.Dataset) (*Stats, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return &Stats{Method: MethodSkip}, nil
	}
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}

	order, err := v.graph.CreateOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to get create order: %w", err)
	}

	stats := &Stats{Method: v.method}
	collections := ds.Entities()
	v.logger.Infof("Starting verification (method=%s) for %d tables", v.method, len(order))

	for _, table := range order {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("verification interrupted: %w", err)
		}

		kind, ok := v.kinds[table]
		if !ok {
			return stats, fmt.Errorf("no entity kind for table %s", table)
		}
		records, _ := collections.Get(kind)

		var result *Result
		switch v.method {
		case MethodCount:
			result, err = v.verifyByCount(ctx, table, records)
		case MethodSHA256:
			result, err = v.verifyBySHA256(ctx, kind, records)
		}
		if err != nil {
			return stats, fmt.Errorf("verification failed for table %s: %w", table, err)
		}

		stats.TablesVerified++
		stats.TotalRows += result.ActualCount
		stats.Results = append(stats.Results, *result)

		if !result.Match {
			stats.TablesFailed++
			v.logger.WithCollection(table).Errorf("Verification FAILED: %s", result.ErrorMessage)
			return stats, fmt.Errorf("verification mismatch in table %s: %s", table, result.ErrorMessage)
		}
		stats.TablesPassed++
		v.logger.WithCollection(table).Debugf("Verification PASSED (%d rows)", result.ActualCount)
	}

	v.logger.Infof("Verification complete: %d tables verified, %d passed, %d total rows",
		stats.TablesVerified, stats.TablesPassed, stats.TotalRows)
	return stats, nil
}

func (v *Verifier) verifyByCount(ctx context.Context, table string, records []entity.Entity) (*Result, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", sqlutil.QuoteIdentifier(table))
	var actual int64
	if err := v.db.QueryRowContext(ctx, query).Scan(&actual); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	result := &Result{
		Table:         table,
		Method:        MethodCount,
		ExpectedCount: int64(len(records)),
		ActualCount:   actual,
		Match:         int64(len(records)) == actual,
	}
	if !result.Match {
		result.ErrorMessage = fmt.Sprintf("count mismatch: expected=%d, actual=%d", result.ExpectedCount, actual)
	}
	return result, nil
}

func (v *Verifier) verifyBySHA256(ctx context.Context, kind entity.Kind, records []entity.Entity) (*Result, error) {
	proto := entity.Prototype(kind)
	table := proto.Table()
	columns := proto.FieldNames()

	expected := make([]string, 0, len(records))
	for _, r := range records {
		expected = append(expected, serializeRow(columns, r.ToSequence()))
	}

	actual, err := v.fetchRows(ctx, table.Name, columns, table.PrimaryKey)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Table:         table.Name,
		Method:        MethodSHA256,
		ExpectedCount: int64(len(expected)),
		ActualCount:   int64(len(actual)),
		ExpectedHash:  hashRows(expected),
		ActualHash:    hashRows(actual),
	}
	result.Match = result.ExpectedCount == result.ActualCount && result.ExpectedHash == result.ActualHash

	if !result.Match {
		if result.ExpectedCount != result.ActualCount {
			result.ErrorMessage = fmt.Sprintf("count mismatch: expected=%d, actual=%d", result.ExpectedCount, result.ActualCount)
		} else {
			result.ErrorMessage = fmt.Sprintf("hash mismatch: expected=%s, actual=%s", result.ExpectedHash[:16], result.ActualHash[:16])
		}
	}
	return result, nil
}

// fetchRows serializes every row of table. NULL columns serialize as NULL,
// which no generated value produces.
func (v *Verifier) fetchRows(ctx context.Context, table string, columns []string, orderBy string) ([]string, error) {
	query, err := sqlutil.SelectStatement(table, columns, orderBy)
	if err != nil {
		return nil, err
	}

	rows, err := v.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var out []string
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("hash computation interrupted: %w", err)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		fields := make([]string, len(values))
		for i, val := range values {
			if val.Valid {
				fields[i] = val.String
			} else {
				fields[i] = "NULL"
			}
		}
		out = append(out, serializeRow(columns, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// serializeRow renders col1=val1 NUL col2=val2 ... for hashing.
func serializeRow(columns, values []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + "=" + values[i]
	}
	return strings.Join(parts, "\x00")
}

// hashRows hashes rows independent of their order, since database collations
// may sort keys differently from Go.
func hashRows(rows []string) string {
	sorted := slices.Clone(rows)
	slices.Sort(sorted)

	hasher := sha256.New()
	for _, r := range sorted {
		hasher.Write([]byte(r))
		hasher.Write([]byte("\n"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
