// Package loader writes generated datasets into a SQL database and reads them back.
package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dbsmedya/godatagen/internal/database"
	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
	"github.com/dbsmedya/godatagen/internal/graph"
	"github.com/dbsmedya/godatagen/internal/logger"
	"github.com/dbsmedya/godatagen/internal/sqlutil"
)

// ErrCreateTable wraps every CREATE TABLE failure. Without DropExisting the
// usual cause is a table left by an earlier load.
var ErrCreateTable = errors.New("failed to create table")

// DefaultBatchSize is used when Options.BatchSize is not set.
const DefaultBatchSize = 500

// Options controls how a dataset is loaded.
type Options struct {
	Driver                  string // database.DriverMySQL or database.DriverSQLite
	BatchSize               int
	DropExisting            bool
	DisableForeignKeyChecks bool // MySQL only
}

// Stats contains statistics about a load.
type Stats struct {
	TablesDropped int
	TablesCreated int
	RowsInserted  int64
	Batches       int
	RowsPerTable  map[string]int64
	Duration      time.Duration
}

// Loader creates the entity tables and inserts dataset rows in foreign key
// order.
type Loader struct {
	db     *sql.DB
	graph  *graph.Graph
	kinds  map[string]entity.Kind // table name -> kind
	opts   Options
	logger *logger.Logger
}

// New creates a Loader for db. A nil log discards output.
func New(db *sql.DB, opts Options, log *logger.Logger) (*Loader, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if opts.Driver != database.DriverMySQL && opts.Driver != database.DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	if opts.BatchSize < 0 {
		return nil, fmt.Errorf("batch size cannot be negative")
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.DisableForeignKeyChecks && opts.Driver != database.DriverMySQL {
		return nil, fmt.Errorf("disabling foreign key checks is only supported for %s", database.DriverMySQL)
	}
	if log == nil {
		log = logger.NewNop()
	}

	g, err := graph.BuildFromTables(entity.Tables())
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}

	kinds := make(map[string]entity.Kind)
	for _, k := range entity.Kinds() {
		kinds[entity.Prototype(k).CollectionName()] = k
	}

	return &Loader{
		db:     db,
		graph:  g,
		kinds:  kinds,
		opts:   opts,
		logger: log,
	}, nil
}

// Graph returns the table dependency graph.
func (l *Loader) Graph() *graph.Graph {
	return l.graph
}

// CreateSchema drops (when configured) and creates the entity tables.
// DDL runs outside the data transaction because MySQL commits implicitly on it.
func (l *Loader) CreateSchema(ctx context.Context, stats *Stats) error {
	if l.opts.DropExisting {
		dropOrder, err := l.graph.DropOrder()
		if err != nil {
			return fmt.Errorf("failed to get drop order: %w", err)
		}
		for _, table := range dropOrder {
			stmt, err := sqlutil.DropTableStatement(table)
			if err != nil {
				return err
			}
			if _, err := l.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
			stats.TablesDropped++
			l.logger.Debugf("Dropped table %q", table)
		}
	}

	createOrder, err := l.graph.CreateOrder()
	if err != nil {
		return fmt.Errorf("failed to get create order: %w", err)
	}
	for _, table := range createOrder {
		ddl := entity.Prototype(l.kinds[table]).CreateTable()
		if _, err := l.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w %s: %w", ErrCreateTable, table, err)
		}
		stats.TablesCreated++
		l.logger.Debugf("Created table %q", table)
	}

	return nil
}

// Load creates the schema and inserts every collection of ds in batches
// within a single transaction. Rows are committed all together or not at all.
func (l *Loader) Load(ctx context.Context, ds dataset.Dataset) (*Stats, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	startTime := time.Now()
	stats := &Stats{RowsPerTable: make(map[string]int64)}

	if err := l.CreateSchema(ctx, stats); err != nil {
		return nil, err
	}

	l.logger.Debug("Starting load transaction")
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if tx != nil {
			l.logger.Warn("Rolling back load transaction")
			if rbErr := tx.Rollback(); rbErr != nil {
				l.logger.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	if l.opts.DisableForeignKeyChecks {
		if err := setForeignKeyChecks(ctx, tx, false); err != nil {
			return nil, err
		}
	}

	createOrder, err := l.graph.CreateOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to get create order: %w", err)
	}

	collections := ds.Entities()
	l.logger.Infof("Loading %d tables in dependency order", len(createOrder))

	for _, table := range createOrder {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load interrupted: %w", err)
		}

		records, _ := collections.Get(l.kinds[table])
		if len(records) == 0 {
			l.logger.Debugf("Skipping table %q (no records)", table)
			continue
		}

		rows, batches, err := l.insertTable(ctx, tx, table, records)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", table, err)
		}

		stats.RowsInserted += rows
		stats.Batches += batches
		stats.RowsPerTable[table] = rows
	}

	if l.opts.DisableForeignKeyChecks {
		if err := setForeignKeyChecks(ctx, tx, true); err != nil {
			return nil, err
		}
	}

	l.logger.Debug("Committing load transaction")
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	stats.Duration = time.Since(startTime)
	l.logger.Infof("Load complete: %d tables, %d rows, %d batches, duration: %s",
		len(stats.RowsPerTable), stats.RowsInserted, stats.Batches, stats.Duration)

	return stats, nil
}

// insertTable inserts records using multi-row INSERT statements of at most
// BatchSize rows.
func (l *Loader) insertTable(ctx context.Context, tx *sql.Tx, table string, records []entity.Entity) (int64, int, error) {
	log := l.logger.WithCollection(table)
	columns := records[0].FieldNames()

	var inserted int64
	batches := 0
	for start := 0; start < len(records); start += l.opts.BatchSize {
		end := min(start+l.opts.BatchSize, len(records))
		batch := records[start:end]

		stmt, err := sqlutil.InsertStatement(table, columns, len(batch))
		if err != nil {
			return inserted, batches, err
		}

		args := make([]interface{}, 0, len(batch)*len(columns))
		for _, rec := range batch {
			for _, v := range rec.ToSequence() {
				args = append(args, v)
			}
		}

		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return inserted, batches, fmt.Errorf("batch %d: %w", batches+1, err)
		}

		batches++
		inserted += int64(len(batch))
		log.WithBatch(batches).Debugf("Inserted %d rows", len(batch))
	}

	return inserted, batches, nil
}

// setForeignKeyChecks toggles MySQL FOREIGN_KEY_CHECKS for the transaction's session.
func setForeignKeyChecks(ctx context.Context, tx *sql.Tx, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	query := fmt.Sprintf("SET FOREIGN_KEY_CHECKS = %d", value)
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to set FOREIGN_KEY_CHECKS: %w", err)
	}
	return nil
}
