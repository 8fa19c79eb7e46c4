package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
	"github.com/dbsmedya/godatagen/internal/sqlutil"
)

// Fetch reads every row of kind's table, ordered by primary key, and rebuilds
// the entities through FromSequence. NULL columns read as empty strings.
func (l *Loader) Fetch(ctx context.Context, kind entity.Kind) ([]entity.Entity, error) {
	proto := entity.Prototype(kind)
	if proto == nil {
		return nil, fmt.Errorf("unknown entity kind %s", kind)
	}
	table := proto.Table()
	columns := proto.FieldNames()

	query, err := sqlutil.SelectStatement(table.Name, columns, table.PrimaryKey)
	if err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table.Name, err)
	}
	defer rows.Close()

	var out []entity.Entity
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table.Name, err)
		}
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = v.String
		}
		e, err := proto.FromSequence(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s row %d: %w", table.Name, len(out)+1, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table.Name, err)
	}

	l.logger.WithCollection(table.Name).Debugf("Fetched %d rows", len(out))
	return out, nil
}

// FetchDataset reads all collections back into a dataset.
func (l *Loader) FetchDataset(ctx context.Context) (*dataset.RentalDataset, error) {
	var collections [][]entity.Entity
	for _, k := range (*dataset.RentalDataset)(nil).EntityTypes() {
		records, err := l.Fetch(ctx, k)
		if err != nil {
			return nil, err
		}
		collections = append(collections, records)
	}
	return dataset.FromSequence(collections)
}
