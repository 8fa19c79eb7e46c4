// Package export writes datasets to CSV files and reads them back.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
)

// FileName returns the CSV file name for kind, e.g. "people.csv".
func FileName(kind entity.Kind) string {
	return entity.Prototype(kind).CollectionName() + ".csv"
}

// WriteDataset writes one CSV file per collection into dir, creating it if
// needed. Each file starts with a FieldNames header. Returns the written paths
// in dataset order.
func WriteDataset(dir string, ds dataset.Dataset) ([]string, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var paths []string
	collections := ds.Entities()
	for el := collections.Front(); el != nil; el = el.Next() {
		path := filepath.Join(dir, FileName(el.Key))
		if err := writeFile(path, el.Key, el.Value); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, kind entity.Kind, records []entity.Entity) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file for %s: %w", kind, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return WriteCollection(file, kind, records)
}

// WriteCollection writes records of kind as CSV with a header row.
func WriteCollection(w io.Writer, kind entity.Kind, records []entity.Entity) error {
	proto := entity.Prototype(kind)
	if proto == nil {
		return fmt.Errorf("unknown entity kind %s", kind)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(proto.FieldNames()); err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	for i, rec := range records {
		if rec.Kind() != kind {
			return fmt.Errorf("%s collection: record %d is a %s", kind, i, rec.Kind())
		}
		if err := writer.Write(rec.ToSequence()); err != nil {
			return fmt.Errorf("failed to write %s record %d: %w", kind, i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCollection reads dir/<collection>.csv back into entities. The header
// must match the kind's FieldNames exactly.
func ReadCollection(dir string, kind entity.Kind) ([]entity.Entity, error) {
	proto := entity.Prototype(kind)
	if proto == nil {
		return nil, fmt.Errorf("unknown entity kind %s", kind)
	}

	path := filepath.Join(dir, FileName(kind))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return ReadFrom(file, kind)
}

// ReadFrom parses CSV produced by WriteCollection.
func ReadFrom(r io.Reader, kind entity.Kind) ([]entity.Entity, error) {
	proto := entity.Prototype(kind)
	if proto == nil {
		return nil, fmt.Errorf("unknown entity kind %s", kind)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(proto.FieldNames())

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: missing header", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", kind, err)
	}
	if !slices.Equal(header, proto.FieldNames()) {
		return nil, fmt.Errorf("%s: header %v does not match %v", kind, header, proto.FieldNames())
	}

	var out []entity.Entity
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", kind, err)
		}
		e, err := proto.FromSequence(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", kind, line, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ReadDataset reads every collection from dir.
func ReadDataset(dir string) (*dataset.RentalDataset, error) {
	var collections [][]entity.Entity
	for _, k := range (*dataset.RentalDataset)(nil).EntityTypes() {
		records, err := ReadCollection(dir, k)
		if err != nil {
			return nil, err
		}
		collections = append(collections, records)
	}
	return dataset.FromSequence(collections)
}
