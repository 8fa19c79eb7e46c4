package entity

import (
	"fmt"
	"strings"
)

// Column describes one column of a table.
type Column struct {
	Name     string
	Type     string // SQL column type, e.g. VARCHAR(16)
	Nullable bool
}

// ForeignKey links a column to the identity column of another collection.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table is the creatable schema of one collection.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  string
	ForeignKeys []ForeignKey
}

// HasColumn reports whether the table declares a column with the given name.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Dependencies returns the tables this table references, without duplicates.
func (t Table) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == t.Name || seen[fk.RefTable] {
			continue
		}
		seen[fk.RefTable] = true
		deps = append(deps, fk.RefTable)
	}
	return deps
}

// CreateTable renders the table as a CREATE TABLE statement.
func (t Table) CreateTable() string {
	var defs []string
	for _, c := range t.Columns {
		def := fmt.Sprintf("    %s %s", c.Name, c.Type)
		if !c.Nullable {
			def += " NOT NULL"
		}
		if c.Name == t.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Column, fk.RefTable, fk.RefColumn))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", t.Name, strings.Join(defs, ",\n"))
}

// Tables returns the schema of every entity kind in declaration order.
func Tables() []Table {
	kinds := Kinds()
	tables := make([]Table, 0, len(kinds))
	for _, k := range kinds {
		tables = append(tables, Prototype(k).Table())
	}
	return tables
}

// ValidateSchemas checks that the declared schemas are self-consistent:
// columns match the field names, the primary key exists, and every foreign
// key names the identity column of a real collection.
func ValidateSchemas() error {
	byName := make(map[string]Table)
	for _, t := range Tables() {
		byName[t.Name] = t
	}

	for _, k := range Kinds() {
		proto := Prototype(k)
		t := proto.Table()

		if t.Name != proto.CollectionName() {
			return fmt.Errorf("%s: table name %q differs from collection name %q", k, t.Name, proto.CollectionName())
		}
		if strings.Join(t.ColumnNames(), ",") != strings.Join(proto.FieldNames(), ",") {
			return fmt.Errorf("%s: columns %v differ from field names %v", k, t.ColumnNames(), proto.FieldNames())
		}
		if !t.HasColumn(t.PrimaryKey) {
			return fmt.Errorf("%s: primary key %q is not a column", k, t.PrimaryKey)
		}

		for _, fk := range t.ForeignKeys {
			if !t.HasColumn(fk.Column) {
				return fmt.Errorf("%s: foreign key column %q is not a column", k, fk.Column)
			}
			ref, ok := byName[fk.RefTable]
			if !ok {
				return fmt.Errorf("%s: foreign key %q references unknown collection %q", k, fk.Column, fk.RefTable)
			}
			if ref.PrimaryKey != fk.RefColumn {
				return fmt.Errorf("%s: foreign key %q references %s(%s), which is not its identity column %q",
					k, fk.Column, fk.RefTable, fk.RefColumn, ref.PrimaryKey)
			}
		}
	}
	return nil
}
