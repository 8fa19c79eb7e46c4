package graph

import (
	"fmt"

	"github.com/dbsmedya/godatagen/internal/entity"
)

// Builder constructs a dependency graph from table definitions.
type Builder struct {
	tables []entity.Table
}

// NewBuilder creates a new graph builder for the given tables.
func NewBuilder(tables []entity.Table) *Builder {
	return &Builder{tables: tables}
}

// Build constructs the dependency graph. Every foreign key must point at a
// declared table and column; self references are allowed and add no edge.
func (b *Builder) Build() (*Graph, error) {
	if len(b.tables) == 0 {
		return nil, fmt.Errorf("no tables to build a graph from")
	}

	g := NewGraph()
	byName := make(map[string]entity.Table, len(b.tables))

	for _, t := range b.tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table name is empty")
		}
		if g.HasNode(t.Name) {
			return nil, fmt.Errorf("duplicate table %q", t.Name)
		}
		g.AddNode(t.Name, t.PrimaryKey)
		byName[t.Name] = t
	}

	for _, t := range b.tables {
		for _, fk := range t.ForeignKeys {
			if !t.HasColumn(fk.Column) {
				return nil, fmt.Errorf("table %q: foreign key column %q is not a column", t.Name, fk.Column)
			}
			parent, ok := byName[fk.RefTable]
			if !ok {
				return nil, fmt.Errorf("table %q: foreign key %q references unknown table %q", t.Name, fk.Column, fk.RefTable)
			}
			if !parent.HasColumn(fk.RefColumn) {
				return nil, fmt.Errorf("table %q: foreign key %q references unknown column %s.%s",
					t.Name, fk.Column, fk.RefTable, fk.RefColumn)
			}
			if fk.RefTable == t.Name {
				continue
			}
			g.AddEdge(fk.RefTable, t.Name, fk.Column, fk.RefColumn)
		}
	}

	// Validate graph structure (fail fast on cycles)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, nil
}

// BuildFromTables is a convenience function that builds a graph directly from tables.
func BuildFromTables(tables []entity.Table) (*Graph, error) {
	return NewBuilder(tables).Build()
}
