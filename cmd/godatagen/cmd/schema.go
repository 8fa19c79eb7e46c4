package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godatagen/internal/entity"
	"github.com/dbsmedya/godatagen/internal/graph"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show table definitions and load order",
	Long: `Schema prints the CREATE TABLE statement of every collection together
with the order tables are created in (referenced tables first), the order
they are dropped in, and the foreign keys between them.

No configuration or database connection is needed.

Example:
  godatagen schema`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	tables := entity.Tables()

	g, err := graph.BuildFromTables(tables)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	createOrder, err := g.CreateOrder()
	if err != nil {
		return fmt.Errorf("failed to generate create order: %w", err)
	}
	dropOrder, err := g.DropOrder()
	if err != nil {
		return fmt.Errorf("failed to generate drop order: %w", err)
	}

	printHeader("Schema")

	fmt.Fprintln(outputWriter)
	printSection("Create Order (referenced tables first)")
	for i, table := range createOrder {
		fmt.Fprintf(outputWriter, "  [%d] %s (PK: %s)\n", i+1, table, g.GetNode(table).PrimaryKey)
	}

	fmt.Fprintln(outputWriter)
	printSection("Drop Order (referencing tables first)")
	for i, table := range dropOrder {
		fmt.Fprintf(outputWriter, "  [%d] %s\n", i+1, table)
	}

	fmt.Fprintln(outputWriter)
	printSection("Foreign Keys")
	for _, edge := range g.AllEdges() {
		meta := g.GetEdgeMeta(edge.From, edge.To)
		fmt.Fprintf(outputWriter, "  %s.%s -> %s.%s\n", edge.To, meta.ForeignKey, edge.From, meta.ReferenceKey)
	}

	byName := make(map[string]entity.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	fmt.Fprintln(outputWriter)
	printSection("Definitions")
	for _, table := range createOrder {
		fmt.Fprintf(outputWriter, "%s\n\n", byName[table].CreateTable())
	}
	return nil
}
