// Package graph orders tables by their foreign key dependencies.
package graph

import "github.com/elliotchance/orderedmap/v2"

// Node represents a table in the dependency graph.
type Node struct {
	Name       string // Table name
	PrimaryKey string // Primary key column (empty if none)
}

// Edge represents a dependency relationship between tables.
type Edge struct {
	From string // Referenced (parent) table
	To   string // Referencing (child) table
}

// EdgeMeta contains metadata about an edge relationship.
type EdgeMeta struct {
	ForeignKey   string // FK column in child table
	ReferenceKey string // Referenced column in parent table
}

// Graph is a directed graph of tables where an edge runs from a referenced
// table to the table holding the foreign key. Nodes keep insertion order so
// orderings are deterministic.
type Graph struct {
	Nodes        *orderedmap.OrderedMap[string, *Node]
	Children     map[string][]string // table name -> referencing tables
	Parents      map[string][]string // table name -> referenced tables
	edgeMetadata map[Edge]*EdgeMeta
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:        orderedmap.NewOrderedMap[string, *Node](),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		edgeMetadata: make(map[Edge]*EdgeMeta),
	}
}

// AddNode adds a table node to the graph. Re-adding a name replaces the node
// but keeps its original position.
func (g *Graph) AddNode(name, primaryKey string) {
	g.Nodes.Set(name, &Node{Name: name, PrimaryKey: primaryKey})
}

// AddEdge adds a parent -> child relationship to the graph.
// It also maintains the reverse mapping for efficient parent lookups.
func (g *Graph) AddEdge(parent, child, foreignKey, referenceKey string) {
	edge := Edge{From: parent, To: child}
	if _, exists := g.edgeMetadata[edge]; !exists {
		g.Children[parent] = append(g.Children[parent], child)
		g.Parents[child] = append(g.Parents[child], parent)
	}
	g.edgeMetadata[edge] = &EdgeMeta{
		ForeignKey:   foreignKey,
		ReferenceKey: referenceKey,
	}
}

// GetChildren returns the tables that reference parent.
func (g *Graph) GetChildren(parent string) []string {
	return g.Children[parent]
}

// GetParents returns the tables child references.
func (g *Graph) GetParents(child string) []string {
	return g.Parents[child]
}

// GetNode returns the node for a given table name, or nil if not found.
func (g *Graph) GetNode(name string) *Node {
	node, _ := g.Nodes.Get(name)
	return node
}

// GetEdgeMeta returns metadata for an edge, or nil if not found.
func (g *Graph) GetEdgeMeta(parent, child string) *EdgeMeta {
	return g.edgeMetadata[Edge{From: parent, To: child}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name string) bool {
	_, exists := g.Nodes.Get(name)
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return g.Nodes.Len()
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edgeMetadata)
}

// AllNodes returns all table names in insertion order.
func (g *Graph) AllNodes() []string {
	nodes := make([]string, 0, g.Nodes.Len())
	for el := g.Nodes.Front(); el != nil; el = el.Next() {
		nodes = append(nodes, el.Key)
	}
	return nodes
}

// AllEdges returns all edges, grouped by parent in node order.
func (g *Graph) AllEdges() []Edge {
	var edges []Edge
	for _, parent := range g.AllNodes() {
		for _, child := range g.Children[parent] {
			edges = append(edges, Edge{From: parent, To: child})
		}
	}
	return edges
}

// RootNodes returns tables that reference nothing, in insertion order.
func (g *Graph) RootNodes() []string {
	var roots []string
	for _, name := range g.AllNodes() {
		if len(g.Parents[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// InDegree returns the number of incoming edges (parents) for a node.
func (g *Graph) InDegree(name string) int {
	return len(g.Parents[name])
}

// OutDegree returns the number of outgoing edges (children) for a node.
func (g *Graph) OutDegree(name string) int {
	return len(g.Children[name])
}
