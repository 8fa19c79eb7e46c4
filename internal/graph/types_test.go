package graph

import (
	"reflect"
	"testing"
)

func TestNewGraph(t *testing.T) {
	g := NewGraph()

	if g.NodeCount() != 0 {
		t.Errorf("Expected empty graph, got %d nodes", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected no edges, got %d", g.EdgeCount())
	}
}

func TestAddNode_KeepsInsertionOrder(t *testing.T) {
	g := NewGraph()
	g.AddNode("people", "id")
	g.AddNode("addresses", "postcode")
	g.AddNode("jobs", "job")

	expected := []string{"people", "addresses", "jobs"}
	if got := g.AllNodes(); !reflect.DeepEqual(got, expected) {
		t.Errorf("AllNodes() = %v, expected %v", got, expected)
	}

	// Re-adding replaces the node in place
	g.AddNode("people", "person_id")
	if got := g.AllNodes(); !reflect.DeepEqual(got, expected) {
		t.Errorf("AllNodes() after re-add = %v, expected %v", got, expected)
	}
	if pk := g.GetNode("people").PrimaryKey; pk != "person_id" {
		t.Errorf("Expected replaced primary key 'person_id', got %q", pk)
	}
}

func TestAddEdge(t *testing.T) {
	g := NewGraph()
	g.AddNode("people", "id")
	g.AddNode("transactions", "id")
	g.AddEdge("people", "transactions", "person", "id")

	if children := g.GetChildren("people"); !reflect.DeepEqual(children, []string{"transactions"}) {
		t.Errorf("GetChildren(people) = %v", children)
	}
	if parents := g.GetParents("transactions"); !reflect.DeepEqual(parents, []string{"people"}) {
		t.Errorf("GetParents(transactions) = %v", parents)
	}

	meta := g.GetEdgeMeta("people", "transactions")
	if meta == nil {
		t.Fatal("Expected edge metadata")
	}
	if meta.ForeignKey != "person" || meta.ReferenceKey != "id" {
		t.Errorf("Unexpected edge metadata: %+v", meta)
	}

	if g.GetEdgeMeta("transactions", "people") != nil {
		t.Error("Expected no metadata for reversed edge")
	}
}

func TestAddEdge_Duplicate(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", "id")
	g.AddNode("b", "id")
	g.AddEdge("a", "b", "a_id", "id")
	g.AddEdge("a", "b", "other_a_id", "id")

	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if len(g.GetChildren("a")) != 1 || len(g.GetParents("b")) != 1 {
		t.Error("Duplicate edge should not be listed twice")
	}
	if g.GetEdgeMeta("a", "b").ForeignKey != "other_a_id" {
		t.Error("Expected latest metadata to win")
	}
}

func TestGraphQueries(t *testing.T) {
	g := NewGraph()
	g.AddNode("people", "id")
	g.AddNode("addresses", "postcode")
	g.AddNode("transactions", "id")
	g.AddEdge("people", "transactions", "person", "id")
	g.AddEdge("addresses", "transactions", "address", "postcode")

	if !g.HasNode("people") || g.HasNode("cars") {
		t.Error("HasNode returned unexpected result")
	}
	if g.GetNode("cars") != nil {
		t.Error("GetNode should return nil for unknown table")
	}
	if g.InDegree("transactions") != 2 {
		t.Errorf("Expected in-degree 2, got %d", g.InDegree("transactions"))
	}
	if g.OutDegree("people") != 1 {
		t.Errorf("Expected out-degree 1, got %d", g.OutDegree("people"))
	}

	if roots := g.RootNodes(); !reflect.DeepEqual(roots, []string{"people", "addresses"}) {
		t.Errorf("RootNodes() = %v", roots)
	}

	expectedEdges := []Edge{
		{From: "people", To: "transactions"},
		{From: "addresses", To: "transactions"},
	}
	if edges := g.AllEdges(); !reflect.DeepEqual(edges, expectedEdges) {
		t.Errorf("AllEdges() = %v, expected %v", edges, expectedEdges)
	}
}
