package graph

import (
	"container/list"
	"errors"
	"fmt"
	"strings"
)

// ProcessingQueue wraps a list-based queue for Kahn's algorithm processing.
// It holds nodes that are ready to be processed (have in-degree of 0).
type ProcessingQueue struct {
	queue *list.List
}

// NewProcessingQueue creates a new empty processing queue.
func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{
		queue: list.New(),
	}
}

// InitializeQueue creates a processing queue populated with all nodes
// that have in-degree of 0, in node insertion order.
func (g *Graph) InitializeQueue(inDegree map[string]int) *ProcessingQueue {
	pq := NewProcessingQueue()

	for _, name := range g.AllNodes() {
		if inDegree[name] == 0 {
			pq.Enqueue(name)
		}
	}

	return pq
}

// Enqueue adds a node to the back of the queue.
func (pq *ProcessingQueue) Enqueue(node string) {
	pq.queue.PushBack(node)
}

// Dequeue removes and returns the node at the front of the queue.
// Returns empty string and false if queue is empty.
func (pq *ProcessingQueue) Dequeue() (string, bool) {
	if pq.queue.Len() == 0 {
		return "", false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(string), true
}

// Len returns the number of nodes in the queue.
func (pq *ProcessingQueue) Len() int {
	return pq.queue.Len()
}

// IsEmpty returns true if the queue has no nodes.
func (pq *ProcessingQueue) IsEmpty() bool {
	return pq.queue.Len() == 0
}

// CalculateInDegrees computes the number of incoming edges for each node.
func (g *Graph) CalculateInDegrees() map[string]int {
	inDegree := make(map[string]int, g.NodeCount())

	for _, name := range g.AllNodes() {
		inDegree[name] = 0
	}
	for _, children := range g.Children {
		for _, child := range children {
			inDegree[child]++
		}
	}

	return inDegree
}

// ErrCycleDetected matches any *CycleError through errors.Is.
var ErrCycleDetected = errors.New("cycle detected in dependency graph")

// CycleInfo describes the tables Kahn's algorithm could not order.
type CycleInfo struct {
	TotalNodes        int
	ProcessedNodes    int
	UnprocessedNodes  []string // on a cycle or downstream of one
	CycleParticipants []string // the unprocessed tables that lie on a cycle
	CyclePath         []string // one concrete cycle, first table repeated at the end
}

// Blocked returns the unprocessed tables that are not themselves on a cycle.
func (c *CycleInfo) Blocked() []string {
	onCycle := toSet(c.CycleParticipants)
	var blocked []string
	for _, name := range c.UnprocessedNodes {
		if !onCycle[name] {
			blocked = append(blocked, name)
		}
	}
	return blocked
}

// CycleError reports which tables form a cycle and which are blocked by it.
type CycleError struct {
	Info *CycleInfo
}

func (e *CycleError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycle detected in dependency graph: %d of %d tables could not be processed",
		len(e.Info.UnprocessedNodes), e.Info.TotalNodes)
	if len(e.Info.CyclePath) > 0 {
		b.WriteString("\nCycle path: " + strings.Join(e.Info.CyclePath, " -> "))
	}
	if len(e.Info.CycleParticipants) > 0 {
		b.WriteString("\nTables in cycle: " + strings.Join(e.Info.CycleParticipants, ", "))
	}
	if blocked := e.Info.Blocked(); len(blocked) > 0 {
		b.WriteString("\nTables blocked by cycle: " + strings.Join(blocked, ", "))
	}
	return b.String()
}

// Is lets errors.Is match ErrCycleDetected.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// kahn runs Kahn's algorithm and returns the processed nodes in order.
func (g *Graph) kahn() []string {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	var result []string
	for !queue.IsEmpty() {
		node, _ := queue.Dequeue()
		result = append(result, node)

		for _, child := range g.GetChildren(node) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue.Enqueue(child)
			}
		}
	}
	return result
}

// DetectIncompleteProcessing runs Kahn's algorithm and describes the nodes it
// could not reach. Returns nil when the graph is acyclic.
func (g *Graph) DetectIncompleteProcessing() *CycleInfo {
	order := g.kahn()
	if len(order) == g.NodeCount() {
		return nil
	}

	done := toSet(order)
	info := &CycleInfo{TotalNodes: g.NodeCount(), ProcessedNodes: len(order)}
	for _, name := range g.AllNodes() {
		if !done[name] {
			info.UnprocessedNodes = append(info.UnprocessedNodes, name)
		}
	}

	stuck := toSet(info.UnprocessedNodes)
	for _, name := range info.UnprocessedNodes {
		if path := g.shortestCycle(name, stuck); path != nil {
			info.CycleParticipants = append(info.CycleParticipants, name)
			if info.CyclePath == nil {
				info.CyclePath = path
			}
		}
	}
	return info
}

// HasCycle reports whether the dependency graph contains a cycle.
func (g *Graph) HasCycle() bool {
	return g.DetectIncompleteProcessing() != nil
}

// shortestCycle walks breadth-first from start, staying inside within, and
// returns the shortest path leading back to start, or nil if there is none.
func (g *Graph) shortestCycle(start string, within map[string]bool) []string {
	prev := map[string]string{}
	frontier := []string{start}
	for len(frontier) > 0 {
		var next []string
		for _, node := range frontier {
			for _, child := range g.GetChildren(node) {
				if !within[child] {
					continue
				}
				if child == start {
					path := []string{start}
					for n := node; n != start; n = prev[n] {
						path = append(path, n)
					}
					path = append(path[:1], reverse(path[1:])...)
					return append(path, start)
				}
				if _, seen := prev[child]; seen {
					continue
				}
				prev[child] = node
				next = append(next, child)
			}
		}
		frontier = next
	}
	return nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func reverse(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}

// TopologicalSort returns tables in topological order using Kahn's algorithm.
// Ties keep insertion order. Returns a *CycleError if the graph has a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	order := g.kahn()
	if len(order) != g.NodeCount() {
		return nil, &CycleError{Info: g.DetectIncompleteProcessing()}
	}
	return order, nil
}

// CreateOrder returns the order in which tables are created and filled.
// Referenced tables come before the tables that reference them.
func (g *Graph) CreateOrder() ([]string, error) {
	return g.TopologicalSort()
}

// DropOrder returns the order in which tables are dropped: the reverse of
// CreateOrder.
func (g *Graph) DropOrder() ([]string, error) {
	createOrder, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	return reverse(createOrder), nil
}

// Validate returns a CycleError if the graph contains cycles, nil otherwise.
func (g *Graph) Validate() error {
	if cycleInfo := g.DetectIncompleteProcessing(); cycleInfo != nil {
		return &CycleError{Info: cycleInfo}
	}
	return nil
}
