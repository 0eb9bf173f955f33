// Package graph models the dependency structure of a task batch.
// An edge From -> To means "From depends on To": To must complete first.
package graph

// Graph is the dependency graph of one batch. Immutable once built.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"` // keyed by task id
	Edges []Edge           `json:"edges"`

	order  []string // node keys in first-seen order
	inDeg  InDegreeMap
	outDeg OutDegreeMap
}

// Node is one task id in the graph.
type Node struct {
	Key       string   `json:"key"`
	DependsOn []string `json:"depends_on,omitempty"` // ids present in the batch
	External  []string `json:"external,omitempty"`   // ids not in the batch, untracked
}

// Edge is a dependency between two tasks of the same batch.
type Edge struct {
	From string `json:"from"` // dependent task
	To   string `json:"to"`   // task it waits on
}

// EdgeKey returns a stable string key for deduplication.
func (e Edge) EdgeKey() string {
	return e.From + "|" + e.To
}

// Spec describes one task's position in the graph before edges are resolved.
type Spec struct {
	Key       string
	DependsOn []string
}

// Build constructs the graph. Specs sharing a key merge into one node whose
// dependencies are the union of theirs. Dependency ids that match no key are
// kept on the node as External and produce no edge.
func Build(specs []Spec) *Graph {
	g := &Graph{Nodes: make(map[string]*Node, len(specs))}

	raw := make(map[string][]string, len(specs))
	for _, s := range specs {
		if _, ok := g.Nodes[s.Key]; !ok {
			g.Nodes[s.Key] = &Node{Key: s.Key}
			g.order = append(g.order, s.Key)
		}
		raw[s.Key] = append(raw[s.Key], s.DependsOn...)
	}

	seenEdge := make(map[string]bool)
	for _, key := range g.order {
		node := g.Nodes[key]
		seenExt := make(map[string]bool)
		for _, dep := range raw[key] {
			if _, ok := g.Nodes[dep]; !ok {
				if !seenExt[dep] {
					seenExt[dep] = true
					node.External = append(node.External, dep)
				}
				continue
			}
			e := Edge{From: key, To: dep}
			if seenEdge[e.EdgeKey()] {
				continue
			}
			seenEdge[e.EdgeKey()] = true
			node.DependsOn = append(node.DependsOn, dep)
			g.Edges = append(g.Edges, e)
		}
	}

	g.inDeg = g.ComputeInDegrees()
	g.outDeg = g.ComputeOutDegrees()
	return g
}

// Keys returns node keys in first-seen order.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependents returns how many tasks in the batch depend on key.
func (g *Graph) Dependents(key string) int {
	return g.inDeg[key]
}

// Blockers returns how many tasks in the batch key still depends on.
func (g *Graph) Blockers(key string) int {
	return g.outDeg[key]
}

// InDegreeMap maps node keys to their in-degree count.
type InDegreeMap map[string]int

// ComputeInDegrees calculates in-degree (number of dependents) for every node.
func (g *Graph) ComputeInDegrees() InDegreeMap {
	degrees := make(InDegreeMap, len(g.Nodes))
	for key := range g.Nodes {
		degrees[key] = 0
	}
	for _, edge := range g.Edges {
		degrees[edge.To]++
	}
	return degrees
}

// OutDegreeMap maps node keys to their out-degree count.
type OutDegreeMap map[string]int

// ComputeOutDegrees calculates out-degree (number of blockers) for every node.
func (g *Graph) ComputeOutDegrees() OutDegreeMap {
	degrees := make(OutDegreeMap, len(g.Nodes))
	for key := range g.Nodes {
		degrees[key] = 0
	}
	for _, edge := range g.Edges {
		degrees[edge.From]++
	}
	return degrees
}
