package graph

// Cycle is one chain of dependencies that loops back on itself, in traversal
// order. The first id is not repeated at the end.
type Cycle []string

// DetectCycles runs a single depth-first pass over the graph, starting from
// every unvisited node in first-seen order. When the walk reaches a node that
// is still on the current path, the path segment from that node onward is
// recorded as a cycle.
//
// Nodes are never expanded twice, so this reports at least one representative
// path per cyclic component reachable from a root. It does not enumerate every
// elementary cycle of overlapping loops.
func (g *Graph) DetectCycles() []Cycle {
	visited := make(map[string]bool, len(g.Nodes))
	onStack := make(map[string]int, len(g.Nodes)) // key -> index in path
	var path []string
	var cycles []Cycle

	var dfs func(key string)
	dfs = func(key string) {
		if start, ok := onStack[key]; ok {
			c := make(Cycle, len(path)-start)
			copy(c, path[start:])
			cycles = append(cycles, c)
			return
		}
		if visited[key] {
			return
		}
		visited[key] = true
		onStack[key] = len(path)
		path = append(path, key)

		for _, next := range g.Nodes[key].DependsOn {
			dfs(next)
		}

		path = path[:len(path)-1]
		delete(onStack, key)
	}

	for _, key := range g.order {
		if !visited[key] {
			dfs(key)
		}
	}

	return cycles
}

// Contains reports whether the cycle passes through key.
func (c Cycle) Contains(key string) bool {
	for _, k := range c {
		if k == key {
			return true
		}
	}
	return false
}
