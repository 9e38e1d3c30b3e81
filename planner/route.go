package planner

// ShortestRoute computes the minimum-hop route from start to goal using
// breadth-first search. Neighbors expand in declaration order, so ties
// between equal-length routes resolve deterministically. Returns
// [start] immediately when start == goal without consulting the graph,
// and nil when goal is unreachable.
func ShortestRoute(g Graph, start, goal string) []string {
	if start == goal {
		return []string{start}
	}

	type item struct {
		node string
		path []string
	}
	visited := map[string]bool{start: true}
	queue := []item{{node: start, path: []string{start}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g[cur.node] {
			if visited[next] {
				continue
			}
			path := make([]string, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, next)
			if next == goal {
				return path
			}
			visited[next] = true
			queue = append(queue, item{node: next, path: path})
		}
	}
	return nil
}
