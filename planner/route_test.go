package planner

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortestRouteChain(t *testing.T) {
	g := Graph{
		"base": {"hall"},
		"hall": {"ward"},
		"ward": {"pharmacy"},
	}
	require.Equal(t, []string{"base", "hall", "ward", "pharmacy"}, ShortestRoute(g, "base", "pharmacy"))
}

func TestShortestRouteSelf(t *testing.T) {
	// start == goal must not consult the graph at all.
	require.Equal(t, []string{"base"}, ShortestRoute(nil, "base", "base"))
}

func TestShortestRouteUnreachable(t *testing.T) {
	g := Graph{"base": {"hall"}}
	require.Nil(t, ShortestRoute(g, "base", "pharmacy"))
	require.Nil(t, ShortestRoute(Graph{}, "base", "pharmacy"))
}

func TestShortestRouteTieBreakByDeclarationOrder(t *testing.T) {
	// Two equal-length routes a-b-d and a-c-d; b was declared first.
	g := Graph{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
	}
	require.Equal(t, []string{"a", "b", "d"}, ShortestRoute(g, "a", "d"))
}

func TestShortestRouteIsLoopFree(t *testing.T) {
	g := Graph{
		"a": {"b"},
		"b": {"a", "c"},
		"c": {"b", "d"},
		"d": {},
	}
	route := ShortestRoute(g, "a", "d")
	require.Equal(t, []string{"a", "b", "c", "d"}, route)
	seen := map[string]bool{}
	for _, loc := range route {
		require.False(t, seen[loc], "location %s repeats", loc)
		seen[loc] = true
	}
}

// referenceDistances is an independent brute-force BFS used to check the
// solver on random graphs.
func referenceDistances(g Graph, start string) map[string]int {
	dist := map[string]int{start: 0}
	frontier := []string{start}
	for len(frontier) > 0 {
		node := frontier[0]
		frontier = frontier[1:]
		for _, next := range g[node] {
			if _, ok := dist[next]; ok {
				continue
			}
			dist[next] = dist[node] + 1
			frontier = append(frontier, next)
		}
	}
	return dist
}

func TestShortestRouteMatchesReferenceOnRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(10)
		nodes := make([]string, n)
		for i := range nodes {
			nodes[i] = fmt.Sprintf("loc_%d", i)
		}
		g := Graph{}
		edges := rng.Intn(3 * n)
		for i := 0; i < edges; i++ {
			from := nodes[rng.Intn(n)]
			to := nodes[rng.Intn(n)]
			g[from] = append(g[from], to)
		}
		start := nodes[rng.Intn(n)]
		goal := nodes[rng.Intn(n)]

		route := ShortestRoute(g, start, goal)
		dist, reachable := referenceDistances(g, start)[goal]
		if !reachable {
			require.Nil(t, route, "trial %d: goal unreachable but a route was returned", trial)
			continue
		}
		require.NotNil(t, route, "trial %d: goal reachable but no route", trial)
		require.Equal(t, start, route[0])
		require.Equal(t, goal, route[len(route)-1])
		require.Equal(t, dist, len(route)-1, "trial %d: route is not shortest", trial)
		for i := 0; i+1 < len(route); i++ {
			require.Contains(t, g[route[i]], route[i+1], "trial %d: missing edge %s->%s", trial, route[i], route[i+1])
		}
	}
}
