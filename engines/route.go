package engines

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lexcodex/routewise/planner"
)

// RouteEngine is the minimal in-process fallback: it extracts the
// navigation graph from the problem text and searches it directly, so it
// needs no external planner at all. The domain file is accepted for
// interface symmetry and ignored. Its native plan shape is a route of
// locations.
type RouteEngine struct {
	Logger *log.Logger
}

func (e *RouteEngine) Name() string { return "route" }
func (e *RouteEngine) Rank() int    { return 2 }

// Probe always succeeds; the fallback has no environmental needs.
func (e *RouteEngine) Probe(ctx context.Context) bool { return true }

func (e *RouteEngine) Solve(ctx context.Context, domainPath, problemPath string) (*planner.Plan, error) {
	data, err := os.ReadFile(problemPath)
	if err != nil {
		return nil, fmt.Errorf("engines: read %s: %w", problemPath, err)
	}
	problem, err := planner.Extract(string(data))
	if err != nil {
		return nil, err
	}
	if e.Logger != nil {
		e.Logger.Printf("route: %s from %s to %s over %d origins",
			problem.Robot, problem.Start, problem.Goal, len(problem.Graph))
	}
	route := planner.ShortestRoute(problem.Graph, problem.Start, problem.Goal)
	if route == nil {
		return nil, fmt.Errorf("%w: no route from %s to %s", ErrNoSolution, problem.Start, problem.Goal)
	}
	return planner.PlanFromRoute(problem.Robot, route), nil
}
