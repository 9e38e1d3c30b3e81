// Package engines hosts the interchangeable planning backends: a fixed
// closed set of engine variants behind one interface, a capability
// registry that probes the environment once per process, and the facade
// that drives a single planning request end to end.
package engines

import (
	"context"
	"errors"

	"github.com/lexcodex/routewise/planner"
)

// Engine is one interchangeable planning backend. Probe answers whether
// the engine can run in the current environment; Solve produces a plan
// in the canonical representation regardless of the engine's native
// output shape. Solve must respect ctx cancellation: the caller bounds
// it with the configured time budget.
type Engine interface {
	Name() string
	Rank() int
	Probe(ctx context.Context) bool
	Solve(ctx context.Context, domainPath, problemPath string) (*planner.Plan, error)
}

// Descriptor reports one engine's detected availability. Descriptors are
// computed once per process invocation and never mutated afterward.
type Descriptor struct {
	Name      string
	Available bool
	Rank      int
}

// Engine invocation and selection failures.
var (
	ErrEngineUnavailable = errors.New("engines: requested engine not available")
	ErrNoEngineAvailable = errors.New("engines: no planning engine available")
	ErrNoSolution        = errors.New("engines: no solution found")
	ErrProcessFailed     = errors.New("engines: engine process failed")
	ErrTimeout           = errors.New("engines: engine exceeded its time budget")
	ErrImportMissing     = errors.New("engines: python planning library not importable")
)
