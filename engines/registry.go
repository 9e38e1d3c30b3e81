package engines

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// Auto asks the registry to pick the highest-ranked available engine.
const Auto = "auto"

// Registry holds the closed set of engine variants in preference order
// and probes their availability once per process. Detection results are
// read-only afterward.
type Registry struct {
	engines []Engine
	logger  *log.Logger

	once      sync.Once
	detected  []Descriptor
	available map[string]Engine
}

// NewRegistry builds a registry over the given variants, ordered by
// rank (lower rank = higher preference).
func NewRegistry(logger *log.Logger, variants ...Engine) *Registry {
	ordered := append([]Engine(nil), variants...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rank() < ordered[j].Rank() })
	return &Registry{engines: ordered, logger: logger}
}

// DefaultRegistry wires the three shipped variants: the Fast Downward
// binary, the unified-planning python library, and the in-process route
// fallback.
func DefaultRegistry(logger *log.Logger) *Registry {
	return NewRegistry(logger,
		&DownwardEngine{Logger: logger},
		&UnifiedEngine{Logger: logger},
		&RouteEngine{Logger: logger},
	)
}

// Detect probes every variant independently and returns the descriptor
// set. A probe that errors or panics counts as unavailable; probing is
// speculative and never propagates failures. The result is computed
// once and reused for the process lifetime.
func (r *Registry) Detect(ctx context.Context) []Descriptor {
	r.once.Do(func() {
		r.available = make(map[string]Engine, len(r.engines))
		for _, engine := range r.engines {
			ok := safeProbe(ctx, engine)
			r.detected = append(r.detected, Descriptor{
				Name:      engine.Name(),
				Available: ok,
				Rank:      engine.Rank(),
			})
			if ok {
				r.available[engine.Name()] = engine
			}
			if r.logger != nil {
				r.logger.Printf("registry: engine %s available=%v", engine.Name(), ok)
			}
		}
	})
	return append([]Descriptor(nil), r.detected...)
}

// Select resolves a requested engine name, or the best available one
// for Auto. A specific request must be detected as available.
func (r *Registry) Select(ctx context.Context, requested string) (Engine, error) {
	r.Detect(ctx)
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" || requested == Auto {
		for _, engine := range r.engines {
			if _, ok := r.available[engine.Name()]; ok {
				return engine, nil
			}
		}
		return nil, ErrNoEngineAvailable
	}
	if engine, ok := r.available[requested]; ok {
		return engine, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEngineUnavailable, requested)
}

func safeProbe(ctx context.Context, engine Engine) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return engine.Probe(ctx)
}
