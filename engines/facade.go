package engines

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lexcodex/routewise/planner"
)

// State tracks the facade's progress through one planning request.
type State int

const (
	StateIdle State = iota
	StateEngineSelected
	StateSolving
	StateSolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEngineSelected:
		return "engine_selected"
	case StateSolving:
		return "solving"
	case StateSolved:
		return "solved"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Reason is the failure code recorded on a Failed terminal state.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonEngineUnavailable Reason = "backend_unavailable"
	ReasonNoEngineAvailable Reason = "no_backend_available"
	ReasonNoSolution        Reason = "no_solution"
	ReasonEngineError       Reason = "backend_error"
	ReasonTimeout           Reason = "timeout"
)

// DefaultTimeout bounds an engine invocation when no deployment value
// is configured.
const DefaultTimeout = 60 * time.Second

// Request describes one planning invocation.
type Request struct {
	Engine  string // engine name, or Auto
	Domain  string // domain file path
	Problem string // problem file path
}

// Result is the facade's uniform outcome: exactly one of the Solved or
// Failed variants is populated.
type Result struct {
	State  State
	Engine string
	Plan   *planner.Plan
	Reason Reason
	Detail string
}

// Facade orchestrates a single request: select an engine, invoke it
// under the time budget, and hand back a terminal Solved or Failed
// result. Selection picks exactly one engine per call and never
// cascades to another variant on failure.
type Facade struct {
	Registry *Registry
	Timeout  time.Duration
	Labels   planner.LabelTable
	Logger   *log.Logger
}

// NewFacade wires a facade over the registry with the deployment's
// timeout and label table.
func NewFacade(registry *Registry, timeout time.Duration, labels planner.LabelTable, logger *log.Logger) *Facade {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if labels == nil {
		labels = planner.DefaultLabels
	}
	return &Facade{Registry: registry, Timeout: timeout, Labels: labels, Logger: logger}
}

// Solve runs the Idle -> EngineSelected -> Solving -> {Solved, Failed}
// machine for one request. It never panics or crashes on an engine
// failure; every failure resolves to a Failed result with a reason code
// and the underlying diagnostic.
func (f *Facade) Solve(ctx context.Context, req Request) Result {
	engine, err := f.Registry.Select(ctx, req.Engine)
	if err != nil {
		reason := ReasonEngineUnavailable
		if errors.Is(err, ErrNoEngineAvailable) {
			reason = ReasonNoEngineAvailable
		}
		return Result{State: StateFailed, Reason: reason, Detail: err.Error()}
	}

	sctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	if f.Logger != nil {
		f.Logger.Printf("facade: solving with engine %s (budget %s)", engine.Name(), f.Timeout)
	}
	plan, err := engine.Solve(sctx, req.Domain, req.Problem)
	if err != nil {
		return Result{
			State:  StateFailed,
			Engine: engine.Name(),
			Reason: classify(err),
			Detail: err.Error(),
		}
	}
	return Result{State: StateSolved, Engine: engine.Name(), Plan: plan}
}

// Encode projects a solved result into the requested output mode using
// the facade's label table. It is a pure projection of the plan.
func (f *Facade) Encode(res Result, mode planner.Mode) (string, error) {
	if res.State != StateSolved {
		return "", errors.New("engines: cannot encode an unsolved result")
	}
	return planner.Encode(res.Plan, mode, f.Labels)
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, ErrNoSolution):
		return ReasonNoSolution
	default:
		return ReasonEngineError
	}
}
