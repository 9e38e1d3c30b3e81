package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/lexcodex/routewise/planner"
)

// unifiedSnippet is handed to the python interpreter. It parses the
// domain/problem pair with the unified-planning library and prints the
// plan as structured action objects, one JSON document on stdout.
const unifiedSnippet = `
import json, sys
from unified_planning.io import PDDLReader
from unified_planning.shortcuts import OneshotPlanner, get_environment
get_environment().credits_stream = None
problem = PDDLReader().parse_problem(sys.argv[1], sys.argv[2])
with OneshotPlanner(problem_kind=problem.kind) as engine:
    result = engine.solve(problem)
if result.status.name in ("SOLVED_SATISFICING", "SOLVED_OPTIMALLY"):
    actions = [
        {"name": step.action.name,
         "parameters": [str(p) for p in step.actual_parameters]}
        for step in result.plan.actions
    ]
    print(json.dumps({"status": "solved", "actions": actions}))
else:
    print(json.dumps({"status": "no_solution", "detail": result.status.name}))
`

// UnifiedEngine drives the unified-planning python library through a
// short interpreter invocation. Its native plan shape is a JSON array of
// structured action objects with positional parameters.
type UnifiedEngine struct {
	Python string // defaults to python3
	Logger *log.Logger
}

func (e *UnifiedEngine) Name() string { return "unified" }
func (e *UnifiedEngine) Rank() int    { return 1 }

func (e *UnifiedEngine) python() string {
	if e.Python != "" {
		return e.Python
	}
	return "python3"
}

// Probe checks that the library is importable in the interpreter this
// engine would use. Errors and timeouts count as unavailable.
func (e *UnifiedEngine) Probe(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, probeBudget)
	defer cancel()
	return exec.CommandContext(pctx, e.python(), "-c", "import unified_planning").Run() == nil
}

// nativeAction is the structured shape the snippet emits per step.
type nativeAction struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
}

type unifiedOutput struct {
	Status  string         `json:"status"`
	Detail  string         `json:"detail"`
	Actions []nativeAction `json:"actions"`
}

func (e *UnifiedEngine) Solve(ctx context.Context, domainPath, problemPath string) (*planner.Plan, error) {
	workDir, err := os.MkdirTemp("", "routewise-unified-")
	if err != nil {
		return nil, fmt.Errorf("engines: temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	domain, err := stageInput(workDir, domainPath)
	if err != nil {
		return nil, err
	}
	problem, err := stageInput(workDir, problemPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, e.python(), "-c", unifiedSnippet, domain, problem)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if e.Logger != nil {
		e.Logger.Printf("unified: solving %s with %s", problem, e.python())
	}
	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: python planner killed", ErrTimeout)
	}
	if runErr != nil {
		detail := strings.TrimSpace(stderr.String())
		if strings.Contains(detail, "ModuleNotFoundError") {
			return nil, fmt.Errorf("%w: %s", ErrImportMissing, firstLine(detail))
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && detail != "" {
			return nil, fmt.Errorf("%w: %s", ErrProcessFailed, firstLine(detail))
		}
		return nil, fmt.Errorf("%w: %v", ErrProcessFailed, runErr)
	}

	var out unifiedOutput
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &out); err != nil {
		return nil, &planner.AdaptationError{Engine: e.Name(), Shape: firstLine(stdout.String())}
	}
	if out.Status != "solved" {
		return nil, fmt.Errorf("%w: %s", ErrNoSolution, out.Detail)
	}
	return e.adaptObjects(out.Actions)
}

// adaptObjects maps the structured action objects onto the canonical
// tuple. Navigation actions carry exactly (agent, from, to); any other
// arity is an adaptation failure rather than a silent partial tuple.
func (e *UnifiedEngine) adaptObjects(native []nativeAction) (*planner.Plan, error) {
	if len(native) == 0 {
		return nil, ErrNoSolution
	}
	actions := make([]planner.Action, 0, len(native))
	for _, na := range native {
		if na.Name == "" || len(na.Parameters) != 3 {
			return nil, &planner.AdaptationError{
				Engine: e.Name(),
				Shape:  fmt.Sprintf("%s/%d params", na.Name, len(na.Parameters)),
			}
		}
		actions = append(actions, planner.Action{
			Verb:  na.Name,
			Agent: na.Parameters[0],
			From:  na.Parameters[1],
			To:    na.Parameters[2],
		})
	}
	return planner.PlanFromActions(actions), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
