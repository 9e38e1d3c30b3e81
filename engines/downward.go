package engines

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexcodex/routewise/planner"
)

const (
	downwardBinary = "fast-downward.py"
	probeBudget    = 5 * time.Second
)

// conventionalDownwardDirs lists install locations checked when the
// binary is not on PATH.
func conventionalDownwardDirs() []string {
	dirs := []string{"/opt/downward", "/usr/local/downward"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(home, "downward")}, dirs...)
	}
	return dirs
}

// DownwardEngine invokes the Fast Downward planner as an external
// process. Its native plan shape is line-oriented action text written to
// a plan file.
type DownwardEngine struct {
	Binary string // defaults to fast-downward.py
	Search string // defaults to astar(lmcut())
	Logger *log.Logger
}

func (e *DownwardEngine) Name() string { return "downward" }
func (e *DownwardEngine) Rank() int    { return 0 }

func (e *DownwardEngine) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return downwardBinary
}

func (e *DownwardEngine) search() string {
	if e.Search != "" {
		return e.Search
	}
	return "astar(lmcut())"
}

// Probe checks the wrapped-shell environment first, then PATH, then the
// conventional install directories. Probe failures count as unavailable
// and never propagate.
func (e *DownwardEngine) Probe(ctx context.Context) bool {
	_, _, ok := e.locate(ctx)
	return ok
}

// locate resolves the invocation: the command name plus whether it must
// run through the wrapped shell.
func (e *DownwardEngine) locate(ctx context.Context) (command string, viaShell bool, ok bool) {
	pctx, cancel := context.WithTimeout(ctx, probeBudget)
	defer cancel()
	if err := exec.CommandContext(pctx, "wsl", "which", e.binary()).Run(); err == nil {
		return e.binary(), true, true
	}
	if path, err := exec.LookPath(e.binary()); err == nil {
		return path, false, true
	}
	for _, dir := range conventionalDownwardDirs() {
		candidate := filepath.Join(dir, e.binary())
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, false, true
		}
	}
	return "", false, false
}

// Solve stages the inputs, runs the planner with a plan-file capture,
// and adapts the resulting action lines. The staged inputs and the plan
// file are removed on every exit path.
func (e *DownwardEngine) Solve(ctx context.Context, domainPath, problemPath string) (*planner.Plan, error) {
	command, viaShell, ok := e.locate(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", ErrEngineUnavailable, e.binary())
	}

	workDir, err := os.MkdirTemp("", "routewise-downward-")
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
	planFile := filepath.Join(workDir, "plan.txt")

	var cmd *exec.Cmd
	if viaShell {
		// The wrapped shell cannot open host-native paths as-is.
		cmd = exec.CommandContext(ctx, "wsl", command,
			shellPath(domain), shellPath(problem),
			"--search", e.search(), "--plan-file", shellPath(planFile))
	} else {
		cmd = exec.CommandContext(ctx, command,
			domain, problem, "--search", e.search(), "--plan-file", planFile)
	}
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	if e.Logger != nil {
		e.Logger.Printf("downward: running %s", strings.Join(cmd.Args, " "))
	}
	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: fast-downward killed", ErrTimeout)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = fmt.Sprintf("exit code %d", exitErr.ExitCode())
			}
			return nil, fmt.Errorf("%w: %s", ErrProcessFailed, detail)
		}
		return nil, fmt.Errorf("%w: %v", ErrProcessFailed, runErr)
	}

	data, err := os.ReadFile(planFile)
	if err != nil {
		return nil, fmt.Errorf("%w: planner wrote no plan file", ErrNoSolution)
	}
	return e.adaptLines(string(data))
}

// shellPath rewrites a host path for the wrapped shell. Drive-letter
// paths become /mnt/<drive>/...; everything else passes through with
// forward slashes.
func shellPath(path string) string {
	if len(path) > 1 && path[1] == ':' {
		drive := strings.ToLower(path[:1])
		rest := strings.ReplaceAll(path[2:], `\`, "/")
		return "/mnt/" + drive + rest
	}
	return filepath.ToSlash(path)
}

// adaptLines converts Fast Downward's line-oriented plan text into the
// canonical action sequence. Comment lines (cost annotations) are
// skipped; anything else that is not a 4-token action is an adaptation
// failure.
func (e *DownwardEngine) adaptLines(text string) (*planner.Plan, error) {
	var actions []planner.Action
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		action, err := planner.ParseActionLine(line)
		if err != nil {
			return nil, &planner.AdaptationError{Engine: e.Name(), Shape: line}
		}
		actions = append(actions, action)
	}
	if len(actions) == 0 {
		return nil, ErrNoSolution
	}
	return planner.PlanFromActions(actions), nil
}
