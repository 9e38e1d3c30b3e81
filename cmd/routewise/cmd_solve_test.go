package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const solvableProblem = `
(:objects
  r1 - robot
  base pharmacy - location
)
(:init
  (at r1 base)
  (connected base pharmacy)
)
(:goal (at r1 pharmacy))
`

func TestSolveOutputWritesSelectedFormat(t *testing.T) {
	dir := t.TempDir()
	domain := filepath.Join(dir, "domain.pddl")
	problem := filepath.Join(dir, "problem.pddl")
	require.NoError(t, os.WriteFile(domain, []byte("(define (domain hospital))"), 0o644))
	require.NoError(t, os.WriteFile(problem, []byte(solvableProblem), 0o644))
	out := filepath.Join(dir, "plan.json")

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"--catalog", filepath.Join(dir, "routewise.yaml"),
		"solve", domain, problem,
		"--engine", "route",
		"--format", "compact",
		"--output", out,
	})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, `{"task":"navigate","destination":"pharmacy","destination_label":"pharmacy"}`+"\n", string(data))
}
