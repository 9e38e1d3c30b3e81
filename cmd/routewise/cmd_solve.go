package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/routewise/engines"
	"github.com/lexcodex/routewise/planner"
)

func newSolveCmd() *cobra.Command {
	var engineName string
	var format string
	var output string
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "solve <domain> <problem>",
		Short: "Plan a navigation problem and encode the result",
		Long: "Solve resolves <domain> and <problem> against the catalog " +
			"(unknown keys are treated as file paths), runs the selected " +
			"engine, and prints the encoded plan on stdout.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: solve needs <domain> and <problem>", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := planner.ParseMode(orDefault(format, cat.DefaultFormat))
			if err != nil {
				return err
			}
			problem := cat.ResolveProblem(args[1])
			facade := newFacade(timeoutSeconds)
			res := facade.Solve(cmd.Context(), engines.Request{
				Engine:  orDefault(engineName, cat.DefaultEngine),
				Domain:  cat.ResolveDomain(args[0]),
				Problem: problem,
			})
			if res.State != engines.StateSolved {
				return reportFailure(cmd, res, problem, mode)
			}
			payload, err := facade.Encode(res, mode)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, []byte(payload+"\n"), 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("plan written to "+output))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}

	cmd.Flags().StringVar(&engineName, "engine", "", "Engine to use (downward, unified, route, auto)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (actions, compact, verbose, per-step)")
	cmd.Flags().StringVar(&output, "output", "", "Write the payload to a file instead of stdout")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Engine time budget in seconds (0 = catalog value)")
	return cmd
}

// reportFailure emits exactly one diagnostic per failed request: the
// no_path payload for an unreachable goal, a single stderr line for
// everything else. Never partial JSON.
func reportFailure(cmd *cobra.Command, res engines.Result, problemPath string, mode planner.Mode) error {
	if res.Reason == engines.ReasonNoSolution {
		if mode == planner.ModeActions {
			fmt.Fprintln(cmd.OutOrStdout(), "No solution found (disconnected graph)")
			return errReported
		}
		if goal := goalToken(problemPath); goal != "" {
			payload, err := planner.EncodeNoRoute(goal)
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), payload)
				return errReported
			}
		}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("planning failed:")+" "+res.Detail)
	return errReported
}

// goalToken best-effort extracts the goal for the no_path payload.
func goalToken(problemPath string) string {
	data, err := os.ReadFile(problemPath)
	if err != nil {
		return ""
	}
	problem, err := planner.Extract(string(data))
	if err != nil {
		return ""
	}
	return problem.Goal
}
