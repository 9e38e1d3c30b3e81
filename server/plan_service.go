// Package server exposes the planning facade as a JSON-RPC 2.0 service
// over stdio or any ReadWriteCloser, for editor and robot-bridge
// integrations.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/lexcodex/routewise/catalog"
	"github.com/lexcodex/routewise/engines"
	"github.com/lexcodex/routewise/planner"
)

// PlanService answers plan.solve and plan.engines requests.
type PlanService struct {
	Facade  *engines.Facade
	Catalog *catalog.Catalog
	Logger  *log.Logger
}

// SolveParams is the plan.solve request payload. Domain and Problem are
// catalog keys or file paths; ProblemText, when set, is written to a
// scratch file and takes precedence over Problem.
type SolveParams struct {
	Engine      string `json:"engine,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Problem     string `json:"problem,omitempty"`
	ProblemText string `json:"problem_text,omitempty"`
	Format      string `json:"format,omitempty"`
}

// SolveResult reports one planning outcome. Payload carries the encoded
// output for solved requests and the no_path record when the goal is
// unreachable; it is empty for every other failure.
type SolveResult struct {
	ID      string `json:"id"`
	State   string `json:"state"`
	Engine  string `json:"engine,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// EngineInfo mirrors one registry descriptor.
type EngineInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Rank      int    `json:"rank"`
}

// Handler adapts the service to a jsonrpc2 connection.
func (s *PlanService) Handler() jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(s.handle)
}

func (s *PlanService) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	switch req.Method {
	case "plan.solve":
		var params SolveParams
		if req.Params != nil {
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
			}
		}
		return s.Solve(ctx, params)
	case "plan.engines":
		return s.Engines(ctx), nil
	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not handled"}
	}
}

// Solve runs one planning request through the facade and encodes the
// outcome. Failures never become transport errors; they are reported in
// the result with their reason code.
func (s *PlanService) Solve(ctx context.Context, params SolveParams) (*SolveResult, error) {
	result := &SolveResult{ID: uuid.NewString()}

	problemPath := s.Catalog.ResolveProblem(params.Problem)
	if params.ProblemText != "" {
		scratch, err := os.MkdirTemp("", "routewise-rpc-")
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		defer os.RemoveAll(scratch)
		problemPath = filepath.Join(scratch, "problem.pddl")
		if err := os.WriteFile(problemPath, []byte(params.ProblemText), 0o644); err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
	}

	mode, err := planner.ParseMode(orDefault(params.Format, s.Catalog.DefaultFormat))
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}

	res := s.Facade.Solve(ctx, engines.Request{
		Engine:  orDefault(params.Engine, s.Catalog.DefaultEngine),
		Domain:  s.Catalog.ResolveDomain(params.Domain),
		Problem: problemPath,
	})
	result.State = res.State.String()
	result.Engine = res.Engine
	if s.Logger != nil {
		s.Logger.Printf("rpc %s: state=%s engine=%s reason=%s", result.ID, result.State, res.Engine, res.Reason)
	}

	if res.State == engines.StateSolved {
		payload, err := s.Facade.Encode(res, mode)
		if err != nil {
			return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		result.Payload = payload
		return result, nil
	}

	result.Reason = string(res.Reason)
	result.Detail = res.Detail
	if res.Reason == engines.ReasonNoSolution {
		if goal := goalOf(problemPath); goal != "" {
			if payload, err := planner.EncodeNoRoute(goal); err == nil {
				result.Payload = payload
			}
		}
	}
	return result, nil
}

// Engines reports the detected engine set.
func (s *PlanService) Engines(ctx context.Context) []EngineInfo {
	descriptors := s.Facade.Registry.Detect(ctx)
	infos := make([]EngineInfo, len(descriptors))
	for i, d := range descriptors {
		infos[i] = EngineInfo{Name: d.Name, Available: d.Available, Rank: d.Rank}
	}
	return infos
}

// Serve runs the JSON-RPC loop over rwc until the peer disconnects or
// the context is cancelled. Messages are line-delimited JSON.
func (s *PlanService) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.PlainObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, s.Handler())
	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

// ServeStdio runs the service on the process's stdin/stdout.
func (s *PlanService) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, stdioReadWriteCloser{})
}

type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return nil }

// goalOf best-effort extracts the goal token for the no_path payload.
func goalOf(problemPath string) string {
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

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
