package server

import (
	"context"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/routewise/catalog"
	"github.com/lexcodex/routewise/engines"
	"github.com/lexcodex/routewise/planner"
)

const connectedProblem = `
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

const disconnectedProblem = `
(:objects
  r1 - robot
  base pharmacy - location
)
(:init
  (at r1 base)
)
(:goal (at r1 pharmacy))
`

func testService() *PlanService {
	registry := engines.NewRegistry(nil, &engines.RouteEngine{})
	facade := engines.NewFacade(registry, 5*time.Second, planner.DefaultLabels, nil)
	return &PlanService{
		Facade:  facade,
		Catalog: catalog.Default(),
		Logger:  log.New(io.Discard, "", 0),
	}
}

// dialService wires the service to an in-memory pipe and returns a
// client connection.
func dialService(t *testing.T, svc *PlanService) *jsonrpc2.Conn {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = svc.Serve(ctx, serverSide) }()

	client := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.PlainObjectCodec{}),
		jsonrpc2.HandlerWithError(func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (interface{}, error) {
			return nil, nil
		}),
	)
	t.Cleanup(func() {
		_ = client.Close()
		cancel()
	})
	return client
}

func TestPlanSolveOverRPC(t *testing.T) {
	client := dialService(t, testService())

	var result SolveResult
	err := client.Call(context.Background(), "plan.solve", SolveParams{
		Engine:      "route",
		ProblemText: connectedProblem,
		Format:      "compact",
	}, &result)
	require.NoError(t, err)
	require.Equal(t, "solved", result.State)
	require.Equal(t, "route", result.Engine)
	require.NotEmpty(t, result.ID)
	require.Equal(t, `{"task":"navigate","destination":"pharmacy","destination_label":"pharmacy"}`, result.Payload)
}

func TestPlanSolveNoRouteOverRPC(t *testing.T) {
	client := dialService(t, testService())

	var result SolveResult
	err := client.Call(context.Background(), "plan.solve", SolveParams{
		ProblemText: disconnectedProblem,
	}, &result)
	require.NoError(t, err, "planning failures are results, not transport errors")
	require.Equal(t, "failed", result.State)
	require.Equal(t, "no_solution", result.Reason)
	require.Equal(t, `{"task":"navigate","destination":"pharmacy","status":"no_path"}`, result.Payload)
}

func TestPlanEnginesOverRPC(t *testing.T) {
	client := dialService(t, testService())

	var infos []EngineInfo
	err := client.Call(context.Background(), "plan.engines", nil, &infos)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, EngineInfo{Name: "route", Available: true, Rank: 2}, infos[0])
}

func TestUnknownMethodOverRPC(t *testing.T) {
	client := dialService(t, testService())

	var result any
	err := client.Call(context.Background(), "plan.bogus", nil, &result)
	require.Error(t, err)
}

func TestSolveRejectsUnknownFormat(t *testing.T) {
	svc := testService()
	_, err := svc.Solve(context.Background(), SolveParams{
		ProblemText: connectedProblem,
		Format:      "xml",
	})
	require.Error(t, err)
}
