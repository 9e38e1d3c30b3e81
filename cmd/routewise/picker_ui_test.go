package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/routewise/catalog"
	"github.com/lexcodex/routewise/engines"
	"github.com/lexcodex/routewise/planner"
)

func testPickerModel() pickerModel {
	registry := engines.NewRegistry(nil, &engines.RouteEngine{})
	facade := engines.NewFacade(registry, time.Second, planner.DefaultLabels, nil)
	return newPickerModel(context.Background(), catalog.Default(), facade)
}

// waitingEngine blocks until its context is cancelled.
type waitingEngine struct{}

func (waitingEngine) Name() string                 { return "waiting" }
func (waitingEngine) Rank() int                    { return 0 }
func (waitingEngine) Probe(context.Context) bool   { return true }
func (waitingEngine) Solve(ctx context.Context, domainPath, problemPath string) (*planner.Plan, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestPickerStartsOnEngineStage(t *testing.T) {
	m := testPickerModel()
	require.Equal(t, phaseEngine, m.phase)
	require.Equal(t, "Pick an engine", m.list.Title)

	items := m.list.Items()
	require.NotEmpty(t, items)
	first, ok := items[0].(pickItem)
	require.True(t, ok)
	require.Equal(t, engines.Auto, first.key)
}

func TestPickerAdvancesThroughStages(t *testing.T) {
	m := testPickerModel()

	next, _ := m.advance()
	m = next.(pickerModel)
	require.Equal(t, phaseDomain, m.phase)
	require.Equal(t, engines.Auto, m.engine)
	require.Equal(t, "Pick a domain", m.list.Title)
}

func TestPickerSolveDoneShowsResult(t *testing.T) {
	m := testPickerModel()
	m.phase = phaseSolving

	next, _ := m.Update(solveDoneMsg{payload: `{"intent":"navigate"}`})
	m = next.(pickerModel)
	require.Equal(t, phaseDone, m.phase)
	require.Contains(t, m.View(), "navigate")

	next, _ = m.Update(solveDoneMsg{failure: "no_solution: unreachable"})
	m = next.(pickerModel)
	require.Contains(t, m.View(), "planning failed")
}

func TestPickerSolveStopsWhenContextCancelled(t *testing.T) {
	registry := engines.NewRegistry(nil, waitingEngine{})
	facade := engines.NewFacade(registry, time.Minute, planner.DefaultLabels, nil)
	ctx, cancel := context.WithCancel(context.Background())
	m := newPickerModel(ctx, catalog.Default(), facade)
	m.engine = engines.Auto
	m.domain = "hospital"
	m.problem = "01"

	cancel()
	done := make(chan tea.Msg, 1)
	go func() { done <- m.solveCmd()() }()

	select {
	case msg := <-done:
		result, ok := msg.(solveDoneMsg)
		require.True(t, ok)
		require.NotEmpty(t, result.failure)
	case <-time.After(5 * time.Second):
		t.Fatal("solve did not stop after cancellation")
	}
}

func TestPickerQuitsOnQ(t *testing.T) {
	m := testPickerModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
}
