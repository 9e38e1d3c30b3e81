package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexcodex/routewise/catalog"
	"github.com/lexcodex/routewise/engines"
	"github.com/lexcodex/routewise/planner"
)

type pickPhase int

const (
	phaseEngine pickPhase = iota
	phaseDomain
	phaseProblem
	phaseSolving
	phaseDone
)

type pickItem struct {
	key   string
	title string
	desc  string
}

func (i pickItem) Title() string       { return i.title }
func (i pickItem) Description() string { return i.desc }
func (i pickItem) FilterValue() string { return i.key }

type solveDoneMsg struct {
	payload string
	failure string
}

// pickerModel walks engine -> domain -> problem, runs the facade, and
// shows the verbose payload.
type pickerModel struct {
	ctx    context.Context
	cat    *catalog.Catalog
	facade *engines.Facade

	phase pickPhase
	list  list.Model
	spin  spinner.Model

	engine  string
	domain  string
	problem string

	payload string
	failure string

	width  int
	height int
}

func newPickerModel(ctx context.Context, cat *catalog.Catalog, facade *engines.Facade) pickerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := pickerModel{ctx: ctx, cat: cat, facade: facade, spin: sp, width: 80, height: 24}
	m.list = m.stageList()
	return m
}

// stageList builds the list for the current phase from the catalog.
func (m pickerModel) stageList() list.Model {
	var title string
	var items []list.Item
	switch m.phase {
	case phaseEngine:
		title = "Pick an engine"
		items = append(items, pickItem{key: engines.Auto, title: "auto", desc: "Best available engine"})
		for _, key := range catalog.Keys(m.cat.Engines) {
			entry := m.cat.Engines[key]
			items = append(items, pickItem{key: key, title: key, desc: entry.Description})
		}
	case phaseDomain:
		title = "Pick a domain"
		for _, key := range catalog.Keys(m.cat.Domains) {
			entry := m.cat.Domains[key]
			items = append(items, pickItem{key: key, title: key, desc: entry.Name})
		}
	case phaseProblem:
		title = "Pick a problem"
		for _, key := range catalog.Keys(m.cat.Problems) {
			entry := m.cat.Problems[key]
			items = append(items, pickItem{key: key, title: key, desc: entry.Name})
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

func (m pickerModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.phase != phaseSolving {
				return m, tea.Quit
			}
		case "enter":
			return m.advance()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case solveDoneMsg:
		m.phase = phaseDone
		m.payload = msg.payload
		m.failure = msg.failure
		return m, nil
	}

	if m.phase < phaseSolving {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// advance records the selection for the current phase and moves on;
// after the last pick it kicks off the solve.
func (m pickerModel) advance() (tea.Model, tea.Cmd) {
	if m.phase == phaseDone {
		return m, tea.Quit
	}
	if m.phase >= phaseSolving {
		return m, nil
	}
	item, ok := m.list.SelectedItem().(pickItem)
	if !ok {
		return m, nil
	}
	switch m.phase {
	case phaseEngine:
		m.engine = item.key
		m.phase = phaseDomain
	case phaseDomain:
		m.domain = item.key
		m.phase = phaseProblem
	case phaseProblem:
		m.problem = item.key
		m.phase = phaseSolving
		return m, tea.Batch(m.spin.Tick, m.solveCmd())
	}
	m.list = m.stageList()
	return m, nil
}

// solveCmd runs on the picker's context so closing the program aborts
// an in-flight engine invocation instead of letting it run out its
// budget.
func (m pickerModel) solveCmd() tea.Cmd {
	ctx, facade, cat := m.ctx, m.facade, m.cat
	if ctx == nil {
		ctx = context.Background()
	}
	engine, domain, problem := m.engine, m.domain, m.problem
	return func() tea.Msg {
		res := facade.Solve(ctx, engines.Request{
			Engine:  engine,
			Domain:  cat.ResolveDomain(domain),
			Problem: cat.ResolveProblem(problem),
		})
		if res.State != engines.StateSolved {
			return solveDoneMsg{failure: fmt.Sprintf("%s: %s", res.Reason, res.Detail)}
		}
		payload, err := facade.Encode(res, planner.ModeVerbose)
		if err != nil {
			return solveDoneMsg{failure: err.Error()}
		}
		return solveDoneMsg{payload: payload}
	}
}

func (m pickerModel) View() string {
	switch m.phase {
	case phaseSolving:
		return fmt.Sprintf("\n  %s solving %s/%s with %s...\n", m.spin.View(), m.domain, m.problem, m.engine)
	case phaseDone:
		if m.failure != "" {
			return "\n" + errorStyle.Render("planning failed: ") + m.failure + "\n\n" + dimStyle.Render("press enter to exit") + "\n"
		}
		return "\n" + resultBoxStyle.Render(m.payload) + "\n\n" + dimStyle.Render("press enter to exit") + "\n"
	default:
		return m.list.View()
	}
}
