package planner

import (
	"fmt"
	"strings"
)

// Verb is the single navigation verb this domain knows.
const Verb = "navigate"

// Action is one normalized navigation step. Actions are produced once by
// an engine adapter and immutable afterward.
type Action struct {
	Verb  string
	Agent string
	From  string
	To    string
}

// Line renders the canonical action text: (verb agent from to).
func (a Action) Line() string {
	return fmt.Sprintf("(%s %s %s %s)", a.Verb, a.Agent, a.From, a.To)
}

// ParseActionLine parses a canonical action line back into an Action.
func ParseActionLine(line string) (Action, error) {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Action{}, fmt.Errorf("planner: action line %q does not have 4 tokens", line)
	}
	return Action{Verb: fields[0], Agent: fields[1], From: fields[2], To: fields[3]}, nil
}

// Plan is the canonical ordered action sequence. Origin records where
// the agent departs from; it disambiguates the degenerate already-at-goal
// plan, which carries no actions at all.
type Plan struct {
	Agent   string
	Origin  string
	Actions []Action
}

// PlanFromRoute derives one navigate action per consecutive location
// pair of the route.
func PlanFromRoute(robot string, route []string) *Plan {
	p := &Plan{Agent: robot}
	if len(route) == 0 {
		return p
	}
	p.Origin = route[0]
	for i := 0; i+1 < len(route); i++ {
		p.Actions = append(p.Actions, Action{Verb: Verb, Agent: robot, From: route[i], To: route[i+1]})
	}
	return p
}

// PlanFromActions wraps an already-adapted action slice, inferring the
// agent and origin from the first step.
func PlanFromActions(actions []Action) *Plan {
	p := &Plan{Actions: actions}
	if len(actions) > 0 {
		p.Agent = actions[0].Agent
		p.Origin = actions[0].From
	}
	return p
}

// Destination is the final location the plan ends at. An empty plan ends
// where it starts.
func (p *Plan) Destination() string {
	if len(p.Actions) == 0 {
		return p.Origin
	}
	return p.Actions[len(p.Actions)-1].To
}

// Waypoints lists every location the plan visits, origin included.
func (p *Plan) Waypoints() []string {
	ws := make([]string, 0, len(p.Actions)+1)
	if p.Origin != "" {
		ws = append(ws, p.Origin)
	}
	for _, a := range p.Actions {
		ws = append(ws, a.To)
	}
	return ws
}

// Hops is the number of edge traversals the plan performs.
func (p *Plan) Hops() int {
	return len(p.Actions)
}
