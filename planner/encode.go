package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects one of the output encodings.
type Mode string

const (
	// ModeActions emits one canonical action line per step.
	ModeActions Mode = "actions"
	// ModeCompact emits a single navigation intent for the final step.
	ModeCompact Mode = "compact"
	// ModeVerbose emits the full intent with waypoints and eta.
	ModeVerbose Mode = "verbose"
	// ModePerStep emits one compact-style record per action.
	ModePerStep Mode = "per-step"
)

// SecondsPerHop is the fixed traversal estimate used to derive eta.
const SecondsPerHop = 30

// ParseMode validates a mode name. "raw" is accepted as an alias for
// actions, matching the catalog format keys.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "actions", "raw":
		return ModeActions, nil
	case "compact", "json", "":
		return ModeCompact, nil
	case "verbose":
		return ModeVerbose, nil
	case "per-step", "steps":
		return ModePerStep, nil
	}
	return "", fmt.Errorf("planner: unknown output mode %q", s)
}

// CompactPayload is the minimal navigation intent.
type CompactPayload struct {
	Task             string `json:"task"`
	Destination      string `json:"destination"`
	DestinationLabel string `json:"destination_label"`
}

// VerbosePayload is the full navigation intent with waypoints and a
// derived duration estimate. Constraints is a reserved extension point
// and always encodes as an empty list.
type VerbosePayload struct {
	Intent           string   `json:"intent"`
	Destination      string   `json:"destination"`
	DestinationLabel string   `json:"destination_label"`
	Task             string   `json:"task"`
	Waypoints        []string `json:"waypoints"`
	WaypointLabels   []string `json:"waypoint_labels"`
	Priority         string   `json:"priority"`
	Constraints      []string `json:"constraints"`
	EtaSeconds       int      `json:"eta_seconds"`
}

// NoRoutePayload reports an unreachable goal. A missing route is a
// normal outcome, not an exceptional one.
type NoRoutePayload struct {
	Task        string `json:"task"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

// Encode projects an already-computed plan into the requested output
// shape. It never re-derives the route or re-invokes an engine, and
// encoding the same plan twice yields byte-identical output.
func Encode(p *Plan, mode Mode, labels LabelTable) (string, error) {
	if p == nil {
		return "", fmt.Errorf("planner: cannot encode a nil plan")
	}
	switch mode {
	case ModeActions:
		lines := make([]string, len(p.Actions))
		for i, a := range p.Actions {
			lines[i] = a.Line()
		}
		return strings.Join(lines, "\n"), nil
	case ModeCompact:
		return marshal(compactFor(p.Destination(), labels))
	case ModeVerbose:
		waypoints := p.Waypoints()
		return marshal(VerbosePayload{
			Intent:           "NAVIGATE",
			Destination:      p.Destination(),
			DestinationLabel: labels.Humanize(p.Destination()),
			Task:             "navigate",
			Waypoints:        waypoints,
			WaypointLabels:   labels.HumanizeAll(waypoints),
			Priority:         "normal",
			Constraints:      []string{},
			EtaSeconds:       p.Hops() * SecondsPerHop,
		})
	case ModePerStep:
		lines := make([]string, len(p.Actions))
		for i, a := range p.Actions {
			line, err := marshal(compactFor(a.To, labels))
			if err != nil {
				return "", err
			}
			lines[i] = line
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("planner: unknown output mode %q", mode)
}

// EncodeNoRoute renders the no-solution payload for an unreachable goal.
func EncodeNoRoute(goal string) (string, error) {
	return marshal(NoRoutePayload{Task: "navigate", Destination: goal, Status: "no_path"})
}

func compactFor(destination string, labels LabelTable) CompactPayload {
	return CompactPayload{
		Task:             "navigate",
		Destination:      destination,
		DestinationLabel: labels.Humanize(destination),
	}
}

func marshal(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
