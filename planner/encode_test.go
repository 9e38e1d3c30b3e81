package planner

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chainPlan() *Plan {
	return PlanFromRoute("r1", []string{"base", "hall", "ward", "pharmacy"})
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"actions":  ModeActions,
		"raw":      ModeActions,
		"compact":  ModeCompact,
		"":         ModeCompact,
		"verbose":  ModeVerbose,
		"per-step": ModePerStep,
		"steps":    ModePerStep,
	} {
		mode, err := ParseMode(input)
		require.NoError(t, err, "input %q", input)
		require.Equal(t, want, mode, "input %q", input)
	}
	_, err := ParseMode("xml")
	require.Error(t, err)
}

func TestEncodeActionsRoundTrip(t *testing.T) {
	rawLines := []string{
		"(navigate r1 base hall)",
		"(navigate r1 hall ward)",
		"(navigate r1 ward pharmacy)",
	}
	var actions []Action
	for _, line := range rawLines {
		action, err := ParseActionLine(line)
		require.NoError(t, err)
		actions = append(actions, action)
	}
	out, err := Encode(PlanFromActions(actions), ModeActions, DefaultLabels)
	require.NoError(t, err)
	require.Equal(t, strings.Join(rawLines, "\n"), out)
}

func TestEncodeCompact(t *testing.T) {
	out, err := Encode(chainPlan(), ModeCompact, DefaultLabels)
	require.NoError(t, err)
	require.Equal(t, `{"task":"navigate","destination":"pharmacy","destination_label":"pharmacy"}`, out)
}

func TestEncodeVerbose(t *testing.T) {
	out, err := Encode(chainPlan(), ModeVerbose, DefaultLabels)
	require.NoError(t, err)

	var payload VerbosePayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "NAVIGATE", payload.Intent)
	require.Equal(t, "navigate", payload.Task)
	require.Equal(t, "pharmacy", payload.Destination)
	require.Equal(t, []string{"base", "hall", "ward", "pharmacy"}, payload.Waypoints)
	require.Equal(t, []string{"base", "hall", "ward", "pharmacy"}, payload.WaypointLabels)
	require.Equal(t, 3*SecondsPerHop, payload.EtaSeconds)
	require.Equal(t, "normal", payload.Priority)
	// The reserved constraints list must encode as [], never null.
	require.Contains(t, out, `"constraints":[]`)
}

func TestEncodePerStep(t *testing.T) {
	out, err := Encode(chainPlan(), ModePerStep, DefaultLabels)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for i, destination := range []string{"hall", "ward", "pharmacy"} {
		var payload CompactPayload
		require.NoError(t, json.Unmarshal([]byte(lines[i]), &payload))
		require.Equal(t, destination, payload.Destination)
		require.Equal(t, "navigate", payload.Task)
	}
}

func TestEncodeIdempotent(t *testing.T) {
	plan := chainPlan()
	for _, mode := range []Mode{ModeActions, ModeCompact, ModeVerbose, ModePerStep} {
		first, err := Encode(plan, mode, DefaultLabels)
		require.NoError(t, err)
		second, err := Encode(plan, mode, DefaultLabels)
		require.NoError(t, err)
		require.Equal(t, first, second, "mode %s", mode)
	}
}

func TestEncodeDegeneratePlan(t *testing.T) {
	plan := PlanFromRoute("r1", []string{"base"})
	out, err := Encode(plan, ModeVerbose, DefaultLabels)
	require.NoError(t, err)
	var payload VerbosePayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "base", payload.Destination)
	require.Equal(t, []string{"base"}, payload.Waypoints)
	require.Zero(t, payload.EtaSeconds)
}

func TestEncodeNoRoute(t *testing.T) {
	out, err := EncodeNoRoute("pharmacy")
	require.NoError(t, err)
	require.Equal(t, `{"task":"navigate","destination":"pharmacy","status":"no_path"}`, out)
}

func TestHumanize(t *testing.T) {
	require.Equal(t, "farmácia", DefaultLabels.Humanize("farmacia"))
	require.Equal(t, "corredor central", DefaultLabels.Humanize("corredor_central"))
	require.Equal(t, "ward a", DefaultLabels.Humanize("ward_a"))
	require.Equal(t, "pharmacy", DefaultLabels.Humanize("pharmacy"))
}

func TestHumanizeOverridesDoNotLeak(t *testing.T) {
	// An override for one token must not affect any other token.
	table := LabelTable{"icu": "intensive care unit"}
	require.Equal(t, "intensive care unit", table.Humanize("icu"))
	require.Equal(t, "icu 2", table.Humanize("icu_2"))
	require.Equal(t, "ward", table.Humanize("ward"))
}

func TestLabelTableMerge(t *testing.T) {
	merged := DefaultLabels.Merge(map[string]string{
		"farmacia": "central pharmacy",
		"lab":      "laboratory",
	})
	require.Equal(t, "central pharmacy", merged.Humanize("farmacia"))
	require.Equal(t, "laboratory", merged.Humanize("lab"))
	require.Equal(t, "recepção", merged.Humanize("recepcao"))
	// The base table is untouched.
	require.Equal(t, "farmácia", DefaultLabels.Humanize("farmacia"))
}
