// Package planner implements the navigation-planning core: extracting a
// location graph from a PDDL-flavoured problem text, computing shortest
// routes over it, and normalizing/encoding the resulting plans.
package planner

import (
	"fmt"
	"regexp"
	"strings"
)

// Graph maps a location to the locations reachable from it, in the order
// the connections were declared. Traversal cost is one hop per edge.
type Graph map[string][]string

// Problem is the typed model extracted from a problem text: one robot,
// its start and goal locations, and the connectivity graph between the
// declared locations.
type Problem struct {
	Robot     string
	Start     string
	Goal      string
	Locations []string
	Graph     Graph
}

var (
	// name1 name2 ... - typeTag
	objectLinePattern = regexp.MustCompile(`^(.*?)\s+-\s+(\w+)$`)
	// (connected locA locB), plus the Portuguese spelling used by the
	// original hospital problem files.
	connectedPattern = regexp.MustCompile(`(?i)\((?:connected|conectado)\s+([\w-]+)\s+([\w-]+)\)`)
)

// atPattern matches (at <robot> <location>) facts for a specific robot.
func atPattern(robot string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\((?:at|em)\s+` + regexp.QuoteMeta(robot) + `\s+([\w-]+)\)`)
}

// StripComments drops every line whose trimmed content starts with the
// PDDL comment marker ';' so commentary can never produce fact matches.
func StripComments(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// section returns the text between the first occurrence of marker and
// the first following stop, both matched case-insensitively. An absent
// stop extends the section to the end of the content.
func section(content, marker, stop string) (string, bool) {
	lower := strings.ToLower(content)
	begin := strings.Index(lower, marker)
	if begin < 0 {
		return "", false
	}
	begin += len(marker)
	body := content[begin:]
	if stop != "" {
		if end := strings.Index(strings.ToLower(body), stop); end >= 0 {
			body = body[:end]
		}
	}
	return body, true
}

// Extract parses a problem text into its typed model.
//
// Recognized type tags are robot/robo and location/local; position facts
// use at/em and connectivity facts connected/conectado, all
// case-insensitive. When several objects carry a robot tag the first one
// in declaration order wins; multi-robot problems are not supported
// beyond that tie-break. The goal scan runs from the (:goal keyword to
// the end of the document, so a stray (at ...) fact after the goal block
// would win — a documented limitation of the grammar.
func Extract(text string) (*Problem, error) {
	content := StripComments(text)

	objects, ok := section(content, "(:objects", ")")
	if !ok {
		return nil, ErrNoObjectsBlock
	}
	robot, locations, err := scanObjects(objects)
	if err != nil {
		return nil, err
	}

	initBlock, ok := section(content, "(:init", "(:goal")
	if !ok {
		return nil, ErrNoInitialBlock
	}

	at := atPattern(robot)
	start := ""
	if m := at.FindStringSubmatch(initBlock); m != nil {
		start = m[1]
	} else if m := at.FindStringSubmatch(content); m != nil {
		// The bounded match can miss when the init block nests oddly;
		// fall back to a whole-document scan.
		start = m[1]
	} else {
		return nil, fmt.Errorf("%w: robot %q", ErrNoInitialPosition, robot)
	}

	graph := Graph{}
	for _, m := range connectedPattern.FindAllStringSubmatch(initBlock, -1) {
		graph[m[1]] = append(graph[m[1]], m[2])
	}

	goalBlock, ok := section(content, "(:goal", "")
	if !ok {
		return nil, fmt.Errorf("%w: robot %q", ErrNoGoalPosition, robot)
	}
	goal := ""
	if m := at.FindStringSubmatch(goalBlock); m != nil {
		goal = m[1]
	} else {
		return nil, fmt.Errorf("%w: robot %q", ErrNoGoalPosition, robot)
	}

	return &Problem{
		Robot:     robot,
		Start:     start,
		Goal:      goal,
		Locations: locations,
		Graph:     graph,
	}, nil
}

// scanObjects splits the :objects block into robot and location names by
// their declared type tag.
func scanObjects(block string) (string, []string, error) {
	var robots, locations []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := objectLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		names := strings.Fields(m[1])
		switch strings.ToLower(m[2]) {
		case "robot", "robo":
			robots = append(robots, names...)
		case "location", "local":
			locations = append(locations, names...)
		}
	}
	if len(robots) == 0 {
		return "", nil, ErrNoRobotDeclared
	}
	return robots[0], locations, nil
}
