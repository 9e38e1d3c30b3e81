package planner

import (
	"errors"
	"fmt"
)

// Extraction failures. Each one names the missing piece of the problem
// text so callers can report a specific reason instead of a generic
// parse error.
var (
	ErrNoObjectsBlock    = errors.New("planner: no :objects block in problem")
	ErrNoRobotDeclared   = errors.New("planner: no robot declared in :objects")
	ErrNoInitialBlock    = errors.New("planner: no :init block in problem")
	ErrNoInitialPosition = errors.New("planner: robot initial position not found in :init")
	ErrNoGoalPosition    = errors.New("planner: goal position not found in :goal")
)

// AdaptationError reports a native plan fragment an engine adapter could
// not map onto the canonical action tuple. Adapters fail loudly on
// unknown shapes instead of emitting partial tuples.
type AdaptationError struct {
	Engine string
	Shape  string
}

func (e *AdaptationError) Error() string {
	return fmt.Sprintf("planner: engine %s produced an unadaptable action shape: %s", e.Engine, e.Shape)
}
