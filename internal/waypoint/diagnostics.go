package waypoint

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ConstructionError is returned when no graph can be built at all.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return "waypoint graph construction failed: " + e.Reason
}

// WarningKind classifies a non-fatal structural problem.
type WarningKind int

const (
	SelfReference WarningKind = iota
	UnknownNext
	DuplicateID
	DuplicateNext
	DeadEnd
	NoFinishLine
	MultipleFinishLines
	CannotReachFinish
)

var warningText = map[WarningKind]string{
	SelfReference:       "references itself as next waypoint, reference dropped",
	UnknownNext:         "references an unknown next waypoint, reference dropped",
	DuplicateID:         "duplicate waypoint id, record ignored",
	DuplicateNext:       "lists the same next waypoint twice, duplicate dropped",
	DeadEnd:             "has no next waypoint",
	NoFinishLine:        "no finish line waypoint, using the first waypoint",
	MultipleFinishLines: "is an extra finish line waypoint, ignored",
	CannotReachFinish:   "cannot reach the finish line",
}

func (k WarningKind) String() string {
	if s, ok := warningText[k]; ok {
		return s
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// Warning is a structural finding reported while building a graph.
type Warning struct {
	Kind WarningKind
	ID   int // waypoint id the finding concerns
	Ref  int // referenced id, for reference warnings
}

func (w *Warning) Error() string {
	switch w.Kind {
	case UnknownNext, DuplicateNext:
		return fmt.Sprintf("waypoint %d %s (%d)", w.ID, w.Kind, w.Ref)
	default:
		return fmt.Sprintf("waypoint %d %s", w.ID, w.Kind)
	}
}

// Warnings unpacks the findings combined by Graph.Validate.
func Warnings(err error) []*Warning {
	var out []*Warning
	for _, e := range multierr.Errors(err) {
		if w, ok := e.(*Warning); ok {
			out = append(out, w)
		}
	}
	return out
}

func (g *Graph) warn(kind WarningKind, id, ref int) {
	w := &Warning{Kind: kind, ID: id, Ref: ref}
	g.warnings = multierr.Append(g.warnings, w)
	g.log.Warn(w.Error(), zap.Int("waypoint", id), zap.Stringer("kind", kind))
}
