package lineage

import (
	"fmt"
	"strings"
)

// EventKind is for type of lineage event on a single frame
type EventKind uint16

const (
	// EventStart - shape appears with no predecessor
	EventStart EventKind = iota
	// EventAlive - exactly one predecessor continues into exactly one shape
	EventAlive
	// EventEnd - lineage terminates (assigned on finalization only)
	EventEnd
	// EventFusion - two or more predecessors collapse into one shape
	EventFusion
	// EventSplit - one predecessor produces two or more shapes
	EventSplit
	// EventTouch - fusion proven to be a transient contact
	EventTouch
	// EventDeTouch - split proven to be the end of a transient contact
	EventDeTouch
)

func (kind EventKind) String() string {
	switch kind {
	case EventStart:
		return "Start"
	case EventAlive:
		return "Alive"
	case EventEnd:
		return "End"
	case EventFusion:
		return "Fusion"
	case EventSplit:
		return "Split"
	case EventTouch:
		return "Touch"
	case EventDeTouch:
		return "DeTouch"
	default:
		return fmt.Sprintf("EventKind(%d)", uint16(kind))
	}
}

// CellEvent is what happened to a lineage on a single frame.
// Use constructors: payload layout depends on Kind.
//
//	Start(source), End(source)     - one source
//	Alive(source, target)          - one source, one target
//	Fusion/Touch(sources, target)  - many sources, one target
//	Split/DeTouch(source, targets) - one source, many targets
type CellEvent struct {
	Kind    EventKind
	Sources []*Shape
	Targets []*Shape
}

func NewStartEvent(source *Shape) CellEvent {
	return CellEvent{Kind: EventStart, Sources: []*Shape{source}}
}

func NewAliveEvent(source, target *Shape) CellEvent {
	return CellEvent{Kind: EventAlive, Sources: []*Shape{source}, Targets: []*Shape{target}}
}

func NewEndEvent(source *Shape) CellEvent {
	return CellEvent{Kind: EventEnd, Sources: []*Shape{source}}
}

func NewFusionEvent(sources []*Shape, target *Shape) CellEvent {
	return CellEvent{Kind: EventFusion, Sources: copyShapes(sources), Targets: []*Shape{target}}
}

func NewSplitEvent(source *Shape, targets []*Shape) CellEvent {
	return CellEvent{Kind: EventSplit, Sources: []*Shape{source}, Targets: copyShapes(targets)}
}

func NewTouchEvent(sources []*Shape, target *Shape) CellEvent {
	return CellEvent{Kind: EventTouch, Sources: copyShapes(sources), Targets: []*Shape{target}}
}

func NewDeTouchEvent(source *Shape, targets []*Shape) CellEvent {
	return CellEvent{Kind: EventDeTouch, Sources: []*Shape{source}, Targets: copyShapes(targets)}
}

func copyShapes(shapes []*Shape) []*Shape {
	out := make([]*Shape, len(shapes))
	copy(out, shapes)
	return out
}

// Source returns the single source of Start, Alive, End, Split and DeTouch events.
// Returns nil for many-sources events.
func (event CellEvent) Source() *Shape {
	switch event.Kind {
	case EventStart, EventAlive, EventEnd, EventSplit, EventDeTouch:
		if len(event.Sources) > 0 {
			return event.Sources[0]
		}
	}
	return nil
}

// Target returns the single target of Alive, Fusion and Touch events.
// Returns nil for other kinds.
func (event CellEvent) Target() *Shape {
	switch event.Kind {
	case EventAlive, EventFusion, EventTouch:
		if len(event.Targets) > 0 {
			return event.Targets[0]
		}
	}
	return nil
}

// Contains checks if shape is the "current" shape(s) of the event:
// target for Alive/Fusion/Touch, any of targets for Split/DeTouch, source for Start/End
func (event CellEvent) Contains(shape *Shape) bool {
	switch event.Kind {
	case EventStart, EventEnd:
		return event.Source() == shape
	case EventAlive, EventFusion, EventTouch:
		return event.Target() == shape
	case EventSplit, EventDeTouch:
		for _, target := range event.Targets {
			if target == shape {
				return true
			}
		}
	}
	return false
}

// Shapes returns every shape referenced by the event: sources first, then targets
func (event CellEvent) Shapes() []*Shape {
	shapes := make([]*Shape, 0, len(event.Sources)+len(event.Targets))
	shapes = append(shapes, event.Sources...)
	shapes = append(shapes, event.Targets...)
	return shapes
}

// Reclassified turns Fusion into Touch and Split into DeTouch. Other kinds are returned as is
func (event CellEvent) Reclassified() CellEvent {
	switch event.Kind {
	case EventFusion:
		return NewTouchEvent(event.Sources, event.Target())
	case EventSplit:
		return NewDeTouchEvent(event.Source(), event.Targets)
	default:
		return event
	}
}

// IsProvisional checks if event still waits for touch/detouch resolution
func (event CellEvent) IsProvisional() bool {
	return event.Kind == EventFusion || event.Kind == EventSplit
}

func (event CellEvent) String() string {
	switch event.Kind {
	case EventStart, EventEnd:
		return fmt.Sprintf("%s(%s)", event.Kind, shapeLabel(event.Source()))
	case EventAlive:
		return fmt.Sprintf("%s(%s->%s)", event.Kind, shapeLabel(event.Source()), shapeLabel(event.Target()))
	case EventFusion, EventTouch:
		return fmt.Sprintf("%s([%s]->%s)", event.Kind, shapeLabels(event.Sources), shapeLabel(event.Target()))
	case EventSplit, EventDeTouch:
		return fmt.Sprintf("%s(%s->[%s])", event.Kind, shapeLabel(event.Source()), shapeLabels(event.Targets))
	default:
		return event.Kind.String()
	}
}

func shapeLabel(shape *Shape) string {
	if shape == nil {
		return "nil"
	}
	return shape.GetID().String()[:8]
}

func shapeLabels(shapes []*Shape) string {
	labels := make([]string, len(shapes))
	for i, shape := range shapes {
		labels[i] = shapeLabel(shape)
	}
	return strings.Join(labels, ",")
}
