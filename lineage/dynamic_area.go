package lineage

import (
	"fmt"
	"sort"
	"strings"
)

const noRelated = -1

// DynamicArea is a lineage (track) of a single object: one event per frame where the object is active.
type DynamicArea struct {
	// Frame -> event
	events map[int]CellEvent
	// Frame -> shape owned by this lineage on that frame.
	// There is no entry for Fusion and Split frames: those shapes are owned by other lineages
	heads map[int]*Shape
	// Arena handle of related lineage (fusion/split counterpart). noRelated if there is none
	related int
	// Arena handle
	handle     int
	absorbed   bool
	identifier int
	relatedID  int
	birth      int
	death      int
	length     int
}

func newDynamicArea(handle int) *DynamicArea {
	return &DynamicArea{
		events:  make(map[int]CellEvent),
		heads:   make(map[int]*Shape),
		related: noRelated,
		handle:  handle,
	}
}

// put stores event on given frame. It returns false when frame is already occupied
func (area *DynamicArea) put(frame int, event CellEvent, head *Shape) bool {
	if _, ok := area.events[frame]; ok {
		return false
	}
	area.replace(frame, event, head)
	return true
}

// replace overwrites event on given frame
func (area *DynamicArea) replace(frame int, event CellEvent, head *Shape) {
	area.events[frame] = event
	if head != nil {
		area.heads[frame] = head
	} else {
		delete(area.heads, frame)
	}
}

// lastFrame returns maximum frame key. Returns -1 for empty lineage
func (area *DynamicArea) lastFrame() int {
	last := -1
	for frame := range area.events {
		if frame > last {
			last = frame
		}
	}
	return last
}

// firstFrame returns minimum frame key. Returns -1 for empty lineage
func (area *DynamicArea) firstFrame() int {
	first := -1
	for frame := range area.events {
		if first == -1 || frame < first {
			first = frame
		}
	}
	return first
}

// GetIdentifier returns dense identifier assigned on finalization (starts from 1)
func (area *DynamicArea) GetIdentifier() int {
	return area.identifier
}

// GetBirth returns first frame of the lineage
func (area *DynamicArea) GetBirth() int {
	return area.birth
}

// GetDeath returns last frame of the lineage
func (area *DynamicArea) GetDeath() int {
	return area.death
}

// GetLength returns death - birth + 1
func (area *DynamicArea) GetLength() int {
	return area.length
}

// GetEvent returns event on given frame
func (area *DynamicArea) GetEvent(frame int) (CellEvent, bool) {
	event, ok := area.events[frame]
	return event, ok
}

// GetShape returns shape owned by the lineage on given frame
func (area *DynamicArea) GetShape(frame int) (*Shape, bool) {
	shape, ok := area.heads[frame]
	return shape, ok
}

// Frames returns sorted frame indices where lineage has an event
func (area *DynamicArea) Frames() []int {
	frames := make([]int, 0, len(area.events))
	for frame := range area.events {
		frames = append(frames, frame)
	}
	sort.Ints(frames)
	return frames
}

// Events returns events in frame order
func (area *DynamicArea) Events() []CellEvent {
	frames := area.Frames()
	events := make([]CellEvent, len(frames))
	for i, frame := range frames {
		events[i] = area.events[frame]
	}
	return events
}

// FirstEvent returns event on the birth frame
func (area *DynamicArea) FirstEvent() (CellEvent, bool) {
	return area.GetEvent(area.firstFrame())
}

// LastEvent returns most recent event
func (area *DynamicArea) LastEvent() (CellEvent, bool) {
	return area.GetEvent(area.lastFrame())
}

// RelatedIdentifier returns identifier of related lineage for genuine fusions and splits. Zero if there is none
func (area *DynamicArea) RelatedIdentifier() int {
	return area.relatedID
}

// String returns human-readable timeline, e.g. "#1 [0:Start(..) 1:Alive(..) 2:End(..)]"
func (area *DynamicArea) String() string {
	frames := area.Frames()
	parts := make([]string, len(frames))
	for i, frame := range frames {
		parts[i] = fmt.Sprintf("%d:%s", frame, area.events[frame])
	}
	return fmt.Sprintf("#%d [%s]", area.identifier, strings.Join(parts, " "))
}

// KindsSequence returns event kinds in frame order, e.g. "Start Alive End"
func (area *DynamicArea) KindsSequence() string {
	events := area.Events()
	parts := make([]string, len(events))
	for i, event := range events {
		parts[i] = event.Kind.String()
	}
	return strings.Join(parts, " ")
}
