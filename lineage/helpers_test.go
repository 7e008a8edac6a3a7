package lineage

import (
	"context"
	"testing"
)

// trackRects wraps rectangles into shapes and runs tracker over them
func trackRects(t *testing.T, tolerance float64, rects [][]Rectangle) (Frames, []*DynamicArea) {
	t.Helper()
	frames := NewFramesFromRects(rects)
	tracker := NewLineageTracker(tolerance, WithWorkers(2))
	areas, err := tracker.Track(context.Background(), frames)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	return frames, areas
}

// checkCoverage verifies that every shape carries identifier of a lineage owning it
func checkCoverage(t *testing.T, frames Frames, areas []*DynamicArea) {
	t.Helper()
	byID := make(map[int]*DynamicArea, len(areas))
	for _, area := range areas {
		byID[area.GetIdentifier()] = area
	}
	for frame, shapes := range frames {
		for idx, shape := range shapes {
			area, ok := byID[shape.GetLineageID()]
			if !ok {
				t.Errorf("Shape %d on frame %d has no lineage (id %d)", idx, frame, shape.GetLineageID())
				continue
			}
			owned, ok := area.GetShape(frame)
			if !ok || owned != shape {
				t.Errorf("Lineage #%d does not own shape %d on frame %d", area.GetIdentifier(), idx, frame)
			}
		}
	}
}

// owners counts lineages owning the shape on given frame
func owners(areas []*DynamicArea, frame int, shape *Shape) int {
	count := 0
	for _, area := range areas {
		if owned, ok := area.GetShape(frame); ok && owned == shape {
			count++
		}
	}
	return count
}
