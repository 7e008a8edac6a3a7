package lineage

import (
	"math"
	"testing"
)

func TestTrajectory(t *testing.T) {
	rects := make([][]Rectangle, 10)
	for i := range rects {
		rects[i] = []Rectangle{NewRect(float64(2*i), 0, 20, 20)}
	}
	_, areas := trackRects(t, 0.1, rects)
	if len(areas) != 1 {
		t.Fatalf("Expected 1 lineage, got %d", len(areas))
	}
	dt := 1.0 / 25.0 // emulate 25 fps
	points, err := areas[0].Trajectory(dt)
	if err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("Expected 10 points, got %d", len(points))
	}
	for i, point := range points {
		if point.Frame != i {
			t.Errorf("Expected frame %d, got %d", i, point.Frame)
		}
		if !point.Observed {
			t.Errorf("Frame %d should be observed", i)
		}
		expectedRaw := Point{X: float64(2*i) + 10, Y: 10}
		if point.Raw != expectedRaw {
			t.Errorf("Frame %d: expected raw center %v, got %v", i, expectedRaw, point.Raw)
		}
	}
	if points[0].Smoothed != points[0].Raw {
		t.Errorf("First smoothed point should equal raw center, got %v", points[0].Smoothed)
	}
	if PathLength(points) <= 0 {
		t.Error("Moving object should have positive path length")
	}
}

func TestTrajectoryUnobservedFrames(t *testing.T) {
	_, areas := trackRects(t, 0.1, [][]Rectangle{
		{NewRect(0, 0, 20, 10)},
		{NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10)},
	})
	// First lineage ends with Split: no own shape on frame 1
	points, err := areas[0].Trajectory(1.0)
	if err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(points))
	}
	if points[1].Observed {
		t.Error("Split frame should not be observed")
	}
	if math.IsNaN(points[1].Smoothed.X) || math.IsNaN(points[1].Smoothed.Y) {
		t.Error("Predicted point should be a number")
	}
}
