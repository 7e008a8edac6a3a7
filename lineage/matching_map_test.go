package lineage

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestBuildMatchingMap(t *testing.T) {
	frames := NewFramesFromRects([][]Rectangle{
		{NewRect(0, 0, 10, 10), NewRect(100, 100, 10, 10)},
		{NewRect(5, 5, 10, 10), NewRect(102, 100, 10, 10), NewRect(500, 500, 1, 1)},
		{},
		{NewRect(0, 0, 10, 10)},
	})
	mm, err := BuildMatchingMap(context.Background(), frames, 2, nil)
	if err != nil {
		t.Fatalf("BuildMatchingMap failed: %v", err)
	}
	// Only two overlapping pairs between frames 0 and 1. Empty frame 2 produces nothing
	if mm.Len() != 2 {
		t.Errorf("Expected 2 pairs, got %d", mm.Len())
	}
	if score := mm.Score(0, 0, 0); math.Abs(score-0.25) > eps {
		t.Errorf("Expected score 0.25, got %f", score)
	}
	if score := mm.Score(0, 1, 1); math.Abs(score-0.8) > eps {
		t.Errorf("Expected score 0.8, got %f", score)
	}
	if score := mm.Score(0, 0, 2); score != 0 {
		t.Errorf("Disjoint pair should score 0, got %f", score)
	}
	mm.Clear()
	if mm.Len() != 0 {
		t.Errorf("Expected empty map after Clear, got %d", mm.Len())
	}
}

func TestBuildMatchingMapNil(t *testing.T) {
	_, err := BuildMatchingMap(context.Background(), nil, 1, nil)
	if !errors.Is(err, ErrNilFrames) {
		t.Errorf("Expected ErrNilFrames, got %v", err)
	}
}

func TestBuildMatchingMapProgress(t *testing.T) {
	frames := NewFramesFromRects(touchRects())
	reported := make([]int, 0)
	_, err := BuildMatchingMap(context.Background(), frames, 1, func(percent int) {
		reported = append(reported, percent)
	})
	if err != nil {
		t.Fatalf("BuildMatchingMap failed: %v", err)
	}
	// One report per frame pair
	if len(reported) != len(frames)-1 {
		t.Fatalf("Expected %d reports, got %v", len(frames)-1, reported)
	}
	if reported[len(reported)-1] != matchingPhaseEnd {
		t.Errorf("Matching phase should end with %d, got %d", matchingPhaseEnd, reported[len(reported)-1])
	}
}
