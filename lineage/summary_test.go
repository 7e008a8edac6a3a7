package lineage

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	_, areas := trackRects(t, 0.1, [][]Rectangle{
		{NewRect(0, 0, 20, 10)},
		{NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10)},
		{NewRect(0, 0, 20, 10)},
	})
	summary := Summarize(areas)
	if summary.Lineages != 4 {
		t.Errorf("Expected 4 lineages, got %d", summary.Lineages)
	}
	if summary.Events[EventStart] != 4 {
		t.Errorf("Expected 4 Start events, got %d", summary.Events[EventStart])
	}
	if summary.GenuineSplits() != 1 || summary.GenuineFusions() != 2 || summary.Touches() != 0 {
		t.Errorf("Unexpected event counts: %v", summary.Events)
	}
	// Lengths are 2, 2, 2, 1
	if math.Abs(summary.MeanLength-1.75) > eps {
		t.Errorf("Expected mean length 1.75, got %f", summary.MeanLength)
	}
	if math.Abs(summary.StdDevLength-0.5) > eps {
		t.Errorf("Expected length std dev 0.5, got %f", summary.StdDevLength)
	}
	if summary.MinLength != 1 || summary.MaxLength != 2 {
		t.Errorf("Expected length range [1, 2], got [%f, %f]", summary.MinLength, summary.MaxLength)
	}
}

func TestSummarizeTouch(t *testing.T) {
	_, areas := trackRects(t, 0.1, touchRects())
	summary := Summarize(areas)
	if summary.Touches() != 2 || summary.Events[EventDeTouch] != 2 {
		t.Errorf("Expected 2 touches and 2 detouches, got %v", summary.Events)
	}
	if summary.StdDevLength != 0 {
		t.Errorf("Equal lengths should have zero std dev, got %f", summary.StdDevLength)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Lineages != 0 || summary.MeanLength != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}
