package lineage

import (
	"math"
	"testing"
)

func TestMatchScoreIdentical(t *testing.T) {
	rects := []Rectangle{
		NewRect(0, 0, 10, 10),
		NewRect(378.0, 147.0, 173.0, 243.0),
		NewRect(-5, -5, 1, 100),
	}
	for _, rect := range rects {
		score := MatchScore(rect, rect)
		if math.Abs(score-1.0) > eps {
			t.Errorf("Identical boxes %v should score 1.0, got %f", rect, score)
		}
	}
}

func TestMatchScoreDisjoint(t *testing.T) {
	r1 := NewRect(0, 0, 10, 10)
	r2 := NewRect(100, 100, 10, 10)
	if score := MatchScore(r1, r2); score != 0 {
		t.Errorf("Disjoint boxes should score 0.0, got %f", score)
	}
}

func TestMatchScoreSymmetric(t *testing.T) {
	pairs := [][2]Rectangle{
		{NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10)},
		{NewRect(0, 0, 100, 100), NewRect(10, 10, 5, 5)},
		{NewRect(374.0, 147.0, 180.0, 253.0), NewRect(375.0, 154.0, 178.0, 256.0)},
	}
	for _, pair := range pairs {
		ab := MatchScore(pair[0], pair[1])
		ba := MatchScore(pair[1], pair[0])
		if math.Abs(ab-ba) > eps {
			t.Errorf("Score should be symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestMatchScoreSmallerArea(t *testing.T) {
	// Small box is fully covered by big one
	score := MatchScore(NewRect(0, 0, 100, 100), NewRect(10, 10, 5, 5))
	if math.Abs(score-1.0) > eps {
		t.Errorf("Covered box should score 1.0, got %f", score)
	}
	// Quarter of the smaller box overlaps
	score = MatchScore(NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10))
	if math.Abs(score-0.25) > eps {
		t.Errorf("Expected 0.25, got %f", score)
	}
}

func TestMatchScoreDegenerate(t *testing.T) {
	score := MatchScore(NewRect(0, 0, 0, 10), NewRect(0, 0, 10, 10))
	if score != 0 {
		t.Errorf("Zero-width box should score 0.0, got %f", score)
	}
}
