package lineage

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correnctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correnctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correnctAnswer)
	}
}

func TestRectangleIntersection(t *testing.T) {
	r1 := NewRect(0, 0, 10, 10)
	r2 := NewRect(5, 5, 10, 10)
	inter, ok := r1.Intersection(r2)
	if !ok {
		t.Fatal("Rectangles should overlap")
	}
	expected := Rectangle{X: 5, Y: 5, Width: 5, Height: 5}
	if inter != expected {
		t.Errorf("Expected intersection %v, got %v", expected, inter)
	}
	if inter.Area() != 25 {
		t.Errorf("Expected area 25, got %f", inter.Area())
	}

	// Touching edges only
	_, ok = r1.Intersection(NewRect(10, 0, 5, 5))
	if ok {
		t.Error("Rectangles sharing an edge should not overlap")
	}
}

func TestRectangleCenter(t *testing.T) {
	rect := NewRectFrom(image.Rect(10, 20, 40, 60))
	center := rect.Center()
	expected := Point{X: 25, Y: 40}
	if center != expected {
		t.Errorf("Expected center %v, got %v", expected, center)
	}
}
