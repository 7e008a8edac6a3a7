package lineage

import (
	"image"
	"math"
)

// Rectangle is an axis-aligned bounding box of a segmented shape
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// Area returns width*height of the rectangle
func (rect Rectangle) Area() float64 {
	return rect.Width * rect.Height
}

// Center returns center point of the rectangle
func (rect Rectangle) Center() Point {
	return Point{
		X: rect.X + rect.Width/2.0,
		Y: rect.Y + rect.Height/2.0,
	}
}

// Intersection returns overlapping part of two rectangles.
// Second return value is false when rectangles do not overlap.
func (rect Rectangle) Intersection(other Rectangle) (Rectangle, bool) {
	xA := maxFloat64(rect.X, other.X)
	yA := maxFloat64(rect.Y, other.Y)
	xB := minFloat64(rect.X+rect.Width, other.X+other.Width)
	yB := minFloat64(rect.Y+rect.Height, other.Y+other.Height)
	if xB <= xA || yB <= yA {
		return Rectangle{}, false
	}
	return Rectangle{
		X:      xA,
		Y:      yA,
		Width:  xB - xA,
		Height: yB - yA,
	}, true
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(float64(p1.X-p2.X), 2) + math.Pow(float64(p1.Y-p2.Y), 2))
}
