package lineage

import (
	"github.com/google/uuid"
)

// Shape is a segmented area on a single frame.
// Bounding box is immutable; lineage identifier is assigned by the tracker.
type Shape struct {
	id        uuid.UUID
	bbox      Rectangle
	lineageID int
}

// NewShape creates a new Shape with given bounding box
func NewShape(bbox Rectangle) *Shape {
	return &Shape{
		id:   uuid.New(),
		bbox: bbox,
	}
}

// GetID returns shape's identifier
func (shape *Shape) GetID() uuid.UUID {
	return shape.id
}

// GetBBox returns shape's bounding box
func (shape *Shape) GetBBox() Rectangle {
	return shape.bbox
}

// GetCenter returns center of shape's bounding box
func (shape *Shape) GetCenter() Point {
	return shape.bbox.Center()
}

// GetLineageID returns identifier of lineage which owns the shape. Zero means unassigned
func (shape *Shape) GetLineageID() int {
	return shape.lineageID
}

// SetLineageID sets identifier of lineage which owns the shape
func (shape *Shape) SetLineageID(lineageID int) {
	shape.lineageID = lineageID
}

// FrameSource is an ordered sequence of frames, each one yielding set of shapes
type FrameSource interface {
	FramesCount() int
	Shapes(frame int) []*Shape
}

// Frames is the in-memory FrameSource: Frames[t] holds shapes of frame t
type Frames [][]*Shape

// FramesCount returns number of frames
func (frames Frames) FramesCount() int {
	return len(frames)
}

// Shapes returns shapes of given frame. Out of range frame yields no shapes
func (frames Frames) Shapes(frame int) []*Shape {
	if frame < 0 || frame >= len(frames) {
		return nil
	}
	return frames[frame]
}

// NewFramesFromRects wraps every rectangle into a Shape
func NewFramesFromRects(rects [][]Rectangle) Frames {
	frames := make(Frames, len(rects))
	for t := range rects {
		frames[t] = make([]*Shape, len(rects[t]))
		for i, rect := range rects[t] {
			frames[t][i] = NewShape(rect)
		}
	}
	return frames
}

// shapeRef is an arena handle of a shape: frame index and position inside the frame
type shapeRef struct {
	frame int
	index int
}
