package lineage

// MatchScore calculates similarity of two bounding boxes in range [0, 1].
// It is intersection area divided by the smaller of two areas, so a small
// box fully covered by a bigger one scores 1.
// Degenerate boxes could produce ratio above 1: in that case reciprocal is used.
func MatchScore(r1, r2 Rectangle) float64 {
	inter, ok := r1.Intersection(r2)
	if !ok {
		return 0.0
	}
	interArea := inter.Area()
	if interArea == 0 {
		return 0.0
	}
	minArea := minFloat64(r1.Area(), r2.Area())
	if minArea <= 0 {
		return 0.0
	}
	score := interArea / minArea
	if score > 1.0 {
		score = 1.0 / score
	}
	return score
}

// ShapeScore is MatchScore applied to shapes' bounding boxes
func ShapeScore(a, b *Shape) float64 {
	return MatchScore(a.GetBBox(), b.GetBBox())
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
