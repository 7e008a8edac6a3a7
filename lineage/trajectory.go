package lineage

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// TrajectoryPoint is a center of lineage's shape on a single frame
type TrajectoryPoint struct {
	Frame int
	// Center of owned shape's bounding box. Zero value when lineage owns no shape on the frame
	Raw Point
	// Kalman-smoothed center
	Smoothed Point
	// False for Fusion/Split frames: only prediction is available there
	Observed bool
}

// Trajectory returns centers of lineage's shapes smoothed by 2D Kalman filter.
// dt is time step between frames.
func (area *DynamicArea) Trajectory(dt float64) ([]TrajectoryPoint, error) {
	frames := area.Frames()
	if len(frames) == 0 {
		return nil, nil
	}
	var kf *kalman_filter.Kalman2D
	points := make([]TrajectoryPoint, 0, len(frames))
	for _, frame := range frames {
		shape, observed := area.heads[frame]
		point := TrajectoryPoint{
			Frame:    frame,
			Observed: observed,
		}
		if kf == nil {
			if !observed {
				// Nothing to initialize filter with yet
				points = append(points, point)
				continue
			}
			/* Kalman filter props */
			center := shape.GetCenter()
			ux := 1.0
			uy := 1.0
			stdDevA := 2.0
			stdDevMx := 0.1
			stdDevMy := 0.1
			kf = kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(center.X, center.Y))
			point.Raw = center
			point.Smoothed = center
			points = append(points, point)
			continue
		}
		kf.Predict()
		if observed {
			point.Raw = shape.GetCenter()
			err := kf.Update(point.Raw.X, point.Raw.Y)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't update trajectory filter on frame %d", frame)
			}
		}
		stateX, stateY := kf.GetState()
		point.Smoothed = Point{X: stateX, Y: stateY}
		points = append(points, point)
	}
	return points, nil
}

// PathLength returns sum of distances between consecutive smoothed centers
func PathLength(points []TrajectoryPoint) float64 {
	// Skip points before the filter was initialized
	first := 0
	for first < len(points) && !points[first].Observed {
		first++
	}
	total := 0.0
	for i := first + 1; i < len(points); i++ {
		total += euclideanDistance(points[i-1].Smoothed, points[i].Smoothed)
	}
	return total
}
