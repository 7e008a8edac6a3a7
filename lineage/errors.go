package lineage

import "github.com/pkg/errors"

var (
	// ErrNilFrames is returned when tracker gets no frame source at all
	ErrNilFrames = errors.New("frame source is nil")
	// ErrTolerance is returned when intersect tolerance is outside [0, 1]
	ErrTolerance = errors.New("intersect tolerance must be in range [0, 1]")
)
