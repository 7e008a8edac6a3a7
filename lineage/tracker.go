package lineage

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// Progress range [0, matchingPhaseEnd] is reserved for matching map construction
	matchingPhaseEnd = 50
	// Progress range (matchingPhaseEnd, temporalPhaseEnd] is reserved for frame-by-frame pass
	temporalPhaseEnd = 95
)

// LineageTracker reconstructs lineages of segmented shapes across frames.
// It builds matching map in parallel, then classifies frames strictly in temporal order,
// then stitches fusion/split pairs which turn out to be transient touches.
type LineageTracker struct {
	// Minimal score for two shapes on consecutive frames to be considered as candidate match. Default 0.1
	intersectTolerance float64
	// Number of goroutines for matching map construction. Default is GOMAXPROCS
	workers int
	// Optional progress callback
	progress ProgressFunc
	logger   *zap.Logger
}

// Option configures LineageTracker
type Option func(*LineageTracker)

// WithWorkers sets number of goroutines used for matching map construction
func WithWorkers(workers int) Option {
	return func(tracker *LineageTracker) {
		tracker.workers = workers
	}
}

// WithProgress sets progress callback
func WithProgress(progress ProgressFunc) Option {
	return func(tracker *LineageTracker) {
		tracker.progress = progress
	}
}

// WithLogger sets logger. Nil logger is replaced by no-op one
func WithLogger(logger *zap.Logger) Option {
	return func(tracker *LineageTracker) {
		if logger == nil {
			logger = zap.NewNop()
		}
		tracker.logger = logger
	}
}

// NewLineageTrackerDefault creates default instance of LineageTracker
func NewLineageTrackerDefault() *LineageTracker {
	return NewLineageTracker(0.1)
}

// NewLineageTracker creates new instance of LineageTracker
func NewLineageTracker(intersectTolerance float64, opts ...Option) *LineageTracker {
	tracker := &LineageTracker{
		intersectTolerance: intersectTolerance,
		workers:            runtime.GOMAXPROCS(0),
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(tracker)
	}
	return tracker
}

// GetIntersectTolerance returns tracker's intersect tolerance
func (tracker *LineageTracker) GetIntersectTolerance() float64 {
	return tracker.intersectTolerance
}

// Track runs the whole pipeline over given frames and returns finalized lineages in creation order.
// Shapes get identifiers of lineages owning them.
func (tracker *LineageTracker) Track(ctx context.Context, frames FrameSource) ([]*DynamicArea, error) {
	if frames == nil {
		return nil, ErrNilFrames
	}
	if tracker.intersectTolerance < 0 || tracker.intersectTolerance > 1 {
		return nil, errors.Wrapf(ErrTolerance, "got %f", tracker.intersectTolerance)
	}
	resetLineageIDs(frames)

	lastPercent := newLastPercent()
	framesCount := frames.FramesCount()

	matchingProgress := newProgressReporter(tracker.progress, lastPercent, 0, matchingPhaseEnd, framesCount-1)
	matchingProgress.report(0)
	mm, err := buildMatchingMap(ctx, frames, tracker.workers, matchingProgress)
	if err != nil {
		// Only context cancellation could stop the build
		return nil, err
	}
	matchingProgress.report(matchingPhaseEnd)
	tracker.logger.Debug("Matching map is ready", zap.Int("frames", framesCount), zap.Int("pairs", mm.Len()))

	run := &trackingRun{
		tracker: tracker,
		frames:  frames,
		mm:      mm,
		arena:   make([]*DynamicArea, 0),
		heads:   make(map[shapeRef]int),
		logger:  tracker.logger,
	}
	temporalProgress := newProgressReporter(tracker.progress, lastPercent, matchingPhaseEnd, temporalPhaseEnd, framesCount)
	for t := 0; t < framesCount; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.classifyFrame(t)
		temporalProgress.step()
	}
	mm.Clear()

	stitcher := newTouchStitcher(run.arena, tracker.logger)
	stitcher.stitch()
	areas := stitcher.finalize()
	temporalProgress.report(100)

	tracker.logger.Info("Lineages reconstructed",
		zap.Int("frames", framesCount),
		zap.Int("lineages", len(areas)),
		zap.Int("touches", stitcher.touches),
	)
	return areas, nil
}

func resetLineageIDs(frames FrameSource) {
	for t := 0; t < frames.FramesCount(); t++ {
		for _, shape := range frames.Shapes(t) {
			if shape != nil {
				shape.SetLineageID(0)
			}
		}
	}
}

// trackingRun is state of a single frame-by-frame pass
type trackingRun struct {
	tracker *LineageTracker
	frames  FrameSource
	mm      *MatchingMap
	// Every lineage created during the run. Index is lineage handle
	arena []*DynamicArea
	// Shapes of the previous frame -> handle of open lineage owning the shape
	heads  map[shapeRef]int
	logger *zap.Logger
}

func (run *trackingRun) newArea() *DynamicArea {
	area := newDynamicArea(len(run.arena))
	run.arena = append(run.arena, area)
	return area
}

// openLineage returns lineage whose most recent event contains given shape of previous frame.
// Lineages waiting for fusion/split resolution are never returned
func (run *trackingRun) openLineage(frame, index int, shape *Shape) (*DynamicArea, bool) {
	handle, ok := run.heads[shapeRef{frame: frame, index: index}]
	if !ok {
		return nil, false
	}
	area := run.arena[handle]
	last, ok := area.events[frame]
	if !ok || last.IsProvisional() || !last.Contains(shape) {
		return nil, false
	}
	return area, true
}

// classifyFrame turns matches between frame t-1 and frame t into lineage events
func (run *trackingRun) classifyFrame(t int) {
	current := run.frames.Shapes(t)
	newHeads := make(map[shapeRef]int, len(current))
	defer func() {
		run.heads = newHeads
	}()

	start := func(j int) {
		area := run.newArea()
		area.put(t, NewStartEvent(current[j]), current[j])
		newHeads[shapeRef{frame: t, index: j}] = area.handle
	}

	var previous []*Shape
	if t > 0 {
		previous = run.frames.Shapes(t - 1)
	}
	if len(previous) == 0 {
		for j, shape := range current {
			if shape != nil {
				start(j)
			}
		}
		return
	}

	// Gather predecessors of every current shape and successors of every previous shape
	preds := make([][]int, len(current))
	succs := make([][]int, len(previous))
	for j, shape := range current {
		if shape == nil {
			continue
		}
		for i, prevShape := range previous {
			if prevShape == nil {
				continue
			}
			if run.mm.Score(t-1, i, j) > run.tracker.intersectTolerance {
				preds[j] = append(preds[j], i)
				succs[i] = append(succs[i], j)
			}
		}
	}

	// Split sources: predecessors mapped to more than one current shape
	splitSource := make([]bool, len(previous))
	seeded := make([]bool, len(current))
	for i, prevShape := range previous {
		if len(succs[i]) < 2 {
			continue
		}
		splitSource[i] = true
		targets := make([]*Shape, len(succs[i]))
		for k, j := range succs[i] {
			targets[k] = current[j]
		}
		parent, ok := run.openLineage(t-1, i, prevShape)
		if ok {
			parent.put(t, NewSplitEvent(prevShape, targets), nil)
		} else {
			run.logger.Warn("Split source has no open lineage",
				zap.Int("frame", t),
				zap.String("shape", prevShape.GetID().String()),
			)
		}
		for _, j := range succs[i] {
			if seeded[j] {
				continue
			}
			seeded[j] = true
			child := run.newArea()
			child.put(t, NewStartEvent(current[j]), current[j])
			if ok {
				child.related = parent.handle
			}
			newHeads[shapeRef{frame: t, index: j}] = child.handle
		}
		run.logger.Debug("Split",
			zap.Int("frame", t),
			zap.String("source", prevShape.GetID().String()),
			zap.Int("targets", len(targets)),
		)
	}

	for j, shape := range current {
		if shape == nil {
			continue
		}
		rest := make([]int, 0, len(preds[j]))
		for _, i := range preds[j] {
			if !splitSource[i] {
				rest = append(rest, i)
			}
		}

		if seeded[j] {
			// Split target which also has plain predecessors: those fuse into the seeded lineage
			if len(rest) > 0 {
				sources := make([]*Shape, len(preds[j]))
				for k, i := range preds[j] {
					sources[k] = previous[i]
				}
				run.fuse(t, previous, rest, sources, shape, newHeads[shapeRef{frame: t, index: j}])
			}
			continue
		}

		switch {
		case len(rest) == 1:
			i := rest[0]
			area, ok := run.openLineage(t-1, i, previous[i])
			if !ok {
				run.logger.Warn("Single predecessor has no open lineage, starting new one",
					zap.Int("frame", t),
					zap.String("shape", shape.GetID().String()),
				)
				start(j)
				continue
			}
			area.put(t, NewAliveEvent(previous[i], shape), shape)
			newHeads[shapeRef{frame: t, index: j}] = area.handle
		case len(rest) > 1:
			sources := make([]*Shape, len(rest))
			for k, i := range rest {
				sources[k] = previous[i]
			}
			start(j)
			run.fuse(t, previous, rest, sources, shape, newHeads[shapeRef{frame: t, index: j}])
			run.logger.Debug("Fusion",
				zap.Int("frame", t),
				zap.String("target", shape.GetID().String()),
				zap.Int("sources", len(sources)),
			)
		default:
			start(j)
		}
	}
}

// fuse closes lineages of given predecessors with Fusion event and relates them to lineage of fused shape
func (run *trackingRun) fuse(t int, previous []*Shape, contributors []int, sources []*Shape, target *Shape, fusedHandle int) {
	for _, i := range contributors {
		area, ok := run.openLineage(t-1, i, previous[i])
		if !ok {
			run.logger.Warn("Fusion source has no open lineage",
				zap.Int("frame", t),
				zap.String("shape", previous[i].GetID().String()),
			)
			continue
		}
		area.put(t, NewFusionEvent(sources, target), nil)
		area.related = fusedHandle
	}
}
