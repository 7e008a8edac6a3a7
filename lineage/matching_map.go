package lineage

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// pairKey addresses shape pair between frame and frame+1
type pairKey struct {
	frame int
	from  int
	to    int
}

// MatchingMap holds similarity scores of shape pairs on consecutive frames.
// Only strictly positive scores are stored.
type MatchingMap struct {
	mu     sync.RWMutex
	scores map[pairKey]float64
}

// NewMatchingMap creates empty MatchingMap
func NewMatchingMap() *MatchingMap {
	return &MatchingMap{
		scores: make(map[pairKey]float64),
	}
}

// set stores score of shape `from` on frame and shape `to` on frame+1. Non-positive scores are dropped
func (mm *MatchingMap) set(frame, from, to int, score float64) {
	if score <= 0 {
		return
	}
	mm.mu.Lock()
	mm.scores[pairKey{frame: frame, from: from, to: to}] = score
	mm.mu.Unlock()
}

// Score returns score of shape `from` on frame and shape `to` on frame+1. Zero when pair has no overlap
func (mm *MatchingMap) Score(frame, from, to int) float64 {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.scores[pairKey{frame: frame, from: from, to: to}]
}

// Len returns number of stored pairs
func (mm *MatchingMap) Len() int {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return len(mm.scores)
}

// Clear drops all pairs
func (mm *MatchingMap) Clear() {
	mm.mu.Lock()
	mm.scores = make(map[pairKey]float64)
	mm.mu.Unlock()
}

// BuildMatchingMap scores every shape pair between frame t and t+1 for all t.
// Frame pairs are processed concurrently by at most `workers` goroutines (GOMAXPROCS if workers <= 0).
// The function returns only when every frame pair is done, so the map is complete on success.
func BuildMatchingMap(ctx context.Context, frames FrameSource, workers int, progress ProgressFunc) (*MatchingMap, error) {
	if frames == nil {
		return nil, ErrNilFrames
	}
	reporter := newProgressReporter(progress, newLastPercent(), 0, matchingPhaseEnd, frames.FramesCount()-1)
	return buildMatchingMap(ctx, frames, workers, reporter)
}

func buildMatchingMap(ctx context.Context, frames FrameSource, workers int, reporter *progressReporter) (*MatchingMap, error) {
	mm := NewMatchingMap()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for t := 0; t < frames.FramesCount()-1; t++ {
		frame := t
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			scoreFramePair(mm, frame, frames.Shapes(frame), frames.Shapes(frame+1))
			reporter.step()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mm, nil
}

// scoreFramePair fills the map for a single frame pair. Empty frames produce nothing
func scoreFramePair(mm *MatchingMap, frame int, current, next []*Shape) {
	if len(current) == 0 || len(next) == 0 {
		return
	}
	for i, from := range current {
		if from == nil {
			continue
		}
		for j, to := range next {
			if to == nil {
				continue
			}
			mm.set(frame, i, j, ShapeScore(from, to))
		}
	}
}
