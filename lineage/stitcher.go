package lineage

import (
	"go.uber.org/zap"
)

// touchStitcher reinterprets Fusion -> ... -> Split chains as Touch -> ... -> DeTouch
// when pre-fusion shapes correspond one-to-one to post-split shapes, and merges lineages.
type touchStitcher struct {
	arena []*DynamicArea
	// Handle of lineage absorbed during stitching -> handle of lineage which took its events
	absorbedInto map[int]int
	// Shape -> handle of lineage started on that shape
	seeds   map[*Shape]int
	touches int
	logger  *zap.Logger
}

func newTouchStitcher(arena []*DynamicArea, logger *zap.Logger) *touchStitcher {
	seeds := make(map[*Shape]int, len(arena))
	for _, area := range arena {
		first, ok := area.FirstEvent()
		if ok && first.Kind == EventStart {
			seeds[first.Source()] = area.handle
		}
	}
	return &touchStitcher{
		arena:        arena,
		absorbedInto: make(map[int]int),
		seeds:        seeds,
		logger:       logger,
	}
}

// stitch processes every lineage ending with Fusion in creation order.
// Lineage is stitched repeatedly while it keeps ending with a resolvable Fusion.
func (stitcher *touchStitcher) stitch() {
	for _, area := range stitcher.arena {
		if area.absorbed {
			continue
		}
		for stitcher.stitchOne(area) {
		}
	}
}

// stitchOne tries to resolve trailing Fusion of the lineage. Returns true when lineage was merged
func (stitcher *touchStitcher) stitchOne(area *DynamicArea) bool {
	fusionFrame := area.lastFrame()
	fusion, ok := area.events[fusionFrame]
	if !ok || fusion.Kind != EventFusion || area.related == noRelated {
		return false
	}
	fused := stitcher.arena[area.related]
	splitFrame := fused.lastFrame()
	split := fused.events[splitFrame]
	if split.Kind != EventSplit {
		// Genuine fusion
		return false
	}

	own, ok := area.heads[fusionFrame-1]
	if !ok {
		stitcher.logger.Warn("Fusion lineage has no shape on pre-fusion frame",
			zap.Int("frame", fusionFrame-1),
		)
		return false
	}

	scores := make([][]float64, len(fusion.Sources))
	for i, source := range fusion.Sources {
		scores[i] = make([]float64, len(split.Targets))
		for j, target := range split.Targets {
			scores[i][j] = ShapeScore(source, target)
		}
	}
	var matched *Shape
	for _, pair := range bestCorrespondence(scores) {
		if fusion.Sources[pair.source] == own {
			matched = split.Targets[pair.target]
			break
		}
	}
	if matched == nil {
		// Ambiguous: no positive one-to-one correspondence for this lineage
		return false
	}
	seedHandle, ok := stitcher.seeds[matched]
	if !ok || stitcher.arena[seedHandle].absorbed {
		stitcher.logger.Warn("No lineage seeded from split target",
			zap.Int("frame", splitFrame),
			zap.String("shape", matched.GetID().String()),
		)
		return false
	}
	seed := stitcher.arena[seedHandle]

	area.replace(fusionFrame, fusion.Reclassified(), fusion.Target())
	for _, frame := range fused.Frames() {
		if frame <= fusionFrame {
			continue
		}
		event := fused.events[frame]
		head := fused.heads[frame]
		if frame == splitFrame {
			event = event.Reclassified()
			head = matched
		}
		stitcher.copyEvent(area, frame, event, head)
	}
	for _, frame := range seed.Frames() {
		if frame <= splitFrame {
			continue
		}
		stitcher.copyEvent(area, frame, seed.events[frame], seed.heads[frame])
	}

	fused.absorbed = true
	stitcher.absorbedInto[fused.handle] = area.handle
	seed.absorbed = true
	stitcher.absorbedInto[seed.handle] = area.handle
	fused.related = noRelated
	// Seed could end with its own Fusion: continue from there
	area.related = seed.related
	seed.related = noRelated
	if last, ok := area.LastEvent(); !ok || last.Kind != EventFusion {
		area.related = noRelated
	}
	stitcher.touches++

	stitcher.logger.Debug("Touch stitched",
		zap.Int("touch_frame", fusionFrame),
		zap.Int("detouch_frame", splitFrame),
	)
	return true
}

func (stitcher *touchStitcher) copyEvent(area *DynamicArea, frame int, event CellEvent, head *Shape) {
	if !area.put(frame, event, head) {
		stitcher.logger.Warn("Lineage already has event on frame, skipping",
			zap.Int("frame", frame),
			zap.Stringer("event", event),
		)
	}
}

// finalize drops absorbed lineages, turns trailing Alive into End, assigns birth/death/length and identifiers,
// and propagates identifiers onto owned shapes.
func (stitcher *touchStitcher) finalize() []*DynamicArea {
	result := make([]*DynamicArea, 0, len(stitcher.arena))
	identifiers := make(map[int]int, len(stitcher.arena))
	for _, area := range stitcher.arena {
		if area.absorbed || len(area.events) == 0 {
			continue
		}
		last := area.lastFrame()
		if event := area.events[last]; event.Kind == EventAlive {
			area.replace(last, NewEndEvent(event.Target()), event.Target())
		}
		area.birth = area.firstFrame()
		area.death = last
		area.length = area.death - area.birth + 1
		area.identifier = len(result) + 1
		identifiers[area.handle] = area.identifier
		result = append(result, area)
	}

	for _, area := range result {
		area.relatedID = 0
		handle := area.related
		// Follow absorbed lineages to the one which took their events
		for steps := 0; handle != noRelated && stitcher.arena[handle].absorbed && steps < len(stitcher.arena); steps++ {
			next, ok := stitcher.absorbedInto[handle]
			if !ok {
				handle = noRelated
				break
			}
			handle = next
		}
		if handle != noRelated && handle != area.handle {
			area.relatedID = identifiers[handle]
		}
	}

	// Lowest identifier wins for shapes shared during touches
	for _, area := range result {
		for _, shape := range area.heads {
			if shape.GetLineageID() == 0 {
				shape.SetLineageID(area.identifier)
			}
		}
	}
	return result
}
