package lineage

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is aggregated statistics over finalized lineages
type Summary struct {
	Lineages int
	// Number of events of every kind
	Events map[EventKind]int
	// Lineage length statistics. Zeroes when there are no lineages
	MeanLength   float64
	StdDevLength float64
	MinLength    float64
	MaxLength    float64
}

// Summarize computes statistics over lineages
func Summarize(areas []*DynamicArea) Summary {
	summary := Summary{
		Lineages: len(areas),
		Events:   make(map[EventKind]int),
	}
	if len(areas) == 0 {
		return summary
	}
	lengths := make([]float64, len(areas))
	for i, area := range areas {
		lengths[i] = float64(area.GetLength())
		for _, event := range area.events {
			summary.Events[event.Kind]++
		}
	}
	summary.MeanLength = stat.Mean(lengths, nil)
	if len(lengths) > 1 {
		summary.StdDevLength = stat.StdDev(lengths, nil)
	}
	summary.MinLength = floats.Min(lengths)
	summary.MaxLength = floats.Max(lengths)
	return summary
}

// Touches returns number of stitched touches
func (summary Summary) Touches() int {
	return summary.Events[EventTouch]
}

// GenuineFusions returns number of lineages closed by fusion which was not proven to be a touch
func (summary Summary) GenuineFusions() int {
	return summary.Events[EventFusion]
}

// GenuineSplits returns number of splits which were not proven to be a detouch
func (summary Summary) GenuineSplits() int {
	return summary.Events[EventSplit]
}
