package lineage

// LengthFilter holds optional inclusive bounds on lineage length
type LengthFilter struct {
	MinOn bool
	Min   int
	MaxOn bool
	Max   int
}

// Accept checks if lineage length satisfies enabled bounds
func (filter LengthFilter) Accept(area *DynamicArea) bool {
	if filter.MinOn && area.GetLength() < filter.Min {
		return false
	}
	if filter.MaxOn && area.GetLength() > filter.Max {
		return false
	}
	return true
}

// Apply returns lineages accepted by the filter, preserving order
func (filter LengthFilter) Apply(areas []*DynamicArea) []*DynamicArea {
	result := make([]*DynamicArea, 0, len(areas))
	for _, area := range areas {
		if filter.Accept(area) {
			result = append(result, area)
		}
	}
	return result
}

// FilterUniqueAreas returns lineages with length >= min (when minOn) and length <= max (when maxOn)
func FilterUniqueAreas(areas []*DynamicArea, minOn bool, min int, maxOn bool, max int) []*DynamicArea {
	return LengthFilter{MinOn: minOn, Min: min, MaxOn: maxOn, Max: max}.Apply(areas)
}
