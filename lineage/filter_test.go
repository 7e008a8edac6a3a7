package lineage

import (
	"testing"
)

func areasWithLengths(lengths ...int) []*DynamicArea {
	areas := make([]*DynamicArea, len(lengths))
	for i, length := range lengths {
		area := newDynamicArea(i)
		area.identifier = i + 1
		area.length = length
		areas[i] = area
	}
	return areas
}

func identifiers(areas []*DynamicArea) []int {
	ids := make([]int, len(areas))
	for i, area := range areas {
		ids[i] = area.GetIdentifier()
	}
	return ids
}

func TestFilterUniqueAreas(t *testing.T) {
	areas := areasWithLengths(1, 5, 7, 3, 5)
	cases := []struct {
		name     string
		minOn    bool
		min      int
		maxOn    bool
		max      int
		expected []int
	}{
		{"min only", true, 5, false, 0, []int{2, 3, 5}},
		{"max only", false, 0, true, 5, []int{1, 2, 4, 5}},
		{"both", true, 3, true, 5, []int{2, 4, 5}},
		{"none", false, 100, false, -1, []int{1, 2, 3, 4, 5}},
		{"empty range", true, 6, true, 5, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := identifiers(FilterUniqueAreas(areas, tc.minOn, tc.min, tc.maxOn, tc.max))
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %v, got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Expected %v, got %v", tc.expected, got)
					break
				}
			}
		})
	}
}

func TestLengthFilterAccept(t *testing.T) {
	area := areasWithLengths(4)[0]
	if !(LengthFilter{MinOn: true, Min: 4, MaxOn: true, Max: 4}).Accept(area) {
		t.Error("Bounds should be inclusive")
	}
	if (LengthFilter{MinOn: true, Min: 5}).Accept(area) {
		t.Error("Lineage shorter than minimum should be rejected")
	}
}
