package lineage

import (
	"sort"

	"github.com/arthurkushman/go-hungarian"
)

// Problems with both dimensions up to this size are solved by full enumeration
const exhaustiveSearchLimit = 6

// correspondence is a (source row, target column) pair with its score
type correspondence struct {
	source int
	target int
	score  float64
}

// bestCorrespondence selects set of pairwise-disjoint (source, target) pairs
// with strictly positive scores and maximum total score.
// scores[i][j] is a score between source i and target j.
func bestCorrespondence(scores [][]float64) []correspondence {
	rows := len(scores)
	if rows == 0 {
		return nil
	}
	cols := len(scores[0])
	if cols == 0 {
		return nil
	}
	if rows <= exhaustiveSearchLimit && cols <= exhaustiveSearchLimit {
		return exhaustiveCorrespondence(scores)
	}
	return hungarianCorrespondence(scores)
}

// exhaustiveCorrespondence enumerates every disjoint set of positive pairs.
// On equal sums the first set in row-major search order wins.
func exhaustiveCorrespondence(scores [][]float64) []correspondence {
	rows := len(scores)
	cols := len(scores[0])
	usedCols := make([]bool, cols)
	current := make([]correspondence, 0, rows)
	var best []correspondence
	bestSum := 0.0

	var search func(row int, sum float64)
	search = func(row int, sum float64) {
		if row == rows {
			if sum > bestSum {
				bestSum = sum
				best = append(best[:0:0], current...)
			}
			return
		}
		for col := 0; col < cols; col++ {
			score := scores[row][col]
			if usedCols[col] || score <= 0 {
				continue
			}
			usedCols[col] = true
			current = append(current, correspondence{source: row, target: col, score: score})
			search(row+1, sum+score)
			current = current[:len(current)-1]
			usedCols[col] = false
		}
		// Leave this source without a pair
		search(row+1, sum)
	}
	search(0, 0)
	return best
}

// hungarianCorrespondence solves the same problem as maximum weight assignment.
// Matrix is padded with zeros to be square, zero-score assignments are dropped.
func hungarianCorrespondence(scores [][]float64) []correspondence {
	rows := len(scores)
	cols := len(scores[0])
	size := maxInt(rows, cols)
	padded := make([][]float64, size)
	for i := 0; i < size; i++ {
		padded[i] = make([]float64, size)
		if i >= rows {
			continue
		}
		for j := 0; j < cols; j++ {
			if scores[i][j] > 0 {
				padded[i][j] = scores[i][j]
			}
		}
	}
	assignmentsMap := hungarian.SolveMax(padded)
	result := make([]correspondence, 0, rows)
	for row, rowMap := range assignmentsMap {
		for col := range rowMap {
			if row < rows && col < cols && scores[row][col] > 0 {
				result = append(result, correspondence{source: row, target: col, score: scores[row][col]})
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].source == result[j].source {
			return result[i].target < result[j].target
		}
		return result[i].source < result[j].source
	})
	// Solver is expected to return disjoint pairs already, keep the first pair per row and column anyway
	usedRows := make(map[int]struct{}, len(result))
	usedCols := make(map[int]struct{}, len(result))
	disjoint := result[:0]
	for _, pair := range result {
		if _, found := usedRows[pair.source]; found {
			continue
		}
		if _, found := usedCols[pair.target]; found {
			continue
		}
		usedRows[pair.source] = struct{}{}
		usedCols[pair.target] = struct{}{}
		disjoint = append(disjoint, pair)
	}
	return disjoint
}
