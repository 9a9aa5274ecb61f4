package data

import (
	"fmt"
	"sort"
)

// COO is a square sparse matrix in coordinate format. Rows, Cols, and Vals
// are parallel slices; entry k is (Rows[k], Cols[k]) = Vals[k]. Duplicate
// coordinates are allowed until Canonicalize sums them.
type COO struct {
	N    int // matrix dimension (N x N)
	Rows []int
	Cols []int
	Vals []float64
}

// NewCOO returns an empty n x n sparse matrix.
func NewCOO(n int) *COO {
	return &COO{N: n}
}

// Add appends an entry. Out-of-range coordinates are an error.
func (a *COO) Add(row, col int, val float64) error {
	if row < 0 || row >= a.N || col < 0 || col >= a.N {
		return fmt.Errorf("entry (%d, %d) out of range for %dx%d matrix", row, col, a.N, a.N)
	}
	a.Rows = append(a.Rows, row)
	a.Cols = append(a.Cols, col)
	a.Vals = append(a.Vals, val)
	return nil
}

// NNZ returns the number of stored entries (including any duplicates).
func (a *COO) NNZ() int {
	return len(a.Vals)
}

// ToDense materializes the matrix as a row-major [][]float64. Duplicate
// entries are summed.
func (a *COO) ToDense() [][]float64 {
	dense := make([][]float64, a.N)
	for i := range dense {
		dense[i] = make([]float64, a.N)
	}
	for k := range a.Vals {
		dense[a.Rows[k]][a.Cols[k]] += a.Vals[k]
	}
	return dense
}

// Degrees returns the weighted out-degree of each row (sum of entry values
// per row).
func (a *COO) Degrees() []float64 {
	deg := make([]float64, a.N)
	for k := range a.Vals {
		deg[a.Rows[k]] += a.Vals[k]
	}
	return deg
}

// Canonicalize sorts entries in row-major order and sums duplicates in place.
// After it returns, coordinates are unique and sorted.
func (a *COO) Canonicalize() {
	if len(a.Vals) == 0 {
		return
	}

	idx := make([]int, len(a.Vals))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		ri, rj := a.Rows[idx[i]], a.Rows[idx[j]]
		if ri != rj {
			return ri < rj
		}
		return a.Cols[idx[i]] < a.Cols[idx[j]]
	})

	rows := make([]int, 0, len(idx))
	cols := make([]int, 0, len(idx))
	vals := make([]float64, 0, len(idx))
	for _, k := range idx {
		n := len(rows)
		if n > 0 && rows[n-1] == a.Rows[k] && cols[n-1] == a.Cols[k] {
			vals[n-1] += a.Vals[k]
			continue
		}
		rows = append(rows, a.Rows[k])
		cols = append(cols, a.Cols[k])
		vals = append(vals, a.Vals[k])
	}

	a.Rows, a.Cols, a.Vals = rows, cols, vals
}
