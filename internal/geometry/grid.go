package geometry

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded arena. Objects are inserted by position and index; positions outside
// the arena clamp to the edge cells, so nothing is lost, only merged.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within the
// 3x3 neighborhood.
type SpatialGrid struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
}

// NewSpatialGrid creates a grid covering width x height.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.cell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround appends the indices stored in the 3x3 neighborhood of (x, y)
// to dst and returns it. Order is by cell, not by index.
func (g *SpatialGrid) QueryAround(dst []int, x, y float64) []int {
	col, row := g.cell(x, y)
	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			dst = append(dst, g.cells[r*g.cols+c]...)
		}
	}
	return dst
}

// cell converts a position to grid coordinates, clamped to the grid.
func (g *SpatialGrid) cell(x, y float64) (col, row int) {
	col = clampIndex(x*g.invCellSize, g.cols)
	row = clampIndex(y*g.invCellSize, g.rows)
	return col, row
}

func clampIndex(v float64, n int) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(v)
}
