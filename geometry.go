package shash

import "github.com/PawelBoe/SpatialHash/internal/mathutil"

// InsertAtPoint quantizes (x, y) and inserts at the resulting cell.
func (t *SpatialHash[V, H, R]) InsertAtPoint(x, y float64, value V, salt int32) {
	t.InsertAtCell(t.Cell(x), t.Cell(y), value, salt)
}

// QueryAtPoint quantizes (x, y) and appends that cell's values to dst.
func (t *SpatialHash[V, H, R]) QueryAtPoint(dst []V, x, y float64, salt int32) []V {
	return t.QueryAtCell(dst, t.Cell(x), t.Cell(y), salt)
}

// InsertAtAABB inserts value into every cell covered by the axis-aligned box
// with corners (x0, y0) and (x1, y1). Corners may be given in any order;
// the covered cell rectangle is inclusive on both ends, so cost grows with
// the box's cell area.
func (t *SpatialHash[V, H, R]) InsertAtAABB(x0, y0, x1, y1 float64, value V, salt int32) {
	eachBoxCell(t.Cell(x0), t.Cell(y0), t.Cell(x1), t.Cell(y1), func(cx, cy int32) {
		t.InsertAtCell(cx, cy, value, salt)
	})
}

// QueryAtAABB appends the values of every cell covered by the box to dst.
// A value inserted into several of those cells appears once per cell.
func (t *SpatialHash[V, H, R]) QueryAtAABB(dst []V, x0, y0, x1, y1 float64, salt int32) []V {
	eachBoxCell(t.Cell(x0), t.Cell(y0), t.Cell(x1), t.Cell(y1), func(cx, cy int32) {
		dst = t.QueryAtCell(dst, cx, cy, salt)
	})
	return dst
}

// InsertAtSegment inserts value into every cell on the rasterized line from
// (x0, y0) to (x1, y1), endpoints included.
func (t *SpatialHash[V, H, R]) InsertAtSegment(x0, y0, x1, y1 float64, value V, salt int32) {
	eachSegmentCell(t.Cell(x0), t.Cell(y0), t.Cell(x1), t.Cell(y1), func(cx, cy int32) {
		t.InsertAtCell(cx, cy, value, salt)
	})
}

// QueryAtSegment appends the values of every cell on the rasterized line to
// dst. Insertion and query share one rasterizer, so for equal endpoints they
// touch the identical cell path.
func (t *SpatialHash[V, H, R]) QueryAtSegment(dst []V, x0, y0, x1, y1 float64, salt int32) []V {
	eachSegmentCell(t.Cell(x0), t.Cell(y0), t.Cell(x1), t.Cell(y1), func(cx, cy int32) {
		dst = t.QueryAtCell(dst, cx, cy, salt)
	})
	return dst
}

// eachBoxCell visits every cell of the inclusive rectangle spanned by the
// two corner cells exactly once, column by column.
func eachBoxCell(x0, y0, x1, y1 int32, visit func(x, y int32)) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			visit(x, y)
		}
	}
}

// eachSegmentCell visits every cell on the Bresenham line from (x0, y0) to
// (x1, y1) exactly once, endpoints included. Within one iteration both axes
// may step, so a perfectly diagonal segment walks diagonal-adjacent cells
// without the staircase detour.
func eachSegmentCell(x0, y0, x1, y1 int32, visit func(x, y int32)) {
	dx := mathutil.Abs32(x1 - x0)
	dy := -mathutil.Abs32(y1 - y0)

	sx := int32(1)
	if x0 > x1 {
		sx = -1
	}
	sy := int32(1)
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 > dy {
			err += dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
