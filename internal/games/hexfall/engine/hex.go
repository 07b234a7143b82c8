// Package engine provides the board logic for the hexfall puzzle game:
// offset-hex geometry, the piece registry, match detection, cascades,
// swap-group rotation and dead-board detection.
// This package is UI-agnostic and deterministic for a given seed.
package engine

import "fmt"

// Coord addresses a cell by column and row.
// Row 0 is the bottom row; rows grow upward. Odd columns sit half a cell
// higher than their even neighbors.
type Coord struct {
	Col int
	Row int
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Odd reports whether the coordinate lies in an odd column.
func (c Coord) Odd() bool {
	return c.Col%2 != 0
}

// Add returns a new Coord offset by (dc, dr).
func (c Coord) Add(dc, dr int) Coord {
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Dir is one of the six hex directions around a cell.
type Dir uint8

const (
	DirTop Dir = iota
	DirRightTop
	DirRightBottom
	DirBottom
	DirLeftBottom
	DirLeftTop
)

// Dirs lists all six directions clockwise starting from the top.
var Dirs = [6]Dir{DirTop, DirRightTop, DirRightBottom, DirBottom, DirLeftBottom, DirLeftTop}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirTop:
		return "Top"
	case DirRightTop:
		return "RightTop"
	case DirRightBottom:
		return "RightBottom"
	case DirBottom:
		return "Bottom"
	case DirLeftBottom:
		return "LeftBottom"
	case DirLeftTop:
		return "LeftTop"
	default:
		return "Unknown"
	}
}

// neighborOffsets holds (dc, dr) per direction, indexed by column parity.
var neighborOffsets = [2][6][2]int{
	// even columns
	{{0, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}},
	// odd columns
	{{0, 1}, {1, 1}, {1, 0}, {0, -1}, {-1, 0}, {-1, 1}},
}

// Neighbor returns the adjacent coordinate in the given direction.
// The result may lie outside the board.
func (c Coord) Neighbor(d Dir) Coord {
	parity := 0
	if c.Odd() {
		parity = 1
	}
	off := neighborOffsets[parity][d]
	return c.Add(off[0], off[1])
}

// Neighbors returns all six adjacent coordinates in Dirs order.
func Neighbors(c Coord) [6]Coord {
	var out [6]Coord
	for i, d := range Dirs {
		out[i] = c.Neighbor(d)
	}
	return out
}

// Adjacent reports whether two coordinates share an edge.
func Adjacent(a, b Coord) bool {
	for _, n := range Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

// Point is a layout position in world units.
type Point struct {
	X float64
	Y float64
}

// columnStride makes neighboring columns interlock.
const columnStride = 0.9

// Layout maps board coordinates to world positions.
type Layout struct {
	HexWidth  float64
	HexHeight float64
	Gap       float64
	Origin    Point
}

// NewLayout creates a layout centered on the world origin for a width x height board.
func NewLayout(hexW, hexH, gap float64, width, height int) Layout {
	l := Layout{HexWidth: hexW, HexHeight: hexH, Gap: gap}
	w, h := l.cellW(), l.cellH()
	l.Origin = Point{
		X: -w*(float64(width-1)/2.0) + 0.25,
		Y: -h*(float64(height)/2.0) - 0.25,
	}
	return l
}

func (l Layout) cellW() float64 { return l.HexWidth + l.Gap }
func (l Layout) cellH() float64 { return l.HexHeight + l.Gap }

// Position returns the world position of a cell's center.
// Rows outside the board are valid and are used as spawn points.
func (l Layout) Position(c Coord) Point {
	offset := 0.0
	if c.Odd() {
		offset = l.cellH() / 2.0
	}
	return Point{
		X: l.Origin.X + float64(c.Col)*l.cellW()*columnStride,
		Y: l.Origin.Y + float64(c.Row)*l.cellH() + offset,
	}
}

// ColumnStep returns the horizontal distance between neighboring columns.
func (l Layout) ColumnStep() float64 {
	return l.cellW() * columnStride
}

// RowStep returns the vertical distance between neighboring rows.
func (l Layout) RowStep() float64 {
	return l.cellH()
}
