package engine

import "fmt"

// Side is the quadrant of the anchor hexagon the player touched.
// It selects which vertex, and so which two neighbors, join the group.
type Side uint8

const (
	SideRightTop Side = iota
	SideRightBottom
	SideLeftTop
	SideLeftBottom
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case SideRightTop:
		return "RightTop"
	case SideRightBottom:
		return "RightBottom"
	case SideLeftTop:
		return "LeftTop"
	case SideLeftBottom:
		return "LeftBottom"
	default:
		return "Unknown"
	}
}

// Next cycles through the four sides clockwise.
func (s Side) Next() Side {
	switch s {
	case SideRightTop:
		return SideRightBottom
	case SideRightBottom:
		return SideLeftBottom
	case SideLeftBottom:
		return SideLeftTop
	default:
		return SideRightTop
	}
}

func (s Side) left() bool { return s == SideLeftTop || s == SideLeftBottom }
func (s Side) top() bool  { return s == SideRightTop || s == SideLeftTop }

func sideOf(left, top bool) Side {
	switch {
	case left && top:
		return SideLeftTop
	case left:
		return SideLeftBottom
	case top:
		return SideRightTop
	default:
		return SideRightBottom
	}
}

// ResolveSide redirects a side that would leave the board.
//
//	column 0        : LeftTop -> RightTop, LeftBottom -> RightBottom
//	last column     : RightTop -> LeftTop, RightBottom -> LeftBottom
//	row 0           : RightBottom -> RightTop, LeftBottom -> LeftTop
//	top row         : RightTop -> RightBottom, LeftTop -> LeftBottom
//
// Corners apply both the column and the row rule.
func ResolveSide(width, height int, c Coord, side Side) Side {
	left, top := side.left(), side.top()

	switch {
	case c.Col == 0 && width > 1:
		left = false
	case c.Col == width-1:
		left = true
	}

	switch {
	case c.Row == 0 && height > 1:
		top = true
	case c.Row == height-1:
		top = false
	}

	return sideOf(left, top)
}

// SwapGroup is an ordered triple of cells that rotate together.
// Cells are listed clockwise around their shared vertex, anchor first.
type SwapGroup struct {
	Anchor Coord
	Side   Side // side after boundary redirection
	Cells  [3]Coord
}

// Contains reports whether c belongs to the group.
func (g SwapGroup) Contains(c Coord) bool {
	return g.Cells[0] == c || g.Cells[1] == c || g.Cells[2] == c
}

// groupCells lists the triad for an anchor and side in clockwise order.
func groupCells(c Coord, side Side) [3]Coord {
	switch side {
	case SideRightTop:
		return [3]Coord{c, c.Neighbor(DirTop), c.Neighbor(DirRightTop)}
	case SideRightBottom:
		return [3]Coord{c, c.Neighbor(DirRightBottom), c.Neighbor(DirBottom)}
	case SideLeftTop:
		return [3]Coord{c, c.Neighbor(DirLeftTop), c.Neighbor(DirTop)}
	default:
		return [3]Coord{c, c.Neighbor(DirBottom), c.Neighbor(DirLeftBottom)}
	}
}

// GroupAt resolves the swap group for an anchor cell and touched side,
// redirecting the side at board edges first.
func GroupAt(b *Board, anchor Coord, side Side) (SwapGroup, error) {
	if !b.InBounds(anchor) {
		return SwapGroup{}, fmt.Errorf("%w: %v", ErrOutOfBounds, anchor)
	}
	resolved := ResolveSide(b.Width(), b.Height(), anchor, side)
	cells := groupCells(anchor, resolved)
	for _, c := range cells {
		if !b.InBounds(c) {
			panic(fmt.Sprintf("engine: group %v/%v leaves %dx%d board at %v",
				anchor, resolved, b.Width(), b.Height(), c))
		}
	}
	return SwapGroup{Anchor: anchor, Side: resolved, Cells: cells}, nil
}

// Rotation is the direction a group turns.
type Rotation uint8

const (
	Clockwise Rotation = iota
	CounterClockwise
)

// String returns the string representation of a rotation.
func (r Rotation) String() string {
	if r == Clockwise {
		return "Clockwise"
	}
	return "CounterClockwise"
}

// Swipe is a gesture direction reported by the input collaborator.
type Swipe uint8

const (
	SwipeRight Swipe = iota
	SwipeDown
	SwipeLeft
	SwipeUp
)

// RotationFor maps a swipe to a rotation: right and down turn the group
// clockwise, left and up counter-clockwise.
func RotationFor(s Swipe) Rotation {
	if s == SwipeRight || s == SwipeDown {
		return Clockwise
	}
	return CounterClockwise
}

// RotateGroup performs one rotation step: each occupant moves one slot
// along the group. Every slot must hold a piece.
func RotateGroup(b *Board, g SwapGroup, r Rotation) {
	p := [3]*Piece{b.Get(g.Cells[0]), b.Get(g.Cells[1]), b.Get(g.Cells[2])}
	for i, piece := range p {
		if piece == nil {
			panic(fmt.Sprintf("engine: rotating empty cell %v", g.Cells[i]))
		}
	}

	if r == Clockwise {
		// 0 -> 1 -> 2 -> 0
		b.Set(g.Cells[1], p[0])
		b.Set(g.Cells[2], p[1])
		b.Set(g.Cells[0], p[2])
	} else {
		// 0 -> 2 -> 1 -> 0
		b.Set(g.Cells[2], p[0])
		b.Set(g.Cells[1], p[2])
		b.Set(g.Cells[0], p[1])
	}
}
