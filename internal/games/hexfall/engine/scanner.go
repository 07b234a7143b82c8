package engine

import "sort"

// ScannerMode selects how dead boards are detected.
type ScannerMode string

const (
	// ScannerExhaustive tries every rotation of every group.
	ScannerExhaustive ScannerMode = "exhaustive"
	// ScannerHeuristic counts same-colored neighbors around each cell.
	ScannerHeuristic ScannerMode = "heuristic"
)

// HasPotentialMove reports whether some rotation is likely to produce a match.
// For every cell it counts, per color, the neighbors in the six directions.
// Four or more of one color always allow a move. Exactly three allow one
// unless they sit in every other direction around a differently colored cell.
// Bombs are never counted.
func HasPotentialMove(b *Board) bool {
	for col := 0; col < b.Width(); col++ {
		for row := 0; row < b.Height(); row++ {
			here := C(col, row)
			center := b.Get(here)

			var probes [MaxPalette][]int
			for i, d := range Dirs {
				n := here.Neighbor(d)
				if !b.InBounds(n) {
					continue
				}
				p := b.Get(n)
				if p == nil || p.IsBomb() {
					continue
				}
				probes[p.Color] = append(probes[p.Color], i)
			}

			for _, dirs := range probes {
				if len(dirs) >= 4 {
					return true
				}
			}

			for color, dirs := range probes {
				if len(dirs) != 3 {
					continue
				}
				sameAsCenter := center != nil && center.Kind == KindColor && center.Color == Color(color)
				if sameAsCenter || !alternating(dirs) {
					return true
				}
			}
		}
	}
	return false
}

// alternating reports whether three direction indices are every other one
// around the ring: {0,2,4} or {1,3,5}.
func alternating(dirs []int) bool {
	return dirs[0]%2 == dirs[1]%2 && dirs[1]%2 == dirs[2]%2
}

// Move is one rotation the player could make.
type Move struct {
	Group    SwapGroup
	Rotation Rotation
}

// Moves lists every distinct group rotation that produces a match.
// Each triad is tried once, in both directions, on a copy of the board.
func Moves(b *Board) []Move {
	var moves []Move
	seen := make(map[[3]Coord]bool)

	for col := 0; col < b.Width(); col++ {
		for row := 0; row < b.Height(); row++ {
			for _, side := range []Side{SideRightTop, SideRightBottom, SideLeftTop, SideLeftBottom} {
				g, err := GroupAt(b, C(col, row), side)
				if err != nil {
					continue
				}
				key := groupKey(g)
				if seen[key] {
					continue
				}
				seen[key] = true

				if b.Get(g.Cells[0]) == nil || b.Get(g.Cells[1]) == nil || b.Get(g.Cells[2]) == nil {
					continue
				}

				for _, r := range []Rotation{Clockwise, CounterClockwise} {
					trial := b.Clone()
					RotateGroup(trial, g, r)
					if !FindMatches(trial).Empty() {
						moves = append(moves, Move{Group: g, Rotation: r})
					}
				}
			}
		}
	}
	return moves
}

// HasAnyMove reports whether at least one rotation produces a match.
func HasAnyMove(b *Board) bool {
	_, ok := FindMove(b)
	return ok
}

// FindMove returns the first rotation, in scan order, that produces a match.
func FindMove(b *Board) (Move, bool) {
	moves := Moves(b)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[0], true
}

// groupKey identifies a group by its cells regardless of anchor.
func groupKey(g SwapGroup) [3]Coord {
	key := g.Cells
	sort.Slice(key[:], func(i, j int) bool {
		return lessCoord(key[i], key[j])
	})
	return key
}

// hasMove dispatches to the configured scanner.
func hasMove(b *Board, mode ScannerMode) bool {
	if mode == ScannerHeuristic {
		return HasPotentialMove(b)
	}
	return HasAnyMove(b)
}
