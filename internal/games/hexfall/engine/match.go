package engine

import "sort"

// Triad is three mutually adjacent cells meeting at one vertex.
type Triad [3]Coord

// Matches is the result of a board scan.
type Matches struct {
	Triads []Triad // every matching forward triad, in scan order
	Cells  []Coord // distinct cells to clear, sorted by column then row
}

// Empty returns true if nothing matched.
func (m Matches) Empty() bool {
	return len(m.Cells) == 0
}

// Contains reports whether c is among the cells to clear.
func (m Matches) Contains(c Coord) bool {
	i := sort.Search(len(m.Cells), func(i int) bool {
		return !lessCoord(m.Cells[i], c)
	})
	return i < len(m.Cells) && m.Cells[i] == c
}

// forwardTriads returns the two right-ward triads anchored at c, each with
// the extension cell tested when the triad matches.
// Even column: A = {c, (c+1,r), (c,r+1)}, B = {c, (c+1,r-1), (c+1,r)}.
// Odd column:  A = {c, (c+1,r+1), (c,r+1)}, B = {c, (c+1,r), (c+1,r+1)}.
func forwardTriads(c Coord) [2]forwardTriad {
	top := c.Neighbor(DirTop)
	rt := c.Neighbor(DirRightTop)
	rb := c.Neighbor(DirRightBottom)

	return [2]forwardTriad{
		{triad: Triad{c, rt, top}, ext: rt.Neighbor(DirTop)},
		{triad: Triad{c, rb, rt}, ext: top},
	}
}

type forwardTriad struct {
	triad Triad
	ext   Coord
}

// FindMatches scans every cell's forward triads and returns the matched cells.
// Only right-ward triads are tested so each triad is seen from exactly one apex.
func FindMatches(b *Board) Matches {
	var m Matches
	seen := make(map[Coord]bool)

	add := func(c Coord) {
		if !seen[c] {
			seen[c] = true
			m.Cells = append(m.Cells, c)
		}
	}

	for col := 0; col < b.Width(); col++ {
		for row := 0; row < b.Height(); row++ {
			here := C(col, row)
			current := b.Get(here)
			if current == nil || current.IsBomb() {
				continue
			}

			for _, ft := range forwardTriads(here) {
				if !b.InBounds(ft.triad[1]) || !b.InBounds(ft.triad[2]) {
					continue
				}
				if !current.Matches(b.Get(ft.triad[1])) || !current.Matches(b.Get(ft.triad[2])) {
					continue
				}

				m.Triads = append(m.Triads, ft.triad)
				for _, tc := range ft.triad {
					add(tc)
				}

				// 4+ runs: the cell around the corner from the triad
				if b.InBounds(ft.ext) && current.Matches(b.Get(ft.ext)) {
					add(ft.ext)
				}
			}
		}
	}

	sort.Slice(m.Cells, func(i, j int) bool {
		return lessCoord(m.Cells[i], m.Cells[j])
	})
	return m
}

func lessCoord(a, b Coord) bool {
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	return a.Row < b.Row
}
