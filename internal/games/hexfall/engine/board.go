package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is the piece registry: a width x height array of cells.
// Cells are stored column-major: index = col*height + row.
type Board struct {
	width  int
	height int
	cells  []*Piece
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("engine: invalid board size %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]*Piece, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds returns true if the coordinate is on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < b.width && c.Row >= 0 && c.Row < b.height
}

// index converts a coordinate to a flat array index.
// Out-of-range coordinates are a geometry bug and panic.
func (b *Board) index(c Coord) int {
	if !b.InBounds(c) {
		panic(fmt.Sprintf("engine: coordinate %v outside %dx%d board", c, b.width, b.height))
	}
	return c.Col*b.height + c.Row
}

// Get returns the piece at c, or nil when the cell is empty.
func (b *Board) Get(c Coord) *Piece {
	return b.cells[b.index(c)]
}

// Set places p at c and records c on the piece.
// This is the only place a piece's coordinates are written.
func (b *Board) Set(c Coord, p *Piece) {
	b.cells[b.index(c)] = p
	if p != nil {
		p.col = c.Col
		p.row = c.Row
	}
}

// Remove empties the cell and returns its previous occupant.
func (b *Board) Remove(c Coord) *Piece {
	p := b.Get(c)
	b.cells[b.index(c)] = nil
	return p
}

// Swap exchanges the occupants of two cells. Either may be empty.
func (b *Board) Swap(a, c Coord) {
	pa, pc := b.Get(a), b.Get(c)
	b.Set(a, pc)
	b.Set(c, pa)
}

// Full returns true if no cell is empty.
func (b *Board) Full() bool {
	for _, p := range b.cells {
		if p == nil {
			return false
		}
	}
	return true
}

// Pieces returns all occupants in column-major order.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, 0, len(b.cells))
	for _, p := range b.cells {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of the board. Pieces are copied too.
func (b *Board) Clone() *Board {
	nb := NewBoard(b.width, b.height)
	for i, p := range b.cells {
		if p == nil {
			continue
		}
		cp := *p
		nb.cells[i] = &cp
	}
	return nb
}

// String renders the board top row first, one character per cell:
// the first letter of the color, '*' for a bomb, '.' for empty.
// Odd columns are shown as-is; the half-cell offset is not drawn.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.height - 1; row >= 0; row-- {
		for col := 0; col < b.width; col++ {
			sb.WriteByte(cellRune(b.Get(C(col, row))))
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

const colorLetters = "BGRYPWCX"

func cellRune(p *Piece) byte {
	switch {
	case p == nil:
		return '.'
	case p.Kind == KindBomb:
		return '*'
	default:
		return colorLetters[p.Color]
	}
}

// ParseBoard builds a board from text rows given top row first, the inverse
// of Board.String. Letters are palette initials (B G R Y P W C X), '*' is a bomb
// with life 9, a digit is a bomb with that life, '.' is empty.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("engine: empty board text")
	}
	height := len(rows)
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("engine: empty board row")
	}
	b := NewBoard(width, height)
	id := 1
	for i, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", i, len(line), width)
		}
		row := height - 1 - i
		for col := 0; col < width; col++ {
			ch := line[col]
			var p *Piece
			switch {
			case ch == '.':
			case ch == '*':
				p = NewBomb(id, 9)
			case ch >= '1' && ch <= '9':
				life, _ := strconv.Atoi(string(ch))
				p = NewBomb(id, life)
			default:
				idx := strings.IndexByte(colorLetters, ch)
				if idx < 0 {
					return nil, fmt.Errorf("engine: unknown cell %q at row %d col %d", ch, i, col)
				}
				p = NewColor(id, Color(idx))
			}
			if p != nil {
				id++
			}
			b.Set(C(col, row), p)
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on malformed input.
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}
