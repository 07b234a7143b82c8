package engine

// Color is one entry of the fixed piece palette.
type Color uint8

// Palette colors, in the order random spawns draw from.
const (
	Blue Color = iota
	Green
	Red
	Yellow
	Purple
	White
	Cyan
	Grey
)

// MaxPalette is the number of defined colors.
const MaxPalette = 8

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Purple:
		return "Purple"
	case White:
		return "White"
	case Cyan:
		return "Cyan"
	case Grey:
		return "Grey"
	default:
		return "Unknown"
	}
}

// Kind discriminates what a piece is.
type Kind uint8

const (
	KindColor Kind = iota
	KindBomb
)

// Piece is the occupant of a board cell.
// Color is meaningful for KindColor, Life for KindBomb.
type Piece struct {
	ID     int
	Kind   Kind
	Color  Color
	Life   int
	Target Point // layout position the animation collaborator moves toward
	Spawn  Point // position above the board a refilled piece falls from

	col int
	row int
}

// NewColor creates a color piece.
func NewColor(id int, c Color) *Piece {
	return &Piece{ID: id, Kind: KindColor, Color: c}
}

// NewBomb creates a bomb piece with the given remaining-move counter.
func NewBomb(id, life int) *Piece {
	return &Piece{ID: id, Kind: KindBomb, Life: life}
}

// Coord returns the cell the piece currently occupies.
func (p *Piece) Coord() Coord {
	return Coord{Col: p.col, Row: p.row}
}

// IsBomb reports whether the piece is a bomb.
func (p *Piece) IsBomb() bool {
	return p != nil && p.Kind == KindBomb
}

// Matches reports whether two pieces count as the same color.
// Bombs are colorless and never match, not even each other.
func (p *Piece) Matches(o *Piece) bool {
	if p == nil || o == nil {
		return false
	}
	if p.Kind != KindColor || o.Kind != KindColor {
		return false
	}
	return p.Color == o.Color
}
