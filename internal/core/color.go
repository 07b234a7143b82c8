package core

// Color is the style of a screen cell. Games pick from this list and the
// platform maps each value to a terminal style.
type Color uint8

// Base colors. Piece colors use the bright variants.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorWhite
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightCyan
	ColorBrightWhite
)

// Styles with a role rather than a hue.
const (
	ColorDim       Color = iota + 32 // HUD labels, board frame
	ColorHighlight                   // bold, used for the selected group
	ColorAlert                       // bold red, used for expiring bombs and game over
	ColorFlash                       // reverse video, pieces being cleared
)
