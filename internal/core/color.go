package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
)

// Colors of world elements.
const (
	ColorSnow     = ColorBrightWhite // ground top
	ColorEarth    = ColorBrown       // ground body
	ColorIce      = ColorBrightCyan  // floating platforms
	ColorCrate    = ColorRed         // obstacles
	ColorTool     = ColorBrightYellow
	ColorPlayer   = ColorBrightRed
	ColorTree     = ColorGreen
	ColorFinish   = ColorWhite
	ColorHUD      = ColorGray
	ColorHUDAlert = ColorOrange
)
