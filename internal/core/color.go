package core

// Color is a logical foreground color. Front ends map it to whatever their
// output supports; ColorDefault leaves the terminal color alone.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorBrightYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorGreen
	ColorBrightGreen
	ColorCyan
	ColorBrightCyan
	ColorBrightMagenta
)
