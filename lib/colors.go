package lib

// ANSI color codes used by the pretty output format
const (
	ResetColor = "\033[0m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
)

var colorsDisabled bool

// DisableColors makes Colorize return its text unchanged
func DisableColors() {
	colorsDisabled = true
}

// Colorize wraps the text with the specified color and resets the color after.
func Colorize(text, color string) string {
	if colorsDisabled {
		return text
	}
	return color + text + ResetColor
}
