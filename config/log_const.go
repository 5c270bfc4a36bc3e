package config

import "github.com/gookit/color"

// Color constants for logger prefixes
const (
	ColorGreen  = color.FgGreen
	ColorPurple = color.FgMagenta
	ColorCyan   = color.FgCyan
)
