package preview

import "image/color"

// Theme represents a color scheme for symbol previews
type Theme int

const (
	// ThemeLight is a light background theme (white background)
	ThemeLight Theme = iota
	// ThemeDark is a dark background theme (dark gray background)
	ThemeDark
)

// ParseTheme maps "light" or "dark" to a Theme
func ParseTheme(name string) (Theme, bool) {
	switch name {
	case "", "light":
		return ThemeLight, true
	case "dark":
		return ThemeDark, true
	}
	return ThemeLight, false
}

// Colors defines the colors used to draw one symbol
type Colors struct {
	Background color.NRGBA
	Body       color.NRGBA // outlines and outline fills
	Fill       color.NRGBA // background fills
	Pin        color.NRGBA
	PinEnd     color.NRGBA // connection point marker
}

// GetColors returns the color scheme for the given theme
func GetColors(theme Theme) *Colors {
	switch theme {
	case ThemeDark:
		return &Colors{
			Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},    // Dark gray
			Body:       color.NRGBA{R: 255, G: 100, B: 100, A: 255}, // Light red
			Fill:       color.NRGBA{R: 60, G: 60, B: 0, A: 128},     // Dark yellow (translucent)
			Pin:        color.NRGBA{R: 255, G: 100, B: 100, A: 255},
			PinEnd:     color.NRGBA{R: 100, G: 255, B: 255, A: 255}, // Cyan
		}
	default:
		return &Colors{
			Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, // White
			Body:       color.NRGBA{R: 132, G: 0, B: 0, A: 255},     // Dark red
			Fill:       color.NRGBA{R: 255, G: 255, B: 194, A: 255}, // Light yellow
			Pin:        color.NRGBA{R: 132, G: 0, B: 0, A: 255},
			PinEnd:     color.NRGBA{R: 0, G: 100, B: 100, A: 255}, // Teal
		}
	}
}
