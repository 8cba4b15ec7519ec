package view

import "fmt"

// Palette is a pair of RGB triplets for the dark-ink and light-ink tokens.
type Palette struct {
	Dark  string
	Light string
}

var (
	dayPalette   = Palette{Dark: "10, 10, 20", Light: "255, 255, 255"}
	nightPalette = Palette{Dark: "255, 255, 255", Light: "10, 10, 20"}
)

// PaletteFor returns the color tokens of the night or day theme.
func PaletteFor(night bool) Palette {
	if night {
		return nightPalette
	}
	return dayPalette
}

// SetTheme sets --color-dark and --color-light on the root element and
// keeps the settings form in sync.
func (r *Renderer) SetTheme(night bool) {
	p := PaletteFor(night)
	r.doc.Find("html").SetAttr("style", fmt.Sprintf("--color-dark: %s; --color-light: %s;", p.Dark, p.Light))

	value := "day"
	if night {
		value = "night"
	}
	selectOption(r.doc.Find(SettingsTheme), value)
	r.night = night
}

// Night reports whether the night theme is active.
func (r *Renderer) Night() bool {
	return r.night
}
