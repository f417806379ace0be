// Package theme holds the color mapping shared by the on-screen review tables
// and the exported workbooks.
package theme

import "strings"

const (
	Light = "light"
	Dark  = "dark"
)

// Palette is the complete set of colors used to render a review.
type Palette struct {
	Name       string
	Correct    string
	Incorrect  string
	Header     string
	HeaderFont string
	Border     string
}

var palettes = map[string]Palette{
	Light: {
		Name:       Light,
		Correct:    "#C6F6D5",
		Incorrect:  "#FED7D7",
		Header:     "#D3D3D3",
		HeaderFont: "#000000",
		Border:     "#000000",
	},
	Dark: {
		Name:       Dark,
		Correct:    "#276749",
		Incorrect:  "#9B2C2C",
		Header:     "#4A5568",
		HeaderFont: "#FFFFFF",
		Border:     "#A0AEC0",
	},
}

// Lookup returns the palette for a display preference, case-insensitively.
func Lookup(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// ForName returns the named palette, falling back to Light.
func ForName(name string) Palette {
	if p, ok := Lookup(name); ok {
		return p
	}
	return palettes[Light]
}

// RowColor is the background for every cell of a row.
func (p Palette) RowColor(correct bool) string {
	if correct {
		return p.Correct
	}
	return p.Incorrect
}

// RowStyle is RowColor as an inline CSS declaration.
func (p Palette) RowStyle(correct bool) string {
	return "background-color: " + p.RowColor(correct)
}
