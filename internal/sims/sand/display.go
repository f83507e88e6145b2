package sand

import "image/color"

var sandPalette = buildSandPalette()

// Palette exposes the color palette used for rendering the sand world. Cell
// values are material codes, so the palette indexes directly by material.
func (w *World) Palette() []color.RGBA {
	return sandPalette
}

func buildSandPalette() []color.RGBA {
	palette := make([]color.RGBA, int(materialCount))
	for i := range palette {
		palette[i] = Material(i).Color()
	}
	return palette
}
