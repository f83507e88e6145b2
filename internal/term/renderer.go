// Package term renders world frames as plain text for headless runs.
package term

import (
	"strings"

	"sandgrid/internal/sims/sand"
)

// Glyph returns the character used to print a material.
func Glyph(m sand.Material) byte {
	switch m {
	case sand.MaterialSand:
		return '.'
	case sand.MaterialWater:
		return '~'
	case sand.MaterialStone:
		return '#'
	case sand.MaterialMetal:
		return 'M'
	case sand.MaterialWood:
		return '='
	default:
		return ' '
	}
}

// Frame renders palette-indexed cells row by row, top row first.
func Frame(cells []uint8, w, h int) string {
	if w <= 0 || h <= 0 || len(cells) < w*h {
		return ""
	}
	var b strings.Builder
	b.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		row := cells[y*w : (y+1)*w]
		for _, c := range row {
			b.WriteByte(Glyph(sand.Material(c)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderWorld renders the current frame of a world.
func RenderWorld(w *sand.World) string {
	size := w.Size()
	return Frame(w.Cells(), size.W, size.H)
}
