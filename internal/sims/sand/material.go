package sand

import (
	"image/color"
	"strings"
)

// Material enumerates the cell material codes. The zero value is an empty
// cell, so the display buffer doubles as the occupancy index.
type Material uint8

const (
	MaterialEmpty Material = iota
	MaterialSand
	MaterialWater
	MaterialStone
	MaterialMetal
	MaterialWood

	materialCount
)

// Mass returns the mass a single cell of the material contributes to the
// pressure column.
func (m Material) Mass() float32 {
	switch m {
	case MaterialSand:
		return 10
	case MaterialWater:
		return 4
	case MaterialStone:
		return 1000
	case MaterialMetal:
		return 1500
	case MaterialWood:
		return 300
	default:
		return 0
	}
}

// Rigid reports whether the material moves as a solid: rigid cells fall
// straight only and never flow toward low pressure.
func (m Material) Rigid() bool {
	switch m {
	case MaterialStone, MaterialMetal, MaterialWood:
		return true
	default:
		return false
	}
}

// Liquid reports whether the material spreads sideways when it cannot fall.
func (m Material) Liquid() bool { return m == MaterialWater }

// Color returns the display color of the material.
func (m Material) Color() color.RGBA {
	switch m {
	case MaterialSand:
		return color.RGBA{R: 216, G: 184, B: 112, A: 255}
	case MaterialWater:
		return color.RGBA{R: 64, G: 164, B: 223, A: 255}
	case MaterialStone:
		return color.RGBA{R: 130, G: 130, B: 130, A: 255}
	case MaterialMetal:
		return color.RGBA{R: 176, G: 186, B: 200, A: 255}
	case MaterialWood:
		return color.RGBA{R: 140, G: 100, B: 48, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}

// String returns the lowercase material name.
func (m Material) String() string {
	switch m {
	case MaterialEmpty:
		return "empty"
	case MaterialSand:
		return "sand"
	case MaterialWater:
		return "water"
	case MaterialStone:
		return "stone"
	case MaterialMetal:
		return "metal"
	case MaterialWood:
		return "wood"
	default:
		return "unknown"
	}
}

// MaterialFromString resolves a material by name. Unknown names report false.
func MaterialFromString(name string) (Material, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sand":
		return MaterialSand, true
	case "water":
		return MaterialWater, true
	case "stone":
		return MaterialStone, true
	case "metal":
		return MaterialMetal, true
	case "wood":
		return MaterialWood, true
	case "empty", "":
		return MaterialEmpty, true
	default:
		return MaterialEmpty, false
	}
}
