package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order,
// row 0 at the top.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// ScalarGrid stores a 2D field of float32 values (mass, pressure) using the
// same row-major layout as ByteGrid.
type ScalarGrid struct {
	W, H int
	data []float32
}

// NewScalarGrid allocates a scalar field with the given dimensions.
func NewScalarGrid(w, h int) *ScalarGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ScalarGrid{W: w, H: h, data: make([]float32, w*h)}
}

// Values exposes the backing slice.
func (g *ScalarGrid) Values() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ScalarGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *ScalarGrid) At(x, y int) float32 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *ScalarGrid) Set(x, y int, v float32) { g.data[y*g.W+x] = v }

// Clear fills the field with zeros.
func (g *ScalarGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
