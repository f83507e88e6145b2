package sand

import (
	"sandgrid/internal/core"
)

// Particle is one loose grain tracked by the world. Position is the grid
// cell the grain owns; Vy is the accumulated vertical velocity in cells per
// tick, positive downward.
type Particle struct {
	ID       int32    `json:"id"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Vy       float64  `json:"vy"`
	Material Material `json:"material"`
}

// Object is a rigid multi-cell body that falls straight as a unit. X, Y is
// the top-left corner of its footprint.
type Object struct {
	ID       int32    `json:"id"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	W        int      `json:"w"`
	H        int      `json:"h"`
	Material Material `json:"material"`
}

// StaticCell is immovable terrain (floor, obstacles, scenario blocks).
type StaticCell struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Material Material `json:"material"`
}

// World stores all state for the falling-sand simulation. The cell grid
// holds material codes, so it is at once the occupancy index and the display
// buffer; the mass and pressure fields mirror it cell for cell. Row 0 is the
// top of the world and gravity points toward increasing y.
type World struct {
	cfg Config

	w, h int

	cells    *core.ByteGrid
	mass     *core.ScalarGrid
	pressure *core.ScalarGrid

	particles []Particle
	objects   []Object
	statics   []StaticCell

	nextID  int32
	spawned int
	tick    uint64

	rng *core.RNG
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sand world configured from the provided options.
func NewWithConfig(cfg Config) *World {
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}
	w := &World{
		cfg:      cfg,
		w:        cfg.Width,
		h:        cfg.Height,
		cells:    core.NewByteGrid(cfg.Width, cfg.Height),
		mass:     core.NewScalarGrid(cfg.Width, cfg.Height),
		pressure: core.NewScalarGrid(cfg.Width, cfg.Height),
		rng:      core.NewRNG(cfg.Seed),
	}
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the material code per cell, row-major from the top row.
func (w *World) Cells() []uint8 { return w.cells.Cells() }

// MassField exposes the per-cell mass values.
func (w *World) MassField() []float32 { return w.mass.Values() }

// PressureField exposes the per-cell column pressure values.
func (w *World) PressureField() []float32 { return w.pressure.Values() }

// Particles exposes the live grain slice.
func (w *World) Particles() []Particle { return w.particles }

// Objects exposes the rigid bodies.
func (w *World) Objects() []Object { return w.objects }

// Statics exposes the immovable terrain cells.
func (w *World) Statics() []StaticCell { return w.statics }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Tick reports how many steps the world has advanced since Reset.
func (w *World) Tick() uint64 { return w.tick }

// MaterialAt returns the material occupying (x, y).
func (w *World) MaterialAt(x, y int) Material {
	if !w.cells.InBounds(x, y) {
		return MaterialEmpty
	}
	return Material(w.cells.At(x, y))
}

// Reset rebuilds the initial world deterministically from the seed. A zero
// seed falls back to the configured one.
func (w *World) Reset(seed int64) {
	if w.w == 0 || w.h == 0 {
		return
	}
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)
	w.cells.Clear()
	w.mass.Clear()
	w.pressure.Clear()
	w.particles = w.particles[:0]
	w.objects = w.objects[:0]
	w.statics = w.statics[:0]
	w.nextID = 0
	w.spawned = 0
	w.tick = 0

	if w.cfg.Params.Floor {
		for x := 0; x < w.w; x++ {
			w.SetStatic(x, w.h-1, MaterialStone)
		}
	}
	w.buildObstacle()
	for _, b := range w.cfg.Blocks {
		for dy := 0; dy < b.H; dy++ {
			for dx := 0; dx < b.W; dx++ {
				w.SetStatic(b.X+dx, b.Y+dy, b.Material)
			}
		}
	}
	for _, o := range w.cfg.Objects {
		w.SpawnObject(o.X, o.Y, o.W, o.H, o.Material)
	}
	for _, g := range w.cfg.Grains {
		w.SpawnParticle(g.X, g.Y, g.Material)
	}
	w.calcPressure()
}

// buildObstacle places the centered block resting on the floor, sized by the
// obstacle parameters.
func (w *World) buildObstacle() {
	ow := w.cfg.Params.ObstacleWidth
	oh := w.cfg.Params.ObstacleHeight
	if ow <= 0 || oh <= 0 {
		return
	}
	baseY := w.h - 1
	if w.cfg.Params.Floor {
		baseY--
	}
	startX := w.w/2 - ow/2
	for dy := 0; dy < oh; dy++ {
		y := baseY - dy
		for dx := 0; dx < ow; dx++ {
			w.SetStatic(startX+dx, y, MaterialStone)
		}
	}
}

// Step advances the world one tick: emit, recompute pressure, integrate
// particle velocity and position, relieve pressure, settle falls, then move
// rigid objects. Particles mutate the live grid in insertion order.
func (w *World) Step() {
	if w.w == 0 || w.h == 0 {
		return
	}
	w.emit()
	w.calcPressure()

	for i := range w.particles {
		p := &w.particles[i]
		w.updateVelocity(p)
		w.updatePosition(p)
	}
	if w.cfg.Params.PressureRelief {
		for i := range w.particles {
			w.resolvePressure(&w.particles[i])
		}
	}
	for i := range w.particles {
		w.fallDown(&w.particles[i])
	}
	for i := range w.objects {
		w.stepObject(&w.objects[i])
	}
	w.tick++
}

// calcPressure accumulates per-column mass from the top row down; the value
// at a cell includes its own mass.
func (w *World) calcPressure() {
	for x := 0; x < w.w; x++ {
		var sum float32
		for y := 0; y < w.h; y++ {
			sum += w.mass.At(x, y)
			w.pressure.Set(x, y, sum)
		}
	}
}

// emit drops one grain of the spawn material at a jittered column on the
// spawn row, honoring cadence and the grain limit. Occupied targets skip the
// tick rather than retry.
func (w *World) emit() {
	p := w.cfg.Params
	if p.SpawnEvery <= 0 || p.SpawnMaterial == MaterialEmpty {
		return
	}
	if p.SpawnLimit > 0 && w.spawned >= p.SpawnLimit {
		return
	}
	if w.tick%uint64(p.SpawnEvery) != 0 {
		return
	}
	col := p.SpawnColumn
	if col < 0 {
		col = w.w / 2
	}
	if p.SpawnJitter > 0 {
		col += w.rng.IntN(2*p.SpawnJitter+1) - p.SpawnJitter
	}
	w.SpawnParticle(col, p.SpawnRow, p.SpawnMaterial)
}

// SpawnParticle places a loose grain. It reports false when the cell is out
// of bounds or occupied.
func (w *World) SpawnParticle(x, y int, m Material) bool {
	if m == MaterialEmpty || !w.cells.InBounds(x, y) || w.occupiedAt(x, y) {
		return false
	}
	w.nextID++
	w.particles = append(w.particles, Particle{ID: w.nextID, X: x, Y: y, Material: m})
	w.markCell(x, y, m)
	w.spawned++
	return true
}

// SpawnObject places a rigid ow x oh body with its top-left corner at (x, y).
// Every footprint cell must be free.
func (w *World) SpawnObject(x, y, ow, oh int, m Material) bool {
	if m == MaterialEmpty || ow <= 0 || oh <= 0 {
		return false
	}
	if !w.cells.InBounds(x, y) || !w.cells.InBounds(x+ow-1, y+oh-1) {
		return false
	}
	for dy := 0; dy < oh; dy++ {
		for dx := 0; dx < ow; dx++ {
			if w.occupiedAt(x+dx, y+dy) {
				return false
			}
		}
	}
	w.nextID++
	w.objects = append(w.objects, Object{ID: w.nextID, X: x, Y: y, W: ow, H: oh, Material: m})
	for dy := 0; dy < oh; dy++ {
		for dx := 0; dx < ow; dx++ {
			w.markCell(x+dx, y+dy, m)
		}
	}
	return true
}

// SpawnBlockAt drops the default 3x3 metal block with its top-left corner at
// the given cell. Used by the GUI click handler.
func (w *World) SpawnBlockAt(x, y int) bool {
	return w.SpawnObject(x, y, 3, 3, MaterialMetal)
}

// SetStatic pins immovable terrain at (x, y). It reports false when the cell
// is out of bounds or occupied.
func (w *World) SetStatic(x, y int, m Material) bool {
	if m == MaterialEmpty || !w.cells.InBounds(x, y) || w.occupiedAt(x, y) {
		return false
	}
	w.statics = append(w.statics, StaticCell{X: x, Y: y, Material: m})
	w.markCell(x, y, m)
	return true
}

func (w *World) occupiedAt(x, y int) bool {
	return w.cells.At(x, y) != uint8(MaterialEmpty)
}

func (w *World) markCell(x, y int, m Material) {
	w.cells.Set(x, y, uint8(m))
	w.mass.Set(x, y, m.Mass())
}

func (w *World) clearCell(x, y int) {
	w.cells.Set(x, y, uint8(MaterialEmpty))
	w.mass.Set(x, y, 0)
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
