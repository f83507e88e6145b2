package sand

// updateVelocity integrates gravity into the grain's vertical velocity. The
// velocity is zeroed as soon as the projected cell is blocked, and clamped so
// the grain cannot overshoot the bottom row.
func (w *World) updateVelocity(p *Particle) {
	g := w.cfg.Params.Gravity
	next := float64(p.Y) + p.Vy + g
	checkY := int(next)
	if checkY > w.h-1 {
		checkY = w.h - 1
	}
	if checkY < 0 {
		checkY = 0
	}
	switch {
	case checkY != p.Y && w.occupiedAt(p.X, checkY):
		p.Vy = 0
	case next > float64(w.h-1):
		p.Vy = float64(w.h-1) - float64(p.Y)
	default:
		p.Vy += g
	}
}

// updatePosition moves the grain down by its integer velocity, stopping at
// the first blocked cell along the path.
func (w *World) updatePosition(p *Particle) {
	steps := int(p.Vy)
	if steps <= 0 {
		return
	}
	y := p.Y
	for i := 0; i < steps; i++ {
		ny := y + 1
		if ny > w.h-1 || w.occupiedAt(p.X, ny) {
			p.Vy = 0
			break
		}
		y = ny
	}
	if y != p.Y {
		w.moveParticle(p, p.X, y)
	}
}

// resolvePressure lets an overloaded grain flow toward the lowest-pressure
// neighbor. Rigid grains never flow; moves never go upward, only to strictly
// lower pressure, and only into a free cell.
func (w *World) resolvePressure(p *Particle) {
	if p.Material.Rigid() {
		return
	}
	own := w.pressure.At(p.X, p.Y)
	if own <= p.Material.Mass() {
		return
	}
	tx, ty, minPressure, ok := w.lowestPressureNeighbor(p.X, p.Y)
	if !ok {
		return
	}
	if minPressure < own && ty >= p.Y && !w.occupiedAt(tx, ty) {
		w.moveParticle(p, tx, ty)
	}
}

// lowestPressureNeighbor scans the 8-neighborhood minus the straight-up cell
// and returns the minimum-pressure candidate, breaking ties with the seeded
// RNG.
func (w *World) lowestPressureNeighbor(x, y int) (int, int, float32, bool) {
	canLeft := x > 0
	canRight := x < w.w-1
	canUp := y > 0
	canDown := y < w.h-1

	type candidate struct {
		x, y int
	}
	var (
		candidates []candidate
		minFound   float32
	)
	consider := func(cx, cy int) {
		p := w.pressure.At(cx, cy)
		if len(candidates) == 0 || p < minFound {
			candidates = candidates[:0]
			minFound = p
		} else if p > minFound {
			return
		}
		candidates = append(candidates, candidate{cx, cy})
	}

	if canUp && canRight {
		consider(x+1, y-1)
	}
	if canRight {
		consider(x+1, y)
	}
	if canDown && canRight {
		consider(x+1, y+1)
	}
	if canDown {
		consider(x, y+1)
	}
	if canDown && canLeft {
		consider(x-1, y+1)
	}
	if canLeft {
		consider(x-1, y)
	}
	if canUp && canLeft {
		consider(x-1, y-1)
	}

	if len(candidates) == 0 {
		return 0, 0, 0, false
	}
	pick := candidates[0]
	if len(candidates) > 1 {
		pick = candidates[w.rng.IntN(len(candidates))]
	}
	return pick.x, pick.y, minFound, true
}

// fallDown settles the grain by one cell: straight down when free, then for
// loose materials diagonally down-left, then down-right. Liquids that cannot
// descend spread to a free side cell instead.
func (w *World) fallDown(p *Particle) {
	if p.Y >= w.h-1 {
		return
	}
	if !w.occupiedAt(p.X, p.Y+1) {
		w.moveParticle(p, p.X, p.Y+1)
		return
	}
	if p.Material.Rigid() {
		return
	}
	if p.X > 0 && !w.occupiedAt(p.X-1, p.Y+1) {
		w.moveParticle(p, p.X-1, p.Y+1)
		return
	}
	if p.X < w.w-1 && !w.occupiedAt(p.X+1, p.Y+1) {
		w.moveParticle(p, p.X+1, p.Y+1)
		return
	}
	if p.Material.Liquid() && w.cfg.Params.WaterSpread {
		w.spreadSideways(p)
	}
}

// spreadSideways shifts a blocked liquid grain into a free horizontal
// neighbor, choosing the first direction at random.
func (w *World) spreadSideways(p *Particle) {
	dir := 1
	if w.rng.Bool() {
		dir = -1
	}
	for _, dx := range [2]int{dir, -dir} {
		nx := p.X + dx
		if nx < 0 || nx > w.w-1 {
			continue
		}
		if !w.occupiedAt(nx, p.Y) {
			w.moveParticle(p, nx, p.Y)
			return
		}
	}
}

// moveParticle transfers the grain's cell ownership, keeping occupancy and
// mass consistent with its position.
func (w *World) moveParticle(p *Particle, x, y int) {
	w.clearCell(p.X, p.Y)
	p.X = x
	p.Y = y
	w.markCell(p.X, p.Y, p.Material)
}
