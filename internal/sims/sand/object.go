package sand

// stepObject drops a rigid body straight down by one cell when the full row
// under its footprint is free. Rigid bodies never slide diagonally, so a
// partially supported object stays put.
func (w *World) stepObject(o *Object) {
	below := o.Y + o.H
	if below > w.h-1 {
		return
	}
	for dx := 0; dx < o.W; dx++ {
		if w.occupiedAt(o.X+dx, below) {
			return
		}
	}
	// Clear bottom-up so the body never collides with itself while moving.
	for dy := o.H - 1; dy >= 0; dy-- {
		y := o.Y + dy
		for dx := 0; dx < o.W; dx++ {
			w.clearCell(o.X+dx, y)
		}
	}
	o.Y++
	for dy := 0; dy < o.H; dy++ {
		y := o.Y + dy
		for dx := 0; dx < o.W; dx++ {
			w.markCell(o.X+dx, y, o.Material)
		}
	}
}

// ObjectAt returns the rigid body covering (x, y), if any.
func (w *World) ObjectAt(x, y int) (Object, bool) {
	for _, o := range w.objects {
		if x >= o.X && x < o.X+o.W && y >= o.Y && y < o.Y+o.H {
			return o, true
		}
	}
	return Object{}, false
}
