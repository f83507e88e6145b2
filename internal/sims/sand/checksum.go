package sand

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Checksum digests the cell grid, grain kinematics, rigid bodies and tick
// counter. Two worlds with equal config and seed agree on this value at every
// tick, which the tests and the snapshot store rely on.
func (w *World) Checksum() uint64 {
	d := xxhash.New()
	_, _ = d.Write(w.cells.Cells())

	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	writeU64(uint64(len(w.particles)))
	for i := range w.particles {
		p := &w.particles[i]
		writeU64(uint64(uint32(p.ID)))
		writeU64(uint64(int64(p.X)))
		writeU64(uint64(int64(p.Y)))
		writeU64(math.Float64bits(p.Vy))
		writeU64(uint64(p.Material))
	}
	writeU64(uint64(len(w.objects)))
	for i := range w.objects {
		o := &w.objects[i]
		writeU64(uint64(uint32(o.ID)))
		writeU64(uint64(int64(o.X)))
		writeU64(uint64(int64(o.Y)))
		writeU64(uint64(int64(o.W)))
		writeU64(uint64(int64(o.H)))
		writeU64(uint64(o.Material))
	}
	writeU64(w.tick)
	return d.Sum64()
}
