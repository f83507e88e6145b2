package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(4, 3)
	assert.Len(t, g.Cells(), 12)

	g.Set(3, 2, 7)
	assert.Equal(t, uint8(7), g.At(3, 2))
	assert.Equal(t, 11, g.Index(3, 2))
	assert.Equal(t, uint8(7), g.Cells()[g.Index(3, 2)])

	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(3, 2))
	assert.False(t, g.InBounds(4, 0))
	assert.False(t, g.InBounds(0, 3))
	assert.False(t, g.InBounds(-1, 1))

	g.Clear()
	assert.Equal(t, uint8(0), g.At(3, 2))
}

func TestByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -2)
	assert.Equal(t, 1, g.W)
	assert.Equal(t, 1, g.H)
	assert.Len(t, g.Cells(), 1)
}

func TestScalarGrid(t *testing.T) {
	g := NewScalarGrid(3, 3)
	g.Set(1, 2, 2.5)
	assert.Equal(t, float32(2.5), g.At(1, 2))
	assert.Equal(t, float32(2.5), g.Values()[g.Index(1, 2)])

	g.Clear()
	assert.Equal(t, float32(0), g.At(1, 2))
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.IntN(100), b.IntN(100))
		assert.Equal(t, a.Bool(), b.Bool())
	}

	c := NewRNG(42)
	d := NewRNG(43)
	same := true
	for i := 0; i < 32; i++ {
		if c.IntN(1<<30) != d.IntN(1<<30) {
			same = false
		}
	}
	assert.False(t, same, "different seeds produce different streams")
}
