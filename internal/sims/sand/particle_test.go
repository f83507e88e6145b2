package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grainAt(t *testing.T, w *World, x, y int) Particle {
	t.Helper()
	for _, p := range w.Particles() {
		if p.X == x && p.Y == y {
			return p
		}
	}
	t.Fatalf("no grain at (%d,%d)", x, y)
	return Particle{}
}

func TestGrainFallsAndAccelerates(t *testing.T) {
	world := NewWithConfig(bareConfig(5, 5))
	world.Reset(0)
	require.True(t, world.SpawnParticle(2, 0, MaterialSand))

	world.Step()
	// One velocity cell plus the settling pass.
	assert.Equal(t, MaterialSand, world.MaterialAt(2, 2))

	world.Step()
	// Velocity has grown to two cells; grain reaches the bottom row.
	assert.Equal(t, MaterialSand, world.MaterialAt(2, 4))

	world.Step()
	p := grainAt(t, world, 2, 4)
	assert.Equal(t, float64(0), p.Vy, "grounded grain carries no velocity")
}

func TestGrainSlidesDownLeftFirst(t *testing.T) {
	world := NewWithConfig(bareConfig(5, 5))
	world.Reset(0)
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SpawnParticle(2, 1, MaterialSand))

	world.Step()
	assert.Equal(t, MaterialSand, world.MaterialAt(1, 2), "blocked grain slides down-left")
	assert.Equal(t, MaterialEmpty, world.MaterialAt(2, 1))
}

func TestGrainSlidesDownRightWhenLeftBlocked(t *testing.T) {
	world := NewWithConfig(bareConfig(5, 5))
	world.Reset(0)
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SetStatic(1, 2, MaterialStone))
	require.True(t, world.SpawnParticle(2, 1, MaterialSand))

	world.Step()
	assert.Equal(t, MaterialSand, world.MaterialAt(3, 2))
}

func TestRigidGrainNeverSlides(t *testing.T) {
	world := NewWithConfig(bareConfig(5, 5))
	world.Reset(0)
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SpawnParticle(2, 1, MaterialWood))

	for i := 0; i < 5; i++ {
		world.Step()
	}
	assert.Equal(t, MaterialWood, world.MaterialAt(2, 1), "rigid grains stack straight")
}

func TestWaterSpreadsSideways(t *testing.T) {
	cfg := bareConfig(5, 5)
	world := NewWithConfig(cfg)
	world.Reset(0)
	require.True(t, world.SetStatic(1, 2, MaterialStone))
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SetStatic(3, 2, MaterialStone))
	require.True(t, world.SpawnParticle(2, 1, MaterialWater))

	world.Step()
	assert.Equal(t, MaterialEmpty, world.MaterialAt(2, 1))
	spreadLeft := world.MaterialAt(1, 1) == MaterialWater
	spreadRight := world.MaterialAt(3, 1) == MaterialWater
	assert.True(t, spreadLeft != spreadRight, "water moves to exactly one side")
}

func TestWaterSpreadDisabled(t *testing.T) {
	cfg := bareConfig(5, 5)
	cfg.Params.WaterSpread = false
	world := NewWithConfig(cfg)
	world.Reset(0)
	require.True(t, world.SetStatic(1, 2, MaterialStone))
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SetStatic(3, 2, MaterialStone))
	require.True(t, world.SpawnParticle(2, 1, MaterialWater))

	world.Step()
	assert.Equal(t, MaterialWater, world.MaterialAt(2, 1))
}

// A grain buried under a heavy column escapes sideways through pressure
// relief once falling is impossible.
func TestPressureReliefFreesBuriedGrain(t *testing.T) {
	cfg := bareConfig(3, 3)
	world := NewWithConfig(cfg)
	world.Reset(0)
	require.True(t, world.SetStatic(0, 2, MaterialStone))
	require.True(t, world.SetStatic(1, 2, MaterialStone))
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SpawnParticle(1, 1, MaterialSand))
	require.True(t, world.SetStatic(1, 0, MaterialMetal))

	moved := false
	for i := 0; i < 20 && !moved; i++ {
		world.Step()
		moved = world.MaterialAt(1, 1) == MaterialEmpty
	}
	require.True(t, moved, "overloaded grain must flow out from under the weight")
	escapedLeft := world.MaterialAt(0, 1) == MaterialSand
	escapedRight := world.MaterialAt(2, 1) == MaterialSand
	assert.True(t, escapedLeft != escapedRight, "grain settles beside the weight")
}

func TestPressureReliefDisabled(t *testing.T) {
	cfg := bareConfig(3, 3)
	cfg.Params.PressureRelief = false
	world := NewWithConfig(cfg)
	world.Reset(0)
	require.True(t, world.SetStatic(0, 2, MaterialStone))
	require.True(t, world.SetStatic(1, 2, MaterialStone))
	require.True(t, world.SetStatic(2, 2, MaterialStone))
	require.True(t, world.SpawnParticle(1, 1, MaterialSand))
	require.True(t, world.SetStatic(1, 0, MaterialMetal))

	for i := 0; i < 20; i++ {
		world.Step()
	}
	assert.Equal(t, MaterialSand, world.MaterialAt(1, 1))
}

func TestGrainStopsAtBottomRow(t *testing.T) {
	world := NewWithConfig(bareConfig(3, 3))
	world.Reset(0)
	require.True(t, world.SpawnParticle(1, 0, MaterialSand))

	for i := 0; i < 10; i++ {
		world.Step()
	}
	p := world.Particles()[0]
	assert.Equal(t, 2, p.Y, "grain rests on the bottom boundary")
	assert.Equal(t, MaterialSand, world.MaterialAt(p.X, 2))
}
