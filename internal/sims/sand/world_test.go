package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandgrid/internal/core"
)

// bareConfig returns a world with no floor, obstacle or emitter so tests can
// stage cells by hand.
func bareConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.SpawnEvery = 0
	cfg.Params.Floor = false
	cfg.Params.ObstacleWidth = 0
	cfg.Params.ObstacleHeight = 0
	return cfg
}

func TestStepDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24

	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)
	a.Reset(7)
	b.Reset(7)

	for i := 0; i < 50; i++ {
		a.Step()
		b.Step()
	}
	require.Equal(t, a.Checksum(), b.Checksum(), "same seed must give same state")
	require.Equal(t, a.Cells(), b.Cells())

	c := NewWithConfig(cfg)
	c.Reset(8)
	for i := 0; i < 50; i++ {
		c.Step()
	}
	assert.NotEqual(t, a.Checksum(), c.Checksum(), "different seeds should diverge")
}

func TestResetRebuildsTerrain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 80
	cfg.Height = 60
	world := NewWithConfig(cfg)
	world.Reset(0)

	for x := 0; x < 80; x++ {
		require.Equal(t, MaterialStone, world.MaterialAt(x, 59), "floor cell %d", x)
	}
	// Obstacle is 6x4, centered, resting on the floor.
	assert.Equal(t, MaterialStone, world.MaterialAt(37, 58))
	assert.Equal(t, MaterialStone, world.MaterialAt(42, 55))
	assert.Equal(t, MaterialEmpty, world.MaterialAt(36, 58))
	assert.Equal(t, MaterialEmpty, world.MaterialAt(37, 54))

	// Reset must drop run state entirely.
	for i := 0; i < 20; i++ {
		world.Step()
	}
	require.NotEmpty(t, world.Particles())
	world.Reset(0)
	assert.Empty(t, world.Particles())
	assert.Equal(t, uint64(0), world.Tick())
}

func TestEmitterCadenceAndLimit(t *testing.T) {
	cfg := bareConfig(9, 5)
	cfg.Params.SpawnEvery = 1
	cfg.Params.SpawnLimit = 3
	cfg.Params.SpawnJitter = 0
	cfg.Params.SpawnColumn = 4
	cfg.Params.SpawnRow = 0
	world := NewWithConfig(cfg)
	world.Reset(0)

	for i := 0; i < 5; i++ {
		world.Step()
	}
	assert.Len(t, world.Particles(), 3, "emitter must stop at the grain limit")
}

func TestEmitterSkipsOccupiedCell(t *testing.T) {
	cfg := bareConfig(9, 5)
	cfg.Params.SpawnEvery = 1
	cfg.Params.SpawnLimit = 2
	cfg.Params.SpawnJitter = 0
	cfg.Params.SpawnColumn = 4
	cfg.Params.SpawnRow = 0
	world := NewWithConfig(cfg)
	world.Reset(0)
	require.True(t, world.SetStatic(4, 0, MaterialStone))

	for i := 0; i < 4; i++ {
		world.Step()
	}
	assert.Empty(t, world.Particles(), "blocked spawn cell must not produce grains")
}

func TestSpawnParticleRejectsConflicts(t *testing.T) {
	world := NewWithConfig(bareConfig(4, 4))
	world.Reset(0)

	require.True(t, world.SpawnParticle(1, 1, MaterialSand))
	assert.False(t, world.SpawnParticle(1, 1, MaterialSand), "occupied cell")
	assert.False(t, world.SpawnParticle(-1, 0, MaterialSand), "out of bounds")
	assert.False(t, world.SpawnParticle(0, 4, MaterialSand), "out of bounds")
	assert.False(t, world.SpawnParticle(0, 0, MaterialEmpty), "empty material")
}

func TestSpawnBlockAt(t *testing.T) {
	world := NewWithConfig(bareConfig(8, 8))
	world.Reset(0)

	require.True(t, world.SpawnBlockAt(2, 2))
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			assert.Equal(t, MaterialMetal, world.MaterialAt(2+dx, 2+dy))
		}
	}
	assert.False(t, world.SpawnBlockAt(4, 4), "overlapping footprint")
	assert.False(t, world.SpawnBlockAt(6, 6), "footprint out of bounds")
}

func TestRegistryBuildsSandSim(t *testing.T) {
	factory, ok := core.Sims()["sand"]
	require.True(t, ok, "sand must self-register")

	sim := factory(map[string]string{"w": "10", "h": "8"})
	require.NotNil(t, sim)
	assert.Equal(t, "sand", sim.Name())
	assert.Equal(t, core.Size{W: 10, H: 8}, sim.Size())
	assert.Len(t, sim.Cells(), 80)
}

func TestPressureAccumulatesPerColumn(t *testing.T) {
	world := NewWithConfig(bareConfig(3, 4))
	world.Reset(0)
	require.True(t, world.SetStatic(1, 3, MaterialStone))
	require.True(t, world.SpawnParticle(1, 2, MaterialSand))
	world.calcPressure()

	idx := func(x, y int) int { return y*3 + x }
	field := world.PressureField()
	assert.Equal(t, float32(0), field[idx(1, 1)])
	assert.Equal(t, float32(10), field[idx(1, 2)])
	assert.Equal(t, float32(1010), field[idx(1, 3)])
	assert.Equal(t, float32(0), field[idx(0, 3)])
}
