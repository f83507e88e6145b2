package sand

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureRestoreRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Seed = 11
	world := NewWithConfig(cfg)
	world.Reset(0)
	for i := 0; i < 40; i++ {
		world.Step()
	}

	st := world.CaptureState()
	restored, err := RestoreState(st)
	require.NoError(t, err)

	assert.Equal(t, world.Tick(), restored.Tick())
	assert.Equal(t, world.Cells(), restored.Cells())
	assert.Equal(t, world.Particles(), restored.Particles())
	assert.Equal(t, world.Objects(), restored.Objects())
	assert.Equal(t, world.PressureField(), restored.PressureField())
	assert.Equal(t, world.Checksum(), restored.Checksum())
}

func TestRestoreStateChecksumMismatch(t *testing.T) {
	world := NewWithConfig(bareConfig(8, 8))
	world.Reset(0)
	require.True(t, world.SpawnParticle(4, 2, MaterialSand))
	world.Step()

	st := world.CaptureState()
	st.Checksum++
	_, err := RestoreState(st)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStateChecksum))
}

func TestRestoreStateSkipsZeroChecksum(t *testing.T) {
	world := NewWithConfig(bareConfig(8, 8))
	world.Reset(0)
	require.True(t, world.SpawnParticle(4, 2, MaterialSand))

	st := world.CaptureState()
	st.Checksum = 0
	_, err := RestoreState(st)
	assert.NoError(t, err)
}

func TestRestoreStateRejectsDoubleBooking(t *testing.T) {
	world := NewWithConfig(bareConfig(8, 8))
	world.Reset(0)
	require.True(t, world.SetStatic(3, 3, MaterialStone))

	st := world.CaptureState()
	st.Particles = append(st.Particles, Particle{ID: 99, X: 3, Y: 3, Material: MaterialSand})
	st.Checksum = 0
	_, err := RestoreState(st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "double-booked")
}

func TestRestoreStateRejectsOutOfBounds(t *testing.T) {
	world := NewWithConfig(bareConfig(8, 8))
	world.Reset(0)

	st := world.CaptureState()
	st.Particles = append(st.Particles, Particle{ID: 1, X: 20, Y: 2, Material: MaterialSand})
	st.Checksum = 0
	_, err := RestoreState(st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")
}

func TestRestoreStateRejectsEmptyDimensions(t *testing.T) {
	_, err := RestoreState(State{Config: Config{Width: 0, Height: 10}})
	assert.Error(t, err)
}

func TestChecksumTracksState(t *testing.T) {
	world := NewWithConfig(bareConfig(8, 8))
	world.Reset(0)
	base := world.Checksum()

	require.True(t, world.SpawnParticle(4, 2, MaterialSand))
	assert.NotEqual(t, base, world.Checksum(), "checksum changes with the grid")

	world.Step()
	assert.NotEqual(t, base, world.Checksum(), "checksum changes with the tick")
}
