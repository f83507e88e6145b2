package sand

import "strconv"

// Params holds the tunable physics and emitter values for the sand world.
type Params struct {
	Gravity        float64
	PressureRelief bool
	WaterSpread    bool

	SpawnEvery    int
	SpawnLimit    int
	SpawnColumn   int // -1 selects the grid center
	SpawnJitter   int
	SpawnRow      int
	SpawnMaterial Material

	Floor          bool
	ObstacleWidth  int
	ObstacleHeight int
}

// Block places a static terrain rectangle during Reset.
type Block struct {
	X, Y     int
	W, H     int
	Material Material
}

// ObjectSpec places a rigid falling object during Reset.
type ObjectSpec struct {
	X, Y     int
	W, H     int
	Material Material
}

// Grain places a single loose particle during Reset.
type Grain struct {
	X, Y     int
	Material Material
}

// Config controls the sand world dimensions and initial contents.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params

	Blocks  []Block
	Objects []ObjectSpec
	Grains  []Grain
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  80,
		Height: 60,
		Seed:   1337,
		Params: Params{
			Gravity:        1.0,
			PressureRelief: true,
			WaterSpread:    true,
			SpawnEvery:     2,
			SpawnLimit:     300,
			SpawnColumn:    -1,
			SpawnJitter:    1,
			SpawnRow:       1,
			SpawnMaterial:  MaterialSand,
			Floor:          true,
			ObstacleWidth:  6,
			ObstacleHeight: 4,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for key, value := range cfg {
		c.Apply(key, value)
	}
	return c
}

// Apply layers one key/value override onto the config and reports whether
// the key was recognized.
func (c *Config) Apply(key, value string) bool {
	switch key {
	case "w", "width":
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			c.Width = parsed
			return true
		}
		return false
	case "h", "height":
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			c.Height = parsed
			return true
		}
		return false
	case "seed":
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			c.Seed = parsed
			return true
		}
		return false
	}
	return applyParam(&c.Params, key, value)
}

// applyParam applies one flag-style override to the parameter set and reports
// whether the key was recognized.
func applyParam(p *Params, key, value string) bool {
	switch key {
	case "gravity":
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			p.Gravity = parsed
			return true
		}
	case "pressure_relief":
		if parsed, err := strconv.ParseBool(value); err == nil {
			p.PressureRelief = parsed
			return true
		}
	case "water_spread":
		if parsed, err := strconv.ParseBool(value); err == nil {
			p.WaterSpread = parsed
			return true
		}
	case "spawn_every":
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			p.SpawnEvery = parsed
			return true
		}
	case "spawn_limit":
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			p.SpawnLimit = parsed
			return true
		}
	case "spawn_column":
		if parsed, err := strconv.Atoi(value); err == nil {
			p.SpawnColumn = parsed
			return true
		}
	case "spawn_jitter":
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			p.SpawnJitter = parsed
			return true
		}
	case "spawn_row":
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			p.SpawnRow = parsed
			return true
		}
	case "spawn_material":
		if mat, ok := MaterialFromString(value); ok && mat != MaterialEmpty {
			p.SpawnMaterial = mat
			return true
		}
	case "floor":
		if parsed, err := strconv.ParseBool(value); err == nil {
			p.Floor = parsed
			return true
		}
	case "obstacle_w":
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			p.ObstacleWidth = parsed
			return true
		}
	case "obstacle_h":
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			p.ObstacleHeight = parsed
			return true
		}
	}
	return false
}
