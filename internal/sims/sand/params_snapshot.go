package sand

import (
	"strconv"

	"sandgrid/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("gravity", "Gravity", params.Gravity),
				boolParam("pressure_relief", "Pressure relief", params.PressureRelief),
				boolParam("water_spread", "Water spread", params.WaterSpread),
			},
		},
		{
			Name: "Emitter",
			Params: []core.Parameter{
				intParam("spawn_every", "Spawn every", params.SpawnEvery),
				intParam("spawn_limit", "Spawn limit", params.SpawnLimit),
				intParam("spawn_column", "Spawn column", params.SpawnColumn),
				intParam("spawn_jitter", "Spawn jitter", params.SpawnJitter),
				intParam("spawn_row", "Spawn row", params.SpawnRow),
				stringParam("spawn_material", "Spawn material", params.SpawnMaterial.String()),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				boolParam("floor", "Floor", params.Floor),
				intParam("obstacle_w", "Obstacle width", params.ObstacleWidth),
				intParam("obstacle_h", "Obstacle height", params.ObstacleHeight),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls exposes the HUD-adjustable subset.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:   "gravity",
			Label: "Gravity",
			Type:  core.ParamTypeFloat,
			Step:  0.1,
			Min:   0, HasMin: true,
			Max: 4, HasMax: true,
		},
		{
			Key:   "spawn_every",
			Label: "Spawn every",
			Type:  core.ParamTypeInt,
			Step:  1,
			Min:   1, HasMin: true,
			Max: 60, HasMax: true,
		},
		{
			Key:   "spawn_limit",
			Label: "Spawn limit",
			Type:  core.ParamTypeInt,
			Step:  50,
			Min:   0, HasMin: true,
			Max: 5000, HasMax: true,
		},
		{
			Key:   "spawn_jitter",
			Label: "Spawn jitter",
			Type:  core.ParamTypeInt,
			Step:  1,
			Min:   0, HasMin: true,
			Max: 10, HasMax: true,
		},
	}
}

// SetFloatParameter updates a floating point parameter, clamping to the
// control bounds. It reports whether the key was recognized.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "gravity":
		w.cfg.Params.Gravity = clampFloat(value, 0, 4)
		return true
	}
	return false
}

// SetIntParameter updates an integer parameter, clamping to the control
// bounds. It reports whether the key was recognized.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "spawn_every":
		w.cfg.Params.SpawnEvery = clampInt(value, 1, 60)
		return true
	case "spawn_limit":
		w.cfg.Params.SpawnLimit = clampInt(value, 0, 5000)
		return true
	case "spawn_jitter":
		w.cfg.Params.SpawnJitter = clampInt(value, 0, 10)
		return true
	}
	return false
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
