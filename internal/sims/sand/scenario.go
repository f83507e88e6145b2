package sand

import (
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrInvalidScenario marks scenario files that cannot be interpreted.
var ErrInvalidScenario = errors.New("sand: invalid scenario")

// LoadScenario reads a JSON scenario file on top of the default config.
// Unknown keys are ignored so scenarios stay forward compatible.
func LoadScenario(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "sand: read scenario %s", path)
	}
	return ParseScenario(data)
}

// ParseScenario interprets scenario JSON bytes.
func ParseScenario(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, errors.Wrap(ErrInvalidScenario, "not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Config{}, errors.Wrap(ErrInvalidScenario, "top level must be an object")
	}

	c := DefaultConfig()
	if v := root.Get("width"); v.Exists() && v.Int() > 0 {
		c.Width = int(v.Int())
	}
	if v := root.Get("height"); v.Exists() && v.Int() > 0 {
		c.Height = int(v.Int())
	}
	if v := root.Get("seed"); v.Exists() {
		c.Seed = v.Int()
	}

	root.Get("params").ForEach(func(key, value gjson.Result) bool {
		applyParam(&c.Params, key.String(), value.String())
		return true
	})

	var badMaterial string
	root.Get("blocks").ForEach(func(_, b gjson.Result) bool {
		mat, ok := MaterialFromString(b.Get("material").String())
		if !ok {
			badMaterial = b.Get("material").String()
			return false
		}
		if mat == MaterialEmpty {
			mat = MaterialStone
		}
		c.Blocks = append(c.Blocks, Block{
			X: int(b.Get("x").Int()), Y: int(b.Get("y").Int()),
			W: rectSpan(b, "w"), H: rectSpan(b, "h"),
			Material: mat,
		})
		return true
	})
	root.Get("objects").ForEach(func(_, o gjson.Result) bool {
		mat, ok := MaterialFromString(o.Get("material").String())
		if !ok {
			badMaterial = o.Get("material").String()
			return false
		}
		if mat == MaterialEmpty {
			mat = MaterialMetal
		}
		c.Objects = append(c.Objects, ObjectSpec{
			X: int(o.Get("x").Int()), Y: int(o.Get("y").Int()),
			W: rectSpan(o, "w"), H: rectSpan(o, "h"),
			Material: mat,
		})
		return true
	})
	root.Get("grains").ForEach(func(_, g gjson.Result) bool {
		mat, ok := MaterialFromString(g.Get("material").String())
		if !ok {
			badMaterial = g.Get("material").String()
			return false
		}
		if mat == MaterialEmpty {
			mat = c.Params.SpawnMaterial
		}
		c.Grains = append(c.Grains, Grain{
			X: int(g.Get("x").Int()), Y: int(g.Get("y").Int()),
			Material: mat,
		})
		return true
	})
	if badMaterial != "" {
		return Config{}, errors.Wrapf(ErrInvalidScenario, "unknown material %q", badMaterial)
	}
	return c, nil
}

func rectSpan(v gjson.Result, key string) int {
	if span := v.Get(key); span.Exists() && span.Int() > 0 {
		return int(span.Int())
	}
	return 1
}
