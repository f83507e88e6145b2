//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sandgrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type pressureFieldProvider interface {
	PressureField() []float32
}

type massFieldProvider interface {
	MassField() []float32
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim   core.Sim
	scale int

	showPressure bool
	showMass     bool

	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles the field overlays.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showPressure = !o.showPressure
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMass = !o.showMass
	}
}

// Draw renders the enabled field overlays onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	total := size.W * size.H
	if total <= 0 {
		return
	}
	if !o.showPressure && !o.showMass {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	if o.showPressure {
		if provider, ok := o.sim.(pressureFieldProvider); ok {
			o.drawField(screen, provider.PressureField(), color.RGBA{R: 255, G: 120, B: 40})
		}
	}
	if o.showMass {
		if provider, ok := o.sim.(massFieldProvider); ok {
			o.drawField(screen, provider.MassField(), color.RGBA{R: 64, G: 164, B: 223})
		}
	}
}

// drawField tints the screen by the field value normalized against its
// current maximum.
func (o *Overlay) drawField(screen *ebiten.Image, field []float32, tint color.RGBA) {
	size := o.sim.Size()
	total := size.W * size.H
	if len(field) != total {
		return
	}

	var max float32
	for _, v := range field {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return
	}

	const (
		maxAlpha      = 140.0
		intensityBias = 0.75
	)
	for i := 0; i < total; i++ {
		base := i * 4
		intensity := float64(field[i] / max)
		if intensity <= 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
		// Pixels are premultiplied alpha.
		o.maskBuf[base+0] = uint8(float64(tint.R) * alpha / 255)
		o.maskBuf[base+1] = uint8(float64(tint.G) * alpha / 255)
		o.maskBuf[base+2] = uint8(float64(tint.B) * alpha / 255)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)

	op := &ebiten.DrawImageOptions{}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
