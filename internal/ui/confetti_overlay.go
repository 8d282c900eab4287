package ui

import (
	"image/color"
	"math"
	"math/rand/v2"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

// ConfettiOverlay draws an engine.Burst on top of the window.
// Pieces are canvas rectangles, so taps pass through to the card below.
type ConfettiOverlay struct {
	Container *fyne.Container

	burst   *engine.Burst
	pieces  []*canvas.Rectangle
	anim    *fyne.Animation
	palette map[string]color.NRGBA
}

// NewConfettiOverlay returns an empty, idle overlay.
func NewConfettiOverlay() *ConfettiOverlay {
	return &ConfettiOverlay{Container: container.NewWithoutLayout()}
}

// Start launches a burst. A running burst keeps going; confetti is one-shot.
func (o *ConfettiOverlay) Start(spec engine.BurstSpec, rng *rand.Rand) {
	if o.burst != nil {
		return
	}
	o.burst = engine.NewBurst(spec, rng)
	o.palette = make(map[string]color.NRGBA, len(spec.Colors))
	for _, c := range spec.Colors {
		o.palette[c] = parseHexColor(c)
	}

	o.pieces = make([]*canvas.Rectangle, spec.Pieces)
	objects := make([]fyne.CanvasObject, spec.Pieces)
	for i := range o.pieces {
		r := canvas.NewRectangle(parseHexColor(config.ColorInactive))
		r.Hide()
		o.pieces[i] = r
		objects[i] = r
	}
	o.Container.Objects = objects
	o.Container.Show()

	// One Animation tick per frame; the curve value is ignored.
	o.anim = &fyne.Animation{
		Duration:    config.ConfettiFrameInterval * 60,
		RepeatCount: fyne.AnimationRepeatForever,
		Curve:       fyne.AnimationLinear,
		Tick:        func(float32) { o.Step() },
	}
	o.anim.Start()
}

// Running reports whether a burst has been started and is still falling.
func (o *ConfettiOverlay) Running() bool {
	return o.burst != nil && !o.burst.Done()
}

// Started reports whether Start has ever been called.
func (o *ConfettiOverlay) Started() bool {
	return o.burst != nil
}

// Burst exposes the simulation for inspection.
func (o *ConfettiOverlay) Burst() *engine.Burst {
	return o.burst
}

// Resize follows the window while the burst is falling.
func (o *ConfettiOverlay) Resize(size fyne.Size) {
	if o.burst != nil {
		o.burst.Resize(size.Width, size.Height)
	}
}

// Step advances the burst one frame and syncs the canvas objects.
func (o *ConfettiOverlay) Step() {
	if o.burst == nil {
		return
	}
	o.burst.Step()

	particles := o.burst.Particles()
	for i, r := range o.pieces {
		if i >= len(particles) {
			r.Hide()
			continue
		}
		p := particles[i]
		// Fyne cannot rotate; tumbling is faked by squashing the width.
		w := float32(p.W * math.Max(0.2, math.Abs(math.Cos(p.Angle))))
		h := float32(p.H)
		r.Resize(fyne.NewSize(w, h))
		r.Move(fyne.NewPos(float32(p.X)-w/2, float32(p.Y)-h/2))
		r.FillColor = o.pieceColor(p.Color)
		if p.Shape == engine.ShapeCircle {
			r.CornerRadius = h / 2
		} else {
			r.CornerRadius = 0
		}
		r.Show()
	}
	o.Container.Refresh()

	if o.burst.Done() {
		o.Stop()
		o.Container.Hide()
	}
}

func (o *ConfettiOverlay) pieceColor(hex string) color.NRGBA {
	if c, ok := o.palette[hex]; ok {
		return c
	}
	c := parseHexColor(hex)
	o.palette[hex] = c
	return c
}

// Stop halts the animation; the overlay is left as is.
func (o *ConfettiOverlay) Stop() {
	if o.anim != nil {
		o.anim.Stop()
		o.anim = nil
	}
}
