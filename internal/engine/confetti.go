package engine

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// Shape is the outline a confetti piece is drawn with.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
	ShapeStrip
)

const shapeCount = 3

// emitPerFrame caps how many pieces enter per frame so the burst pours in
// from the top edge instead of appearing all at once.
const emitPerFrame = 10

// Particle is one piece of confetti.
type Particle struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Angle  float64
	Spin   float64
	Color  string
	Shape  Shape
}

// Burst simulates a non-recycling confetti shower over a rectangular surface.
// It is not safe for concurrent use; the renderer owns it.
type Burst struct {
	spec      BurstSpec
	rng       *rand.Rand
	particles []Particle
	emitted   int
	frames    int
	log       *slog.Logger
}

// NewBurst prepares a burst. Nothing is emitted until the first Step.
// A nil rng is seeded randomly.
func NewBurst(spec BurstSpec, rng *rand.Rand) *Burst {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Burst{
		spec:      spec,
		rng:       rng,
		particles: make([]Particle, 0, spec.Pieces),
		log:       slog.With(config.LogKeyComponent, config.CompConfetti),
	}
	b.log.Debug(config.MsgBurstStarted,
		config.LogKeyPieces, spec.Pieces,
		config.LogKeyWidth, spec.Width,
		config.LogKeyHeight, spec.Height)
	return b
}

// Resize updates the surface, e.g. after a window resize mid-burst.
func (b *Burst) Resize(width, height float32) {
	b.spec.Width = width
	b.spec.Height = height
}

// Spec returns the parameters the burst is running with.
func (b *Burst) Spec() BurstSpec {
	return b.spec
}

// Particles returns the live pieces. The slice is reused between frames.
func (b *Burst) Particles() []Particle {
	return b.particles
}

// Emitted is the number of pieces emitted so far.
func (b *Burst) Emitted() int {
	return b.emitted
}

// Done reports whether every piece has been emitted and has left the surface.
func (b *Burst) Done() bool {
	return b.emitted >= b.spec.Pieces && len(b.particles) == 0
}

// Step advances the simulation by one frame.
func (b *Burst) Step() {
	if b.Done() {
		return
	}
	b.frames++

	for i := 0; i < emitPerFrame && b.emitted < b.spec.Pieces; i++ {
		b.particles = append(b.particles, b.spawn())
		b.emitted++
	}

	height := float64(b.spec.Height)
	alive := b.particles[:0]
	for _, p := range b.particles {
		p.VY += config.ConfettiGravity
		p.VX += config.ConfettiWind
		p.VX *= config.ConfettiFriction
		p.VY *= config.ConfettiFriction
		p.X += p.VX
		p.Y += p.VY
		p.Angle = math.Mod(p.Angle+p.Spin, 2*math.Pi)

		if p.Y-p.H > height {
			if b.spec.Recycle {
				p = b.spawn()
			} else {
				continue
			}
		}
		alive = append(alive, p)
	}
	b.particles = alive

	if b.Done() {
		b.log.Debug(config.MsgBurstFinished, config.LogKeyPieces, b.emitted)
	}
}

func (b *Burst) spawn() Particle {
	size := config.ConfettiMinSize + b.rng.Float64()*(config.ConfettiMaxSize-config.ConfettiMinSize)
	shape := Shape(b.rng.IntN(shapeCount))
	w, h := size, size
	if shape == ShapeStrip {
		h = size / 2
	}

	color := config.ColorInactive
	if n := len(b.spec.Colors); n > 0 {
		color = b.spec.Colors[b.rng.IntN(n)]
	}

	return Particle{
		X:     b.rng.Float64() * float64(b.spec.Width),
		Y:     config.ConfettiSpawnBand - h,
		VX:    (b.rng.Float64()*2 - 1) * config.ConfettiMaxInitialVX,
		VY:    -b.rng.Float64() * config.ConfettiMaxInitialVY,
		W:     w,
		H:     h,
		Angle: b.rng.Float64() * 2 * math.Pi,
		Spin:  (b.rng.Float64()*2 - 1) * 0.2,
		Color: color,
		Shape: shape,
	}
}
