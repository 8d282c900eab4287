package engine_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func defaultSpec(w, h float32) engine.BurstSpec {
	return engine.BurstSpec{
		Width:  w,
		Height: h,
		Pieces: config.ConfettiPieces,
		Colors: config.ConfettiColors,
	}
}

func TestBurst_EmitsWithinSurfaceAndPalette(t *testing.T) {
	b := engine.NewBurst(defaultSpec(1280, 800), seeded())
	require.Empty(t, b.Particles(), "Nothing is emitted before the first frame")

	b.Step()
	require.NotEmpty(t, b.Particles())

	palette := map[string]bool{}
	for _, c := range config.ConfettiColors {
		palette[c] = true
	}
	for _, p := range b.Particles() {
		assert.GreaterOrEqual(t, p.X, -config.ConfettiMaxInitialVX*2)
		assert.LessOrEqual(t, p.X, 1280+config.ConfettiMaxInitialVX*2)
		assert.Less(t, p.Y, 1.0, "Pieces enter from the top edge")
		assert.True(t, palette[p.Color], "Unexpected color %s", p.Color)
		assert.GreaterOrEqual(t, p.W, config.ConfettiMinSize)
		assert.LessOrEqual(t, p.W, config.ConfettiMaxSize)
	}
}

func TestBurst_NeverExceedsPieceCount(t *testing.T) {
	b := engine.NewBurst(defaultSpec(1280, 800), seeded())

	for i := 0; i < 200; i++ {
		b.Step()
		assert.LessOrEqual(t, len(b.Particles()), config.ConfettiPieces)
		assert.LessOrEqual(t, b.Emitted(), config.ConfettiPieces)
	}
	assert.Equal(t, config.ConfettiPieces, b.Emitted())
}

func TestBurst_NonRecyclingRunsOut(t *testing.T) {
	b := engine.NewBurst(defaultSpec(320, 200), seeded())

	frames := 0
	for !b.Done() && frames < 10000 {
		b.Step()
		frames++
	}

	assert.True(t, b.Done(), "A non-recycling burst must end once every piece has fallen off")
	assert.Empty(t, b.Particles())
	assert.Equal(t, config.ConfettiPieces, b.Emitted())

	// Stepping a finished burst is harmless.
	b.Step()
	assert.True(t, b.Done())
}

func TestBurst_RecyclingNeverEnds(t *testing.T) {
	spec := defaultSpec(320, 200)
	spec.Recycle = true
	spec.Pieces = 20
	b := engine.NewBurst(spec, seeded())

	for i := 0; i < 2000; i++ {
		b.Step()
	}
	assert.False(t, b.Done())
	assert.Len(t, b.Particles(), 20)
}

func TestBurst_GravityPullsDown(t *testing.T) {
	spec := defaultSpec(1000, 100000)
	spec.Pieces = 1
	b := engine.NewBurst(spec, seeded())

	b.Step()
	require.Len(t, b.Particles(), 1)
	first := b.Particles()[0].VY

	for i := 0; i < 100; i++ {
		b.Step()
	}
	require.Len(t, b.Particles(), 1)
	assert.Greater(t, b.Particles()[0].VY, first)
}

func TestBurst_Resize(t *testing.T) {
	b := engine.NewBurst(defaultSpec(0, 0), seeded())
	b.Resize(1280, 800)

	assert.Equal(t, float32(1280), b.Spec().Width)
	assert.Equal(t, float32(800), b.Spec().Height)
}
