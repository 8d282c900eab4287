package engine

import (
	"time"

	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// Phase is the top-level stage of the card.
type Phase int

const (
	// PhaseForm collects the name and birthday.
	PhaseForm Phase = iota
	// PhaseCelebrating shows the candles, balloons and celebrate button.
	PhaseCelebrating
)

func (p Phase) String() string {
	if p == PhaseCelebrating {
		return "celebrating"
	}
	return "form"
}

// Input is what the intake form captured. It never changes after submit.
type Input struct {
	Name     string
	Birthday time.Time
}

// Viewport is the size of the surface confetti is drawn on.
type Viewport struct {
	Width  float32
	Height float32
}

// Snapshot is an immutable copy of a session's state.
// Every per-item visual state is derived from the two progress counters.
type Snapshot struct {
	Phase         Phase
	Input         Input
	Candles       int
	Balloons      int
	TotalCandles  int
	TotalBalloons int
	Celebrating   bool
	TimerRunning  bool
	ConfettiShown bool
	Viewport      Viewport
}

// Submitted reports whether the intake form has been accepted.
func (s Snapshot) Submitted() bool {
	return s.Phase == PhaseCelebrating
}

// CandleLit reports whether the candle at index has been lit.
func (s Snapshot) CandleLit(index int) bool {
	return index < s.Candles
}

// BalloonPopped reports whether the balloon at index has been popped.
func (s Snapshot) BalloonPopped(index int) bool {
	return index < s.Balloons
}

// CandleShown reports whether the candle at index is drawn lit.
// While celebrating, the candle the next tick will light is already drawn,
// its reveal delayed by CandleRevealDelay.
func (s Snapshot) CandleShown(index int) bool {
	if s.Celebrating {
		return index <= s.Candles
	}
	return index < s.Candles
}

// CandleRevealDelay staggers candle reveals during a celebration.
func (s Snapshot) CandleRevealDelay(index int) time.Duration {
	if !s.Celebrating {
		return 0
	}
	return time.Duration(index) * config.CandleRevealStagger
}

// Complete reports whether every candle is lit and every balloon popped.
func (s Snapshot) Complete() bool {
	return s.Candles == s.TotalCandles && s.Balloons == s.TotalBalloons
}

// NextCandle is the only candle index a click is accepted for,
// or -1 once all are lit.
func (s Snapshot) NextCandle() int {
	if s.Candles >= s.TotalCandles {
		return -1
	}
	return s.Candles
}

// NextBalloon is the only balloon index a click is accepted for,
// or -1 once all are popped.
func (s Snapshot) NextBalloon() int {
	if s.Balloons >= s.TotalBalloons {
		return -1
	}
	return s.Balloons
}
