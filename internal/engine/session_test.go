package engine_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

// FakeTicker is a Ticker whose ticks are delivered by the test.
type FakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *FakeTicker) C() <-chan time.Time { return f.ch }
func (f *FakeTicker) Stop()               { f.stopped.Store(true) }

// Tick blocks until the session's timer goroutine has received the tick.
func (f *FakeTicker) Tick() { f.ch <- time.Now() }

// TickerRecorder hands out FakeTickers and remembers them.
type TickerRecorder struct {
	mu      sync.Mutex
	tickers []*FakeTicker
	periods []time.Duration
}

func (r *TickerRecorder) New(period time.Duration) engine.Ticker {
	r.mu.Lock()
	defer r.mu.Unlock()
	ft := &FakeTicker{ch: make(chan time.Time)}
	r.tickers = append(r.tickers, ft)
	r.periods = append(r.periods, period)
	return ft
}

func (r *TickerRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickers)
}

func (r *TickerRecorder) Last() *FakeTicker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickers[len(r.tickers)-1]
}

// MockListener records session notifications using testify/mock.
type MockListener struct {
	mock.Mock
}

func (m *MockListener) Handle(e engine.Event, snap engine.Snapshot) {
	m.Called(e, snap)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

const waitFor = time.Second
const pollEvery = 5 * time.Millisecond

func newSession(t *testing.T) (*engine.Session, *TickerRecorder) {
	t.Helper()
	rec := &TickerRecorder{}
	s := engine.NewSession(config.DefaultSettings(), rec.New)
	t.Cleanup(s.Close)
	return s, rec
}

func newSubmittedSession(t *testing.T) (*engine.Session, *TickerRecorder) {
	t.Helper()
	s, rec := newSession(t)
	require.True(t, s.Submit("Ada", "1990-12-10"))
	return s, rec
}

// -----------------------------------------------------------------------------
// Intake Form
// -----------------------------------------------------------------------------

func TestSubmit_RejectsEmptyOrPartialInput(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		birthday string
	}{
		{"Both empty", "", ""},
		{"Name only", "Ada", ""},
		{"Birthday only", "", "1990-12-10"},
		{"Not a date", "Ada", "tomorrow"},
		{"Impossible date", "Ada", "1990-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t)

			assert.False(t, s.Submit(tt.userName, tt.birthday))

			snap := s.Snapshot()
			assert.Equal(t, engine.PhaseForm, snap.Phase)
			assert.False(t, snap.Submitted())
			assert.Empty(t, snap.Input.Name)
		})
	}
}

func TestSubmit_TransitionsOnceToCelebrating(t *testing.T) {
	s, _ := newSession(t)

	var events []engine.Event
	s.Subscribe(func(e engine.Event, _ engine.Snapshot) { events = append(events, e) })

	require.True(t, s.Submit("Ada", "1990-12-10"))
	assert.False(t, s.Submit("Grace", "1906-12-09"), "Second submit must be ignored")

	snap := s.Snapshot()
	assert.Equal(t, engine.PhaseCelebrating, snap.Phase)
	assert.Equal(t, "Ada", snap.Input.Name)
	assert.Equal(t, time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC), snap.Input.Birthday)
	assert.Zero(t, snap.Candles)
	assert.Zero(t, snap.Balloons)
	assert.False(t, snap.Celebrating)
	assert.False(t, snap.ConfettiShown)

	assert.Equal(t, []engine.Event{engine.EventSubmitted}, events)
}

func TestListener_ReceivesSnapshotAfterTransition(t *testing.T) {
	s, _ := newSubmittedSession(t)

	listener := new(MockListener)
	listener.On("Handle", engine.EventCandleLit, mock.MatchedBy(func(snap engine.Snapshot) bool {
		return snap.Candles == 1 && !snap.ConfettiShown
	})).Once()
	s.Subscribe(listener.Handle)

	require.True(t, s.AdvanceCandle(0))
	assert.False(t, s.AdvanceCandle(0), "Rejected clicks notify nobody")

	listener.AssertExpectations(t)
	listener.AssertNumberOfCalls(t, "Handle", 1)
}

func TestSubmit_WhitespaceNameIsNotEmpty(t *testing.T) {
	s, _ := newSession(t)
	assert.True(t, s.Submit(" ", "2000-01-01"))
}

// -----------------------------------------------------------------------------
// Index-Gated Advances
// -----------------------------------------------------------------------------

func TestAdvance_IgnoredBeforeSubmit(t *testing.T) {
	s, _ := newSession(t)

	assert.False(t, s.AdvanceCandle(0))
	assert.False(t, s.AdvanceBalloon(0))
	assert.False(t, s.Celebrate())
	assert.Zero(t, s.Snapshot().Candles)
}

func TestAdvanceCandle_OutOfSequenceIsNoOp(t *testing.T) {
	s, _ := newSubmittedSession(t)
	require.True(t, s.AdvanceCandle(0))

	for _, i := range []int{-1, 0, 2, 3, 4, 5, 99} {
		assert.Falsef(t, s.AdvanceCandle(i), "index %d must be rejected", i)
		assert.Equal(t, 1, s.Snapshot().Candles)
	}
}

func TestAdvanceCandle_InOrderReachesTotal(t *testing.T) {
	s, _ := newSubmittedSession(t)

	for i := 0; i < config.TotalCandles; i++ {
		require.True(t, s.AdvanceCandle(i))
		snap := s.Snapshot()
		assert.Equal(t, i+1, snap.Candles)
		assert.True(t, snap.CandleLit(i))
		assert.False(t, snap.CandleLit(i+1))
	}

	// Saturated: the guard never matches beyond the counter.
	assert.False(t, s.AdvanceCandle(config.TotalCandles))
	assert.Equal(t, config.TotalCandles, s.Snapshot().Candles)
	assert.Equal(t, -1, s.Snapshot().NextCandle())
	assert.False(t, s.Snapshot().ConfettiShown, "Candles alone must not trigger confetti")
}

func TestAdvanceBalloon_InOrderReachesTotal(t *testing.T) {
	s, _ := newSubmittedSession(t)

	assert.False(t, s.AdvanceBalloon(1))
	for i := 0; i < config.TotalBalloons; i++ {
		assert.Equal(t, i, s.Snapshot().NextBalloon())
		require.True(t, s.AdvanceBalloon(i))
		assert.True(t, s.Snapshot().BalloonPopped(i))
	}
	assert.False(t, s.AdvanceBalloon(config.TotalBalloons))
	assert.Equal(t, config.TotalBalloons, s.Snapshot().Balloons)
	assert.False(t, s.Snapshot().ConfettiShown)
}

// -----------------------------------------------------------------------------
// Completion Watcher
// -----------------------------------------------------------------------------

func TestCompletion_RaisesConfettiExactlyOnce(t *testing.T) {
	s, _ := newSubmittedSession(t)

	var confetti int
	s.Subscribe(func(e engine.Event, _ engine.Snapshot) {
		if e == engine.EventConfettiShown {
			confetti++
		}
	})

	for i := 0; i < config.TotalBalloons; i++ {
		require.True(t, s.AdvanceBalloon(i))
	}
	for i := 0; i < config.TotalCandles-1; i++ {
		require.True(t, s.AdvanceCandle(i))
		assert.False(t, s.Snapshot().ConfettiShown)
	}

	require.True(t, s.AdvanceCandle(config.TotalCandles-1))
	snap := s.Snapshot()
	assert.True(t, snap.Complete())
	assert.True(t, snap.ConfettiShown)
	assert.Equal(t, 1, confetti)

	// Further rejected clicks never revert the flag nor re-fire it.
	s.AdvanceCandle(0)
	s.AdvanceBalloon(0)
	assert.True(t, s.Snapshot().ConfettiShown)
	assert.Equal(t, 1, confetti)
}

// -----------------------------------------------------------------------------
// Celebrate & Timer
// -----------------------------------------------------------------------------

func TestCelebrate_ShowsConfettiImmediately(t *testing.T) {
	s, rec := newSubmittedSession(t)

	var events []engine.Event
	s.Subscribe(func(e engine.Event, _ engine.Snapshot) { events = append(events, e) })

	require.True(t, s.Celebrate())

	snap := s.Snapshot()
	assert.True(t, snap.Celebrating)
	assert.True(t, snap.ConfettiShown, "Confetti is an early reward, not gated on completion")
	assert.True(t, snap.TimerRunning)
	assert.Zero(t, snap.Candles, "No candle is lit before the first tick")

	assert.Equal(t, []engine.Event{engine.EventCelebrateStarted, engine.EventConfettiShown}, events)
	require.Equal(t, 1, rec.Count())
	assert.Equal(t, config.CelebrateTickPeriod, rec.periods[0])
}

func TestCelebrate_SecondCallIsGuarded(t *testing.T) {
	s, rec := newSubmittedSession(t)

	require.True(t, s.Celebrate())
	assert.False(t, s.Celebrate())
	assert.Equal(t, 1, rec.Count(), "Only one timer may ever be started")
}

func TestCelebrate_TimerLightsEveryCandleThenStops(t *testing.T) {
	s, rec := newSubmittedSession(t)
	require.True(t, s.Celebrate())
	ft := rec.Last()

	for i := 1; i <= config.TotalCandles; i++ {
		ft.Tick()
		want := i
		require.Eventually(t, func() bool { return s.Snapshot().Candles == want }, waitFor, pollEvery)
	}

	require.Eventually(t, func() bool { return ft.stopped.Load() }, waitFor, pollEvery)
	snap := s.Snapshot()
	assert.False(t, snap.TimerRunning)
	assert.True(t, snap.Celebrating, "Celebration flag stays set after the timer stops")
}

func TestCelebrate_ManualClicksInterleaveWithTimer(t *testing.T) {
	s, rec := newSubmittedSession(t)
	require.True(t, s.Celebrate())
	ft := rec.Last()

	ft.Tick()
	require.Eventually(t, func() bool { return s.Snapshot().Candles == 1 }, waitFor, pollEvery)

	// The user wins index 1 before the next tick.
	assert.False(t, s.AdvanceCandle(0))
	require.True(t, s.AdvanceCandle(1))

	ft.Tick()
	require.Eventually(t, func() bool { return s.Snapshot().Candles == 3 }, waitFor, pollEvery)
	assert.True(t, s.Snapshot().TimerRunning)
}

func TestCelebrate_StopsOnTickWhenAlreadyComplete(t *testing.T) {
	s, rec := newSubmittedSession(t)
	for i := 0; i < config.TotalCandles; i++ {
		require.True(t, s.AdvanceCandle(i))
	}

	require.True(t, s.Celebrate())
	ft := rec.Last()
	ft.Tick()

	require.Eventually(t, func() bool { return ft.stopped.Load() }, waitFor, pollEvery)
	assert.Equal(t, config.TotalCandles, s.Snapshot().Candles)
	assert.False(t, s.Snapshot().TimerRunning)
}

// Scenario: all balloons popped, four candles lit by hand, then celebrate.
// One tick lights the fifth candle and the timer stops.
func TestScenario_FourCandlesThenCelebrate(t *testing.T) {
	s, rec := newSubmittedSession(t)

	for i := 0; i < 5; i++ {
		require.True(t, s.AdvanceBalloon(i))
	}
	for i := 0; i < 4; i++ {
		require.True(t, s.AdvanceCandle(i))
	}

	var stopped atomic.Bool
	s.Subscribe(func(e engine.Event, _ engine.Snapshot) {
		if e == engine.EventTimerStopped {
			stopped.Store(true)
		}
	})

	require.True(t, s.Celebrate())
	rec.Last().Tick()

	require.Eventually(t, stopped.Load, waitFor, pollEvery)
	snap := s.Snapshot()
	assert.Equal(t, 5, snap.Candles)
	assert.True(t, snap.ConfettiShown)
	assert.False(t, snap.TimerRunning)
	require.Eventually(t, func() bool { return rec.Last().stopped.Load() }, waitFor, pollEvery)
}

func TestClose_ReleasesRunningTimer(t *testing.T) {
	rec := &TickerRecorder{}
	s := engine.NewSession(config.DefaultSettings(), rec.New)
	require.True(t, s.Submit("Ada", "1990-12-10"))
	require.True(t, s.Celebrate())

	s.Close()

	assert.True(t, rec.Last().stopped.Load(), "Close must wait for the timer to be stopped")
	assert.False(t, s.Snapshot().TimerRunning)
	assert.False(t, s.Celebrate())

	// Idempotent.
	s.Close()
}

// -----------------------------------------------------------------------------
// Derived Rendering State
// -----------------------------------------------------------------------------

func TestSnapshot_CandleShownLooksAheadWhileCelebrating(t *testing.T) {
	snap := engine.Snapshot{Candles: 2, TotalCandles: 5}

	assert.True(t, snap.CandleShown(1))
	assert.False(t, snap.CandleShown(2))
	assert.Zero(t, snap.CandleRevealDelay(3))

	snap.Celebrating = true
	assert.True(t, snap.CandleShown(2), "The candle the next tick lights is drawn early")
	assert.False(t, snap.CandleShown(3))
	assert.False(t, snap.CandleLit(2), "Eligibility is unaffected by the celebration flag")
	assert.Equal(t, 1500*time.Millisecond, snap.CandleRevealDelay(3))
}

// -----------------------------------------------------------------------------
// Viewport
// -----------------------------------------------------------------------------

func TestResize_FeedsConfettiSpec(t *testing.T) {
	s, _ := newSession(t)

	spec := s.ConfettiSpec()
	assert.Zero(t, spec.Width)
	assert.Zero(t, spec.Height)

	s.Resize(1280, 800)

	spec = s.ConfettiSpec()
	assert.Equal(t, float32(1280), spec.Width)
	assert.Equal(t, float32(800), spec.Height)
	assert.False(t, spec.Recycle)
	assert.Equal(t, 500, spec.Pieces)
	assert.Equal(t, config.ConfettiColors, spec.Colors)
}

func TestResize_SameSizeIsNotAnEvent(t *testing.T) {
	s, _ := newSession(t)

	var resized int
	s.Subscribe(func(e engine.Event, _ engine.Snapshot) {
		if e == engine.EventResized {
			resized++
		}
	})

	s.Resize(640, 480)
	s.Resize(640, 480)
	s.Resize(800, 600)
	assert.Equal(t, 2, resized)
}
