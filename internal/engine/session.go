package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-birthday-wish/internal/config"
)

// Event names the transition that produced a Snapshot.
type Event int

const (
	EventSubmitted Event = iota
	EventCandleLit
	EventBalloonPopped
	EventCelebrateStarted
	EventTimerStopped
	EventConfettiShown
	EventResized
)

var eventNames = map[Event]string{
	EventSubmitted:        "submitted",
	EventCandleLit:        "candle_lit",
	EventBalloonPopped:    "balloon_popped",
	EventCelebrateStarted: "celebrate_started",
	EventTimerStopped:     "timer_stopped",
	EventConfettiShown:    "confetti_shown",
	EventResized:          "resized",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Listener observes session transitions. It runs outside the session lock,
// on whichever goroutine caused the change (UI callback or timer).
type Listener func(Event, Snapshot)

// BurstSpec parameterizes the confetti renderer.
type BurstSpec struct {
	Width   float32
	Height  float32
	Recycle bool
	Pieces  int
	Colors  []string
}

// Session is the interaction state machine behind one birthday card.
// All mutations are serialized; the celebrate timer runs on its own goroutine.
type Session struct {
	mu        sync.Mutex
	state     Snapshot
	settings  config.Settings
	newTicker TickerFunc
	listeners []Listener

	stopTimer chan struct{}
	wg        sync.WaitGroup
	closed    bool
	log       *slog.Logger
}

// NewSession creates a session in the form phase.
// A nil TickerFunc selects NewRealTicker.
func NewSession(settings config.Settings, newTicker TickerFunc) *Session {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Session{
		state: Snapshot{
			Phase:         PhaseForm,
			TotalCandles:  settings.TotalCandles,
			TotalBalloons: settings.TotalBalloons,
		},
		settings:  settings,
		newTicker: newTicker,
		log:       slog.With(config.LogKeyComponent, config.CompEngine),
	}
}

// Subscribe registers a listener for every subsequent transition.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settings returns the settings the session was built with.
func (s *Session) Settings() config.Settings {
	return s.settings
}

// Submit accepts the intake form. It is a silent no-op (returns false) when
// either field is empty, the birthday is not a date, or the form was already
// submitted.
func (s *Session) Submit(name, birthday string) bool {
	s.mu.Lock()
	if s.state.Phase != PhaseForm || s.closed {
		s.mu.Unlock()
		return false
	}
	if name == "" || birthday == "" {
		s.mu.Unlock()
		s.log.Debug(config.MsgSubmitRejected)
		return false
	}
	date, err := time.Parse(config.DateFormatInput, birthday)
	if err != nil {
		s.mu.Unlock()
		s.log.Debug(config.MsgSubmitRejected, config.LogKeyValue, birthday, config.LogKeyError, err)
		return false
	}

	s.state.Phase = PhaseCelebrating
	s.state.Input = Input{Name: name, Birthday: date}
	snap := s.state
	s.mu.Unlock()

	s.log.Info(config.MsgSubmitted, config.LogKeyName, name, config.LogKeyDOB, birthday)
	s.notify([]Event{EventSubmitted}, snap)
	return true
}

// AdvanceCandle lights the candle at index if it is the next unlit one.
func (s *Session) AdvanceCandle(index int) bool {
	s.mu.Lock()
	if s.state.Phase != PhaseCelebrating || index != s.state.Candles || s.state.Candles >= s.state.TotalCandles {
		expected := s.state.Candles
		s.mu.Unlock()
		s.log.Debug(config.MsgAdvanceIgnored, config.LogKeyIndex, index, config.LogKeyExpected, expected)
		return false
	}
	s.state.Candles++
	events := []Event{EventCandleLit}
	if s.watchCompletionLocked() {
		events = append(events, EventConfettiShown)
	}
	snap := s.state
	s.mu.Unlock()

	s.log.Debug(config.MsgCandleLit, config.LogKeyCandles, snap.Candles)
	s.notify(events, snap)
	return true
}

// AdvanceBalloon pops the balloon at index if it is the next unpopped one.
func (s *Session) AdvanceBalloon(index int) bool {
	s.mu.Lock()
	if s.state.Phase != PhaseCelebrating || index != s.state.Balloons || s.state.Balloons >= s.state.TotalBalloons {
		expected := s.state.Balloons
		s.mu.Unlock()
		s.log.Debug(config.MsgAdvanceIgnored, config.LogKeyIndex, index, config.LogKeyExpected, expected)
		return false
	}
	s.state.Balloons++
	events := []Event{EventBalloonPopped}
	if s.watchCompletionLocked() {
		events = append(events, EventConfettiShown)
	}
	snap := s.state
	s.mu.Unlock()

	s.log.Debug(config.MsgBalloonPopped, config.LogKeyBalloons, snap.Balloons)
	s.notify(events, snap)
	return true
}

// Celebrate raises the confetti flag at once and starts lighting the
// remaining candles on a timer. Only the first call has any effect.
func (s *Session) Celebrate() bool {
	s.mu.Lock()
	if s.state.Phase != PhaseCelebrating || s.state.Celebrating || s.closed {
		s.mu.Unlock()
		s.log.Debug(config.MsgCelebrateIgnore)
		return false
	}
	s.state.Celebrating = true
	events := []Event{EventCelebrateStarted}
	if s.showConfettiLocked(config.TriggerCelebrate) {
		events = append(events, EventConfettiShown)
	}

	t := s.newTicker(s.settings.TickPeriod)
	s.stopTimer = make(chan struct{})
	s.state.TimerRunning = true
	s.wg.Add(1)
	go s.runTimer(t, s.stopTimer)

	snap := s.state
	s.mu.Unlock()

	s.log.Info(config.MsgCelebrateStart, config.LogKeyPeriod, s.settings.TickPeriod)
	s.notify(events, snap)
	return true
}

// Resize records the confetti surface size.
func (s *Session) Resize(width, height float32) {
	s.mu.Lock()
	vp := Viewport{Width: width, Height: height}
	if s.state.Viewport == vp {
		s.mu.Unlock()
		return
	}
	s.state.Viewport = vp
	snap := s.state
	s.mu.Unlock()

	s.log.Debug(config.MsgViewport, config.LogKeyWidth, width, config.LogKeyHeight, height)
	s.notify([]Event{EventResized}, snap)
}

// ConfettiSpec returns the renderer parameters for the current viewport.
func (s *Session) ConfettiSpec() BurstSpec {
	s.mu.Lock()
	vp := s.state.Viewport
	s.mu.Unlock()

	colors := make([]string, len(s.settings.Palette))
	copy(colors, s.settings.Palette)
	return BurstSpec{
		Width:   vp.Width,
		Height:  vp.Height,
		Recycle: false,
		Pieces:  s.settings.ConfettiPieces,
		Colors:  colors,
	}
}

// Close stops the celebrate timer, if any, and waits for it to exit.
// Further transitions that would start work are ignored. Close must not be
// called from a Listener.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.stopTimer != nil {
		close(s.stopTimer)
		s.stopTimer = nil
	}
	s.state.TimerRunning = false
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Debug(config.MsgSessionClosed)
}

// runTimer feeds ticks into the session until the candles are all lit or
// the session closes.
func (s *Session) runTimer(t Ticker, stop <-chan struct{}) {
	defer s.wg.Done()
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
			if !s.tick() {
				return
			}
		}
	}
}

// tick lights one candle and reports whether the timer should keep running.
func (s *Session) tick() bool {
	s.mu.Lock()
	if s.closed || !s.state.TimerRunning {
		s.mu.Unlock()
		return false
	}

	var events []Event
	if s.state.Candles < s.state.TotalCandles {
		s.state.Candles++
		events = append(events, EventCandleLit)
		if s.watchCompletionLocked() {
			events = append(events, EventConfettiShown)
		}
	}

	running := s.state.Candles < s.state.TotalCandles
	if !running {
		s.state.TimerRunning = false
		s.stopTimer = nil
		events = append(events, EventTimerStopped)
	}
	snap := s.state
	s.mu.Unlock()

	if !running {
		s.log.Info(config.MsgTimerStopped, config.LogKeyCandles, snap.Candles)
	}
	s.notify(events, snap)
	return running
}

// watchCompletionLocked raises the confetti flag once both sequences are done.
func (s *Session) watchCompletionLocked() bool {
	if !s.state.Complete() {
		return false
	}
	return s.showConfettiLocked(config.TriggerCompletion)
}

// showConfettiLocked sets the one-shot confetti flag and reports whether it flipped.
func (s *Session) showConfettiLocked(trigger string) bool {
	if s.state.ConfettiShown {
		return false
	}
	s.state.ConfettiShown = true
	s.log.Info(config.MsgConfettiShown, config.LogKeyTrigger, trigger)
	return true
}

func (s *Session) notify(events []Event, snap Snapshot) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, e := range events {
		for _, l := range listeners {
			l(e, snap)
		}
	}
}
