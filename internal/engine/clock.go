package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It stamps exported calendars.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ticker is the repeating timer source behind celebrate().
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc starts a Ticker firing every period.
type TickerFunc func(period time.Duration) Ticker

// realTicker adapts *time.Ticker to the Ticker interface.
type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker is the production TickerFunc.
func NewRealTicker(period time.Duration) Ticker {
	return realTicker{t: time.NewTicker(period)}
}
