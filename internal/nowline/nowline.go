// Package nowline derives the current-time marker position from an
// injected clock that is polled on a coarse interval.
package nowline

import (
	"time"

	"github.com/javiermolinar/rota/internal/timeaxis"
)

// DefaultInterval is how often the marker is refreshed.
const DefaultInterval = time.Minute

// Clock is a source of wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// Indicator caches the marker position between refreshes. It is independent
// of any drag in progress.
type Indicator struct {
	clock    Clock
	scale    timeaxis.Scale
	interval time.Duration
	hour     float64
}

// New creates an indicator and takes an initial reading.
func New(clock Clock, scale timeaxis.Scale, interval time.Duration) *Indicator {
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	ind := &Indicator{clock: clock, scale: scale, interval: interval}
	ind.Refresh()
	return ind
}

// Refresh re-reads the clock.
func (ind *Indicator) Refresh() {
	ind.hour = timeaxis.FromTime(ind.clock.Now())
}

// Hour returns the fractional hour of the last reading.
func (ind *Indicator) Hour() float64 {
	return ind.hour
}

// Offset returns the marker position in pixels.
func (ind *Indicator) Offset() float64 {
	return ind.scale.HourToPixels(ind.hour)
}

// Interval returns the refresh period.
func (ind *Indicator) Interval() time.Duration {
	return ind.interval
}

// Label renders the last reading as "HH:MM".
func (ind *Indicator) Label() string {
	return timeaxis.FormatHour(ind.hour)
}
