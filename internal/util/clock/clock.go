package clock

import (
	"sync"
	"time"
)

// Clock abstracts time source for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Default is the global clock. Overwrite in tests if needed.
var Default Clock = systemClock{}

// Now returns current time from the default clock.
func Now() time.Time { return Default.Now() }

// Set replaces the default clock and returns a restore function.
func Set(c Clock) (restore func()) {
	prev := Default
	Default = c
	return func() { Default = prev }
}

// UTCNow returns the current time in UTC via the default clock.
func UTCNow() time.Time { return Now().UTC() }

// NowUTCFormatted formats current time in UTC with the given layout.
func NowUTCFormatted(layout string) string { return UTCNow().Format(layout) }

// Fake is a manually advanced clock.
type Fake struct {
	mu sync.Mutex
	t  time.Time
}

func NewFake(t time.Time) *Fake { return &Fake{t: t} }

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}
