// Package clock lifts the service's time source into an explicit
// dependency so expiry and timeout boundaries can be tested
// deterministically.  Production code uses Real; tests use Fake.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time.  Implementations must return UTC.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Real returns the wall clock.
func Real() Clock { return realClock{} }

// Fake is a manually-driven clock for tests.  Each call to Now returns
// the current fake time and then advances it by the configured step,
// which lets a test simulate work taking a fixed duration per
// observation.  The zero step freezes time until Advance is called.
type Fake struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFake returns a Fake pinned to start (normalized to UTC).
func NewFake(start time.Time) *Fake {
	return &Fake{now: start.UTC()}
}

// Now returns the fake time, then advances by the step.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.now
	f.now = f.now.Add(f.step)
	return n
}

// Advance moves the fake time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// SetStep sets the duration added after every Now observation.
func (f *Fake) SetStep(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = d
}
