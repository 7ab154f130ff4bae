package quiz

import (
	"sync"
	"time"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
)

// DefaultTickResolution is how often a running timer folds elapsed time.
const DefaultTickResolution = time.Second

// Timer tracks the time spent on the current question.
//
// While running, a repeating tick folds the elapsed time into the running total
// and reports it to the optional observer. Stop folds the partial interval
// since the last tick, so the result does not depend on the tick resolution.
type Timer struct {
	mu         sync.Mutex
	clock      clock.Clock
	resolution time.Duration
	onTick     func(elapsed time.Duration)

	running bool
	total   time.Duration // folded total
	since   time.Time     // last fold while running
	tick    clock.Timer
	gen     uint64 // invalidates ticks armed before the last Stop
}

// NewTimer creates a stopped timer. onTick may be nil.
func NewTimer(clk clock.Clock, resolution time.Duration, onTick func(time.Duration)) *Timer {
	if resolution <= 0 {
		resolution = DefaultTickResolution
	}

	return &Timer{
		clock:      clk,
		resolution: resolution,
		onTick:     onTick,
	}
}

// Start begins accrual, or resumes it after Stop without a Reset.
// Calling Start on a running timer does nothing.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	t.running = true
	t.since = t.clock.Now()
	t.gen++
	t.armLocked(t.gen)
}

// Stop freezes accrual and returns the running total. It is idempotent.
func (t *Timer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return t.total
	}

	t.foldLocked()
	t.running = false
	t.gen++
	if t.tick != nil {
		t.tick.Stop()
		t.tick = nil
	}

	return t.total
}

// Reset zeroes the running total. A running timer keeps running from zero.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = 0
	if t.running {
		t.since = t.clock.Now()
	}
}

// Elapsed returns the running total without side effects.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return t.total
	}
	return t.total + t.clock.Now().Sub(t.since)
}

// ElapsedMillis returns Elapsed in whole milliseconds.
func (t *Timer) ElapsedMillis() int64 {
	return t.Elapsed().Milliseconds()
}

// Running reports whether the timer is accruing.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) armLocked(gen uint64) {
	t.tick = t.clock.AfterFunc(t.resolution, func() { t.fire(gen) })
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if !t.running || gen != t.gen {
		t.mu.Unlock()
		return
	}

	t.foldLocked()
	elapsed := t.total
	t.armLocked(gen)
	onTick := t.onTick
	t.mu.Unlock()

	if onTick != nil {
		onTick(elapsed)
	}
}

func (t *Timer) foldLocked() {
	now := t.clock.Now()
	t.total += now.Sub(t.since)
	t.since = now
}
