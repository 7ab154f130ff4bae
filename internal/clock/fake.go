package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock for tests.
//
// Advance runs due AfterFunc callbacks synchronously on the calling goroutine, in
// deadline order, including callbacks scheduled by other callbacks inside the
// advanced window. Tickers buffer at most one pending tick, like time.Ticker.
type Fake struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     time.Time
	seq     int64
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	clock  *Fake
	seq    int64
	at     time.Time
	period time.Duration
	fn     func()
	ch     chan time.Time
	done   bool
}

// NewFake creates a Fake clock starting at the given instant.
func NewFake(start time.Time) *Fake {
	f := &Fake{now: start}
	f.cond = sync.NewCond(&f.mu)
	return f
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	w := f.addLocked(d, 0)
	w.fn = fn
	return w
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	w := f.addLocked(d, d)
	w.ch = make(chan time.Time, 1)
	return &fakeTicker{w: w}
}

func (f *Fake) addLocked(d, period time.Duration) *fakeWaiter {
	f.seq++
	w := &fakeWaiter{
		clock:  f,
		seq:    f.seq,
		at:     f.now.Add(d),
		period: period,
	}
	f.waiters = append(f.waiters, w)
	f.cond.Broadcast()
	return w
}

// Advance moves the clock forward by d, firing everything that becomes due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		w := f.nextDueLocked(target)
		if w == nil {
			f.now = target
			f.mu.Unlock()
			return
		}

		f.now = w.at
		if w.ch != nil {
			select {
			case w.ch <- w.at:
			default:
			}
			w.at = w.at.Add(w.period)
			f.mu.Unlock()
			continue
		}

		w.done = true
		f.removeLocked(w)
		fn := w.fn
		f.mu.Unlock()

		fn()
	}
}

// BlockUntil waits until at least n timers or tickers are registered.
func (f *Fake) BlockUntil(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.waiters) < n {
		f.cond.Wait()
	}
}

// Waiters reports how many timers and tickers are currently registered.
func (f *Fake) Waiters() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiters)
}

func (f *Fake) nextDueLocked(target time.Time) *fakeWaiter {
	var next *fakeWaiter
	for _, w := range f.waiters {
		if w.at.After(target) {
			continue
		}
		if next == nil || w.at.Before(next.at) || (w.at.Equal(next.at) && w.seq < next.seq) {
			next = w
		}
	}
	return next
}

func (f *Fake) removeLocked(w *fakeWaiter) {
	for i, cur := range f.waiters {
		if cur == w {
			f.waiters = append(f.waiters[:i], f.waiters[i+1:]...)
			f.cond.Broadcast()
			return
		}
	}
}

// Stop implements Timer. It reports whether the call prevented the callback.
func (w *fakeWaiter) Stop() bool {
	w.clock.mu.Lock()
	defer w.clock.mu.Unlock()

	if w.done {
		return false
	}
	w.done = true
	w.clock.removeLocked(w)
	return true
}

type fakeTicker struct {
	w *fakeWaiter
}

func (t *fakeTicker) C() <-chan time.Time { return t.w.ch }

func (t *fakeTicker) Stop() { t.w.Stop() }
