package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
)

var epoch = time.Date(2024, 4, 25, 9, 0, 0, 0, time.UTC)

func TestTimer(t *testing.T) {
	t.Run("stop returns the accrued time and is idempotent", func(t *testing.T) {
		c := clock.NewFake(epoch)
		tm := NewTimer(c, time.Second, nil)

		tm.Start()
		c.Advance(2500 * time.Millisecond)

		assert.Equal(t, 2500*time.Millisecond, tm.Elapsed())
		assert.Equal(t, 2500*time.Millisecond, tm.Stop())
		assert.Equal(t, 2500*time.Millisecond, tm.Stop())

		c.Advance(time.Minute)
		assert.Equal(t, 2500*time.Millisecond, tm.Elapsed())
		assert.False(t, tm.Running())
		assert.Zero(t, c.Waiters())
	})

	t.Run("reset after stop yields zero", func(t *testing.T) {
		c := clock.NewFake(epoch)
		tm := NewTimer(c, time.Second, nil)

		tm.Start()
		c.Advance(3 * time.Second)
		tm.Stop()
		tm.Reset()

		assert.Zero(t, tm.Elapsed())
		assert.Zero(t, tm.ElapsedMillis())
	})

	t.Run("start resumes without reset", func(t *testing.T) {
		c := clock.NewFake(epoch)
		tm := NewTimer(c, time.Second, nil)

		tm.Start()
		c.Advance(time.Second)
		tm.Stop()

		c.Advance(5 * time.Second)

		tm.Start()
		c.Advance(time.Second)

		assert.Equal(t, 2*time.Second, tm.Elapsed())
	})

	t.Run("start on a running timer does nothing", func(t *testing.T) {
		c := clock.NewFake(epoch)
		tm := NewTimer(c, time.Second, nil)

		tm.Start()
		c.Advance(700 * time.Millisecond)
		tm.Start()
		c.Advance(300 * time.Millisecond)

		assert.Equal(t, time.Second, tm.Elapsed())
		assert.Equal(t, 1, c.Waiters())
	})

	t.Run("reset while running restarts from now", func(t *testing.T) {
		c := clock.NewFake(epoch)
		tm := NewTimer(c, time.Second, nil)

		tm.Start()
		c.Advance(1500 * time.Millisecond)
		tm.Reset()
		c.Advance(400 * time.Millisecond)

		assert.Equal(t, 400*time.Millisecond, tm.Elapsed())
	})

	t.Run("ticks report the folded total", func(t *testing.T) {
		c := clock.NewFake(epoch)
		var ticks []time.Duration
		tm := NewTimer(c, time.Second, func(d time.Duration) { ticks = append(ticks, d) })

		tm.Start()
		c.Advance(3500 * time.Millisecond)
		tm.Stop()
		c.Advance(3 * time.Second)

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, ticks)
		assert.Equal(t, 3500*time.Millisecond, tm.Elapsed())
	})
}
