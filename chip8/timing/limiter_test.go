package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, FrameDuration())
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()

	start := time.Now()
	for range 100 {
		l.WaitForNextFrame()
	}
	l.Reset()

	assert.Less(t, time.Since(start), FrameDuration())
}

func TestAdaptiveLimiter(t *testing.T) {
	l := NewAdaptiveLimiter()

	start := time.Now()
	for range 6 {
		l.WaitForNextFrame()
	}
	elapsed := time.Since(start)

	// The first frame is due immediately, the next five one frame apart.
	assert.GreaterOrEqual(t, elapsed, 5*FrameDuration()-time.Millisecond)
	assert.Less(t, elapsed, 20*FrameDuration())
}

func TestAdaptiveLimiterResetsWhenBehind(t *testing.T) {
	l := NewAdaptiveLimiter()
	l.WaitForNextFrame()

	time.Sleep(3 * FrameDuration())

	start := time.Now()
	l.WaitForNextFrame()
	assert.Less(t, time.Since(start), FrameDuration(), "a late frame does not wait")
}

func TestTickerLimiter(t *testing.T) {
	l := NewTickerLimiter()
	defer l.Stop()

	start := time.Now()
	l.WaitForNextFrame()
	l.WaitForNextFrame()
	assert.GreaterOrEqual(t, time.Since(start), FrameDuration())

	l.Reset()
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "adaptive", "ticker", "none"} {
		l, ok := New(name)
		assert.True(t, ok, name)
		assert.NotNil(t, l, name)
		if tl, isTicker := l.(*TickerLimiter); isTicker {
			tl.Stop()
		}
	}

	_, ok := New("vsync")
	assert.False(t, ok)
}
