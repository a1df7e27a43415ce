package timing

import (
	"log/slog"
	"time"
)

const (
	busyWaitThreshold = 2 * time.Millisecond
	maxLag            = 5 * time.Millisecond
	maxDrift          = 10 * time.Millisecond
)

// AdaptiveLimiter paces frames at 60Hz with drift compensation. It sleeps
// for most of the wait and busy-waits the last stretch for accuracy.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	startTime       time.Time
	frameCounter    int64
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	now := time.Now()
	return &AdaptiveLimiter{
		targetFrameTime: FrameDuration(),
		nextFrameTime:   now,
		startTime:       now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	wait := a.nextFrameTime.Sub(now)

	switch {
	case wait >= busyWaitThreshold:
		time.Sleep(wait - time.Millisecond)
		spinUntil(a.nextFrameTime)
	case wait > 0:
		spinUntil(a.nextFrameTime)
	case wait < -maxLag:
		// Too far behind to catch up, e.g. after a pause: start over from now.
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++

	if a.frameCounter%TargetFPS == 0 {
		a.correctDrift()
	}
}

func (a *AdaptiveLimiter) correctDrift() {
	now := time.Now()
	drift := now.Sub(a.nextFrameTime)
	if drift.Abs() <= maxDrift {
		return
	}

	a.nextFrameTime = a.nextFrameTime.Add(drift / 10)
	slog.Debug("Frame timing drift correction",
		"drift_ms", drift.Milliseconds(),
		"fps", float64(a.frameCounter)/now.Sub(a.startTime).Seconds())
}

func (a *AdaptiveLimiter) Reset() {
	now := time.Now()
	a.nextFrameTime = now
	a.startTime = now
	a.frameCounter = 0
}

func spinUntil(deadline time.Time) {
	for time.Now().Before(deadline) {
	}
}
