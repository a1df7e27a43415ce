package memory

import (
	"errors"
	"time"
)

// Tick is the period of one timer unit, timers count down at 60Hz.
const Tick = time.Second / 60

// MinSoundDuration is the smallest value the sound timer accepts.
const MinSoundDuration = 2

var ErrSoundTooShort = errors.New("sound timer value below minimum duration")

// DelayTimer counts down at 60Hz of wall-clock time. It is never ticked: the
// current value is projected from the stored value and the instant it was stored.
type DelayTimer struct {
	value uint8
	ref   time.Time
	now   func() time.Time
}

// NewDelayTimer returns a delay timer reading time from now, or time.Now if nil.
func NewDelayTimer(now func() time.Time) *DelayTimer {
	if now == nil {
		now = time.Now
	}
	return &DelayTimer{now: now, ref: now()}
}

// Store sets the timer and restarts its countdown.
func (d *DelayTimer) Store(v uint8) {
	d.value = v
	d.ref = d.now()
}

// Load returns the current value of the timer.
func (d *DelayTimer) Load() uint8 {
	d.value, d.ref = project(d.value, d.ref, d.now())
	return d.value
}

// Peek returns the current value of the timer without moving its reference,
// so partial ticks are kept.
func (d *DelayTimer) Peek() uint8 {
	value, _ := project(d.value, d.ref, d.now())
	return value
}

// Reset zeroes the timer.
func (d *DelayTimer) Reset() {
	d.Store(0)
}

// project computes the value of a timer holding value since ref, as seen at now.
// The reference only moves once at least one whole tick has elapsed.
func project(value uint8, ref, now time.Time) (uint8, time.Time) {
	elapsed := now.Sub(ref) / Tick
	if elapsed < 1 {
		return value, ref
	}
	if elapsed >= time.Duration(value) {
		return 0, now
	}
	return value - uint8(elapsed), now
}

// SoundTimer counts down once per executed instruction. The buzzer sounds while it is non-zero.
type SoundTimer struct {
	value uint8
}

// Store sets the timer. Values under MinSoundDuration are rejected.
func (s *SoundTimer) Store(v uint8) error {
	if v < MinSoundDuration {
		return ErrSoundTooShort
	}
	s.value = v
	return nil
}

// Decrease counts down by one, stopping at zero.
func (s *SoundTimer) Decrease() {
	if s.value > 0 {
		s.value--
	}
}

func (s *SoundTimer) Value() uint8 {
	return s.value
}

// Active reports whether the buzzer should sound.
func (s *SoundTimer) Active() bool {
	return s.value > 0
}

func (s *SoundTimer) Reset() {
	s.value = 0
}
