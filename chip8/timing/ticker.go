package timing

import "time"

// TickerLimiter paces frames off a time.Ticker. Missed ticks are dropped by
// the ticker, so a slow frame is never followed by a burst of fast ones.
type TickerLimiter struct {
	ticker *time.Ticker
}

func NewTickerLimiter() *TickerLimiter {
	return &TickerLimiter{ticker: time.NewTicker(FrameDuration())}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(FrameDuration())
}

// Stop releases the ticker. The limiter must not be used afterwards.
func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}

// New returns the limiter with the given name: "adaptive", "ticker" or "none".
func New(name string) (Limiter, bool) {
	switch name {
	case "adaptive", "":
		return NewAdaptiveLimiter(), true
	case "ticker":
		return NewTickerLimiter(), true
	case "none":
		return NewNoOpLimiter(), true
	default:
		return nil, false
	}
}
