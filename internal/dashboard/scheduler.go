package dashboard

import "time"

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler creates the ticker that drives the poll loop.
type Scheduler interface {
	NewTicker(interval time.Duration) Ticker
}

// TimeScheduler is the Scheduler backed by time.Ticker.
type TimeScheduler struct{}

func (TimeScheduler) NewTicker(interval time.Duration) Ticker {
	return timeTicker{time.NewTicker(interval)}
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.t.C
}

func (t timeTicker) Stop() {
	t.t.Stop()
}
