// Package dashboard polls a health API server and renders the latest report
// as text.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/NomadCrew/trcs2-health/types"
	"go.uber.org/zap"
)

// DefaultInterval is the poll interval used when none is given.
const DefaultInterval = 30 * time.Second

// Fetcher retrieves one health report.
type Fetcher func(ctx context.Context) (*types.HealthCheckResponse, error)

// State is what the dashboard knows about the server. Data survives a failed
// fetch so the last good report stays visible next to the error.
type State struct {
	Loading     bool
	Err         string
	Data        *types.HealthCheckResponse
	LastUpdated time.Time
}

// Poller fetches a health report immediately on Start and then once per
// interval until Stop. At most one fetch is in flight; ticks that arrive
// while a fetch is running are skipped.
type Poller struct {
	fetch     Fetcher
	interval  time.Duration
	scheduler Scheduler
	now       func() time.Time
	onChange  func(State)
	log       *zap.SugaredLogger

	mu      sync.Mutex
	state   State
	running bool
	stopped bool

	inFlight atomic.Bool
	skipped  atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithScheduler(s Scheduler) PollerOption {
	return func(p *Poller) {
		p.scheduler = s
	}
}

func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) {
		p.now = now
	}
}

// OnChange registers a callback that receives a copy of the state after
// every change. It runs on the poller's goroutines and must not block.
func OnChange(fn func(State)) PollerOption {
	return func(p *Poller) {
		p.onChange = fn
	}
}

// NewPoller creates a Poller in the INITIAL state (loading, no data).
func NewPoller(fetch Fetcher, opts ...PollerOption) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		fetch:     fetch,
		interval:  DefaultInterval,
		scheduler: TimeScheduler{},
		now:       time.Now,
		log:       logger.GetLogger().Named("dashboard"),
		state:     State{Loading: true},
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start performs the first fetch and starts the schedule. Calling Start more
// than once, or after Stop, does nothing.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running || p.stopped {
		p.log.Warn("Poller already started or stopped")
		return
	}
	p.running = true

	p.log.Infow("Starting health poller", "interval", p.interval)

	ticker := p.scheduler.NewTicker(p.interval)
	p.tryFetch()

	p.wg.Add(1)
	go p.loop(ticker)
}

func (p *Poller) loop(ticker Ticker) {
	defer p.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C():
			p.tryFetch()
		}
	}
}

// tryFetch starts a fetch unless one is already running.
func (p *Poller) tryFetch() {
	if p.ctx.Err() != nil {
		return
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		n := p.skipped.Add(1)
		p.log.Debugw("Skipping tick, previous fetch still in flight", "skipped", n)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)
		p.runFetch()
	}()
}

func (p *Poller) runFetch() {
	p.update(func(s *State) {
		s.Loading = true
	})

	data, err := p.fetch(p.ctx)

	if p.ctx.Err() != nil {
		// Stopped mid-fetch; the result is discarded and nobody is notified.
		p.mu.Lock()
		p.state.Loading = false
		p.mu.Unlock()
		return
	}

	p.update(func(s *State) {
		s.Loading = false
		if err != nil {
			s.Err = errorMessage(err)
			return
		}
		s.Data = data
		s.Err = ""
		s.LastUpdated = p.now()
	})

	if err != nil {
		p.log.Warnw("Health fetch failed", "error", err)
	}
}

func (p *Poller) update(mutate func(*State)) {
	p.mu.Lock()
	mutate(&p.state)
	snapshot := p.state
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(snapshot)
	}
}

// Stop cancels the schedule and any in-flight fetch and waits for them to
// finish. No fetch or state change happens after Stop returns. Safe to call
// more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.running = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.log.Info("Health poller stopped")
}

// State returns a copy of the current state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Skipped returns how many ticks were dropped because a fetch was in flight.
func (p *Poller) Skipped() int64 {
	return p.skipped.Load()
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Failed to fetch health data"
}
