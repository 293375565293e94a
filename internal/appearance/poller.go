package appearance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/models"
	"github.com/rs/zerolog"
)

// Poller errors.
var (
	ErrPollerAlreadyRunning = errors.New("poller already running")
)

// Config contains poller configuration.
type Config struct {
	// Interval is how often the poller re-reads the OS appearance.
	// Default: 2 seconds.
	Interval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Interval: 2 * time.Second,
	}
}

// TickFunc receives the resolved mode on every poll cycle.
type TickFunc func(ctx context.Context, mode models.Mode)

// Stats contains poller statistics.
type Stats struct {
	// Running indicates if the poll loop is active.
	Running bool

	// StartedAt is when the poller was started.
	StartedAt *time.Time

	// Ticks is the number of poll cycles completed.
	Ticks int64

	// LastMode is the mode resolved by the most recent tick.
	LastMode models.Mode

	// LastTickAt is when the most recent tick completed.
	LastTickAt *time.Time
}

// Poller re-resolves the OS appearance on a fixed interval and hands
// each result to a callback. Deduplication is the callback's concern;
// the poller reports every cycle.
type Poller struct {
	config   Config
	resolver *Resolver
	onTick   TickFunc
	logger   zerolog.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pollNow chan struct{}

	statsMu sync.RWMutex
	stats   Stats
}

// NewPoller creates a Poller. The callback runs on the poller goroutine.
func NewPoller(config Config, resolver *Resolver, onTick TickFunc) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}

	return &Poller{
		config:   config,
		resolver: resolver,
		onTick:   onTick,
		logger:   logging.Component("poller"),
		pollNow:  make(chan struct{}, 1),
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrPollerAlreadyRunning
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running = true

	now := time.Now().UTC()
	p.statsMu.Lock()
	p.stats.Running = true
	p.stats.StartedAt = &now
	p.statsMu.Unlock()

	p.logger.Info().Dur("interval", p.config.Interval).Msg("appearance poller starting")

	p.wg.Add(1)
	go p.runLoop()

	return nil
}

// Stop halts the polling loop and waits for an in-flight tick to finish.
// Stopping a poller that is not running is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}

	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()

	p.statsMu.Lock()
	p.stats.Running = false
	p.statsMu.Unlock()

	p.logger.Info().Msg("appearance poller stopped")
}

// PollNow triggers an immediate poll cycle without waiting for the next
// tick. No-op when the poller is not running or a poll is already
// pending.
func (p *Poller) PollNow() {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	if !running {
		return
	}

	select {
	case p.pollNow <- struct{}{}:
	default:
	}
}

// Running reports whether the poll loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Stats returns current poller statistics.
func (p *Poller) Stats() Stats {
	p.statsMu.RLock()
	defer p.statsMu.RUnlock()
	return p.stats
}

// runLoop is the main polling loop.
func (p *Poller) runLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return

		case <-p.pollNow:
			p.tick()

		case <-ticker.C:
			p.tick()
		}
	}
}

// tick resolves the appearance once and invokes the callback.
func (p *Poller) tick() {
	mode := p.resolver.Resolve(p.ctx)

	now := time.Now().UTC()
	p.statsMu.Lock()
	p.stats.Ticks++
	p.stats.LastMode = mode
	p.stats.LastTickAt = &now
	p.statsMu.Unlock()

	if p.onTick != nil {
		p.onTick(p.ctx, mode)
	}
}
