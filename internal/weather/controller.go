package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/classy-weather/internal/metrics"
)

// DefaultPreferenceKey is the key under which the last location is stored.
const DefaultPreferenceKey = "location"

// Controller owns the FetchState for a single location input. Every fetch is
// tagged with a sequence number and only the latest one may merge its result.
// Network calls run on their own goroutines; no method blocks on them except
// Wait and Close.
type Controller struct {
	resolver Resolver
	prefs    Preferences
	key      string
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	state  FetchState
	seq    uint64
	closed bool

	// persistMu orders preference writes and lets Close wait out a write in progress.
	persistMu    sync.Mutex
	persistedSeq uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithPreferenceKey overrides DefaultPreferenceKey.
func WithPreferenceKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates a controller seeded with the persisted location. When
// that location is resolvable the initial fetch starts immediately; seeding is
// not written back to prefs.
func NewController(resolver Resolver, prefs Preferences, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		resolver: resolver,
		prefs:    prefs,
		key:      DefaultPreferenceKey,
		logger:   slog.Default(),
		ctx:      ctx,
		cancel:   cancel,
		state:    FetchState{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "controller")

	stored, ok, err := c.prefs.Get(ctx, c.key)
	switch {
	case err != nil:
		c.logger.Warn("could not read last location", "key", c.key, "error", err)
	case ok:
		c.state.Location = LocationQuery(stored)
	}

	if c.state.Location.Resolvable() {
		c.mu.Lock()
		token := c.beginLocked()
		loc := c.state.Location
		c.mu.Unlock()

		c.logger.Info("restoring last location", "location", string(loc))
		go c.fetch(token, loc)
	}

	return c
}

// SetLocation records new user input. A resolvable value that differs from the
// current one starts a fetch and is persisted as the last location. Anything
// shorter than MinQueryLength returns the controller to Idle without contacting
// a collaborator and without persisting.
func (c *Controller) SetLocation(text string) {
	loc := LocationQuery(text)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	prev := c.state.Location
	c.state.Location = loc

	if !loc.Resolvable() {
		// Invalidate anything still in flight.
		c.seq++
		c.state.Status = StatusIdle
		c.state.DisplayName = ""
		c.state.Forecast = nil
		c.state.Error = nil
		c.mu.Unlock()
		return
	}

	if loc == prev {
		c.mu.Unlock()
		return
	}

	token := c.beginLocked()
	c.mu.Unlock()

	go c.fetch(token, loc)
	c.persist(token, loc)
}

// Refresh re-resolves the current location without touching prefs. It returns
// false when the location is not resolvable or the controller is closed.
func (c *Controller) Refresh() bool {
	c.mu.Lock()
	if c.closed || !c.state.Location.Resolvable() {
		c.mu.Unlock()
		return false
	}
	loc := c.state.Location
	token := c.beginLocked()
	c.mu.Unlock()

	go c.fetch(token, loc)
	return true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Wait blocks until every fetch started so far has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close tears the controller down. Later calls are ignored, in-flight results
// are dropped and prefs are never written again. A controller closed while
// Loading ends up Idle. Outstanding requests are
// cancelled and Close waits for their goroutines to exit.
func (c *Controller) Close() {
	c.persistMu.Lock()
	c.mu.Lock()
	already := c.closed
	c.closed = true
	if c.state.Status == StatusLoading {
		// Whatever is in flight will never be merged.
		c.state.Status = StatusIdle
	}
	c.mu.Unlock()
	c.persistMu.Unlock()

	if already {
		return
	}

	c.cancel()
	c.wg.Wait()
}

// beginLocked issues a new token and enters Loading. c.mu must be held.
func (c *Controller) beginLocked() uint64 {
	c.seq++
	c.state.Status = StatusLoading
	c.wg.Add(1)
	return c.seq
}

func (c *Controller) persist(token uint64, loc LocationQuery) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed || token <= c.persistedSeq {
		return
	}

	if err := c.prefs.Set(c.ctx, c.key, string(loc)); err != nil {
		c.logger.Warn("could not persist last location", "location", string(loc), "error", err)
		return
	}
	c.persistedSeq = token
}

func (c *Controller) fetch(token uint64, loc LocationQuery) {
	defer c.wg.Done()

	logger := c.logger.With("seq", token, "fetch_id", uuid.NewString(), "location", string(loc))
	logger.Debug("fetch started")
	metrics.FetchesStarted.Inc()
	start := time.Now()

	var (
		place  ResolvedPlace
		series ForecastSeries
		err    error
	)

	// Leaving Loading must happen even if the resolver panics.
	defer func() {
		if r := recover(); r != nil {
			place, series = ResolvedPlace{}, nil
			err = fault("fetch", "resolution aborted", fmt.Errorf("panic: %v", r))
		}
		metrics.ResolveDuration.Observe(time.Since(start).Seconds())
		c.merge(token, place, series, err, logger)
	}()

	place, series, err = c.resolver.Resolve(c.ctx, loc)
}

func (c *Controller) merge(token uint64, place ResolvedPlace, series ForecastSeries, err error, logger *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || token != c.seq {
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeStale).Inc()
		logger.Debug("dropping superseded result", "latest", c.seq, "kind", KindSuperseded)
		return
	}

	if err != nil {
		// Keep the previous forecast on screen.
		c.state.Status = StatusError
		c.state.Error = errorInfo(err)
		metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeError).Inc()
		if IsKind(err, KindLocationNotFound) {
			logger.Warn("no place matches location", "error", err)
			return
		}
		logger.Error("fetch failed", "kind", c.state.Error.Kind, "error", err)
		return
	}

	c.state.Status = StatusReady
	c.state.DisplayName = place.DisplayName
	c.state.Forecast = series
	c.state.Error = nil
	metrics.FetchOutcomes.WithLabelValues(metrics.OutcomeReady).Inc()
	logger.Info("fetch completed", "place", place.DisplayName, "days", len(series))
}
