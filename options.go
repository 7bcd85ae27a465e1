package history

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

// DefaultMaxHistory is the number of undo steps kept when no limit is given.
const DefaultMaxHistory = 50

// Option configures a Manager.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) {
	f(c)
}

type config struct {
	store      storage.Store
	maxHistory int
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
	metrics    *Metrics
}

func defaultConfig() *config {
	return &config{
		maxHistory: DefaultMaxHistory,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithStore sets the medium present state and history are persisted to.
// Without it the manager uses a private in-memory store.
func WithStore(s storage.Store) Option {
	return optionFunc(func(c *config) {
		c.store = s
	})
}

// WithMaxHistory bounds the number of undo steps. Values <= 0 select
// DefaultMaxHistory.
func WithMaxHistory(n int) Option {
	return optionFunc(func(c *config) {
		if n <= 0 {
			n = DefaultMaxHistory
		}
		c.maxHistory = n
	})
}

// WithLogger sets the logger used to report storage and patch failures.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithClock sets the time source used to stamp checkpoints.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *config) {
		if now != nil {
			c.now = now
		}
	})
}

// WithIDGenerator sets the function used to generate checkpoint IDs.
func WithIDGenerator(newID func() string) Option {
	return optionFunc(func(c *config) {
		if newID != nil {
			c.newID = newID
		}
	})
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return optionFunc(func(c *config) {
		c.metrics = m
	})
}
