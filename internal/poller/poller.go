package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

const (
	// DefaultInterval separates consecutive status fetches.
	DefaultInterval = 10 * time.Second
	// DefaultTimeout bounds one poll run end to end.
	DefaultTimeout = 2 * time.Minute
)

// Fetcher retrieves the current analysis status for one candidate.
type Fetcher interface {
	FetchStatus(ctx context.Context, objectID string) (analysis.ServerStatus, error)
}

// Config controls a single poll run. Zero durations fall back to the package
// defaults; nil callbacks are skipped.
type Config struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnPending func(analysis.ServerStatus)
	OnError   func(error)
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) notifyPending(status analysis.ServerStatus) {
	if c.OnPending != nil {
		c.OnPending(status)
	}
}

func (c Config) notifyError(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

// TimeoutError reports that a poll run exhausted its deadline without
// observing a terminal response.
type TimeoutError struct {
	ObjectID string
	Elapsed  time.Duration
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no analysis response for %s within %s (%d attempts)",
		e.ObjectID, e.Elapsed.Round(time.Millisecond), e.Attempts)
}

func (e *TimeoutError) Unwrap() error { return services.ErrTimeout }

// Poller runs the fetch loop. Iterations are strictly sequential, so at most
// one status request is in flight at any time.
type Poller struct {
	fetcher Fetcher
	logger  *slog.Logger
	clock   func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// Option customizes poller construction.
type Option func(*Poller)

// WithLogger attaches a logger to the poller.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "poller")
		}
	}
}

// WithClock overrides the time source used for deadline accounting.
func WithClock(clock func() time.Time) Option {
	return func(p *Poller) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithSleeper overrides the inter-iteration delay.
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(p *Poller) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// New constructs a poller around the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Poller {
	poller := &Poller{
		fetcher: fetcher,
		logger:  logging.NewNop(),
		clock:   time.Now,
		sleep:   sleepWithContext,
	}
	for _, opt := range opts {
		opt(poller)
	}
	return poller
}

// Poll fetches the status for objectID until it turns terminal. Pending and
// unrecognized responses keep the loop going, as do fetch errors; only a
// terminal response, the configured timeout, or context cancellation ends the
// run. Cancellation is checked at the top of each iteration and during the
// inter-iteration sleep.
func (p *Poller) Poll(ctx context.Context, objectID string, cfg Config) (analysis.ServerStatus, error) {
	cfg = cfg.withDefaults()
	var empty analysis.ServerStatus

	start := p.clock()
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return empty, err
		}
		elapsed := p.clock().Sub(start)
		if elapsed >= cfg.Timeout {
			p.logger.Warn("poll deadline reached",
				logging.String(logging.FieldObjectID, objectID),
				logging.Duration("elapsed", elapsed),
				logging.Int("attempts", attempts))
			return empty, &TimeoutError{ObjectID: objectID, Elapsed: elapsed, Attempts: attempts}
		}

		attempts++
		status, err := p.fetcher.FetchStatus(ctx, objectID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return empty, ctx.Err()
			}
			p.logger.Warn("status fetch failed",
				logging.String(logging.FieldObjectID, objectID),
				logging.Int("attempt", attempts),
				logging.Error(err))
			cfg.notifyError(err)
		case status.Complete():
			p.logger.Info("analysis complete",
				logging.String(logging.FieldObjectID, objectID),
				logging.Float64("percent", status.Percent),
				logging.Int("attempts", attempts))
			return status, nil
		case status.State == analysis.StateUnrecognized:
			shapeErr := services.Wrap(services.ErrParse, "poller", "classify",
				"response has neither a pending marker nor a percent field", nil)
			p.logger.Warn("unrecognized analysis response",
				logging.String(logging.FieldObjectID, objectID),
				logging.Int("attempt", attempts))
			cfg.notifyError(shapeErr)
		default:
			p.logger.Debug("analysis still pending",
				logging.String(logging.FieldObjectID, objectID),
				logging.Int("attempt", attempts))
			cfg.notifyPending(status)
		}

		if err := p.sleep(ctx, cfg.Interval); err != nil {
			return empty, err
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
