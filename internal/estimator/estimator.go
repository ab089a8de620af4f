package estimator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
)

// DefaultMaxDelay bounds the simulated computation pause before an estimate
// is returned.
const DefaultMaxDelay = 2500 * time.Millisecond

const (
	snrSaturation   = 20
	depthSaturation = 10000
)

// Estimator produces labeled local fallback results.
type Estimator struct {
	maxDelay time.Duration
	clock    func() time.Time
	logger   *slog.Logger
}

// Option customizes the estimator.
type Option func(*Estimator)

// WithMaxDelay caps the simulated computation pause. Zero disables it.
func WithMaxDelay(d time.Duration) Option {
	return func(e *Estimator) {
		if d >= 0 {
			e.maxDelay = d
		}
	}
}

// WithClock overrides the result timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(e *Estimator) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Estimator) {
		if logger != nil {
			e.logger = logging.NewComponentLogger(logger, "estimator")
		}
	}
}

// New constructs a local estimator.
func New(opts ...Option) *Estimator {
	est := &Estimator{
		maxDelay: DefaultMaxDelay,
		clock:    time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(est)
	}
	return est
}

// Score computes the fallback probability for a candidate: a fixed base plus
// equal-weight contributions from the signal-to-noise ratio (saturating at
// 20) and the transit depth (saturating at 10000 ppm), rounded to three
// decimals.
func Score(req analysis.Request) float64 {
	score := 0.3 +
		0.3*clamp01(req.SNR/snrSaturation) +
		0.3*clamp01(req.TransitDepth/depthSaturation)
	return math.Round(score*1000) / 1000
}

// Estimate scores the candidate after a randomized pause bounded by the
// configured maximum. The pause honors context cancellation.
func (e *Estimator) Estimate(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	if e.maxDelay > 0 {
		if err := sleepWithContext(ctx, time.Duration(rand.Int63n(int64(e.maxDelay)))); err != nil {
			return nil, err
		}
	}

	objectID := strings.TrimSpace(req.ObjectID)
	score := Score(req)
	percent := score * 100
	e.logger.Info("computed local estimate",
		logging.String(logging.FieldObjectID, objectID),
		logging.Float64("probability", score))

	return &analysis.Result{
		ObjectID:     objectID,
		Probability:  score,
		Percent:      percent,
		Summary:      fmt.Sprintf("Local estimate scored %s at %.1f%% (no service verdict)", objectID, percent),
		DataComments: analysis.Commentary(req),
		Timestamp:    e.clock().UTC().Format(time.RFC3339),
		Source:       analysis.SourceEstimate,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
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
