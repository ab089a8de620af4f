package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/estimator"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/poller"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services/somapp"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/submitlog"
)

// Fetcher matches the analysis client surface used by poll runs.
type Fetcher interface {
	FetchStatus(ctx context.Context, objectID string) (analysis.ServerStatus, error)
}

// Recorder dispatches the best-effort submission record.
type Recorder interface {
	Dispatch(ctx context.Context, req analysis.Request) <-chan bool
}

// LocalEstimator produces labeled fallback results.
type LocalEstimator interface {
	Estimate(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

// SubmitRequest carries one candidate through validation, advisory logging,
// polling, and persistence.
type SubmitRequest struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     *history.Store
	Candidate analysis.Request

	// UseEstimate turns a poll timeout into a labeled local estimate instead
	// of a failure. Requires the estimator to be enabled in configuration.
	UseEstimate bool

	OnPending func(analysis.ServerStatus)
	OnError   func(error)

	// Optional overrides, built from Config when nil.
	Fetcher  Fetcher
	Recorder Recorder
	Fallback LocalEstimator
}

// SubmitResult reports the terminal state of one submission.
type SubmitResult struct {
	Entry     *history.Entry
	Result    *analysis.Result
	Estimated bool
}

// Submit runs the full submission flow. The advisory record is dispatched
// without being awaited and its outcome never influences the flow. On a poll
// timeout the entry is recorded as timed out first, so history stays truthful
// even when the estimator then produces a labeled fallback verdict.
func Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	cfg := req.Config
	if cfg == nil {
		return SubmitResult{}, errors.New("configuration is required")
	}
	if req.Store == nil {
		return SubmitResult{}, errors.New("history store is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	candidate := req.Candidate
	if err := candidate.Validate(); err != nil {
		return SubmitResult{}, services.Wrap(services.ErrValidation, "submit", "", err.Error(), nil)
	}
	if services.IsPlaceholderEndpoint(cfg.Service.AnalyzeURL) {
		return SubmitResult{}, services.Wrap(services.ErrConfiguration, "submit", "",
			"analyze endpoint is not configured; set service.analyze_url or SOMSCAN_ANALYZE_URL", nil)
	}

	lock, err := acquireSessionLock(cfg.Paths.StateDir)
	if err != nil {
		return SubmitResult{}, err
	}
	defer lock.release(logger)

	entry, err := req.Store.NewSubmission(ctx, candidate)
	if err != nil {
		return SubmitResult{}, err
	}
	ctx = services.WithObjectID(ctx, candidate.ObjectID)
	ctx = services.WithSessionID(ctx, entry.ID)
	logger = logging.WithContext(ctx, logger)
	logger.Info("submission recorded", logging.String("endpoint", cfg.Service.AnalyzeURL))

	recorder := req.Recorder
	if recorder == nil {
		recorder = submitlog.New(cfg.Service.LogURL,
			submitlog.WithLogger(logger),
			submitlog.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeoutDuration()}))
	}
	_ = recorder.Dispatch(ctx, candidate)

	status, pollErr := runPoll(ctx, req.Fetcher, cfg, logger, candidate.ObjectID, req.OnPending, req.OnError)
	if pollErr == nil {
		result := analysis.NewServiceResult(candidate, status)
		final, err := completeEntry(ctx, req.Store, entry.ID, result, history.StatusCompleted)
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Entry: final, Result: result}, nil
	}

	// The terminal write must survive whatever ended the poll.
	persistCtx := context.WithoutCancel(ctx)
	if err := req.Store.MarkFailed(persistCtx, entry.ID, services.FailureStatus(pollErr), pollErr.Error()); err != nil {
		logger.Warn("failed to record poll outcome", logging.Error(err))
	}

	var timeoutErr *poller.TimeoutError
	if !errors.As(pollErr, &timeoutErr) {
		final, _ := req.Store.GetByID(persistCtx, entry.ID)
		return SubmitResult{Entry: final}, pollErr
	}

	if !req.UseEstimate || !cfg.Estimator.Enabled {
		final, _ := req.Store.GetByID(persistCtx, entry.ID)
		return SubmitResult{Entry: final}, pollErr
	}

	logger.Info("falling back to local estimate",
		logging.Duration("waited", timeoutErr.Elapsed),
		logging.Int("attempts", timeoutErr.Attempts))
	fallback := req.Fallback
	if fallback == nil {
		fallback = estimator.New(
			estimator.WithMaxDelay(cfg.EstimatorMaxDelay()),
			estimator.WithLogger(logger))
	}
	result, err := fallback.Estimate(ctx, candidate)
	if err != nil {
		final, _ := req.Store.GetByID(persistCtx, entry.ID)
		return SubmitResult{Entry: final}, err
	}
	final, err := completeEntry(ctx, req.Store, entry.ID, result, history.StatusEstimated)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Entry: final, Result: result, Estimated: true}, nil
}

func runPoll(
	ctx context.Context,
	fetcher Fetcher,
	cfg *config.Config,
	logger *slog.Logger,
	objectID string,
	onPending func(analysis.ServerStatus),
	onError func(error),
) (analysis.ServerStatus, error) {
	if fetcher == nil {
		fetcher = somapp.NewClient(cfg.Service.AnalyzeURL,
			somapp.WithLogger(logger),
			somapp.WithBridgeTimeout(cfg.BridgeTimeoutDuration()),
			somapp.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeoutDuration()}))
	}
	p := poller.New(fetcher, poller.WithLogger(logger))
	return p.Poll(ctx, objectID, poller.Config{
		Interval:  cfg.PollInterval(),
		Timeout:   cfg.PollTimeout(),
		OnPending: onPending,
		OnError:   onError,
	})
}

func completeEntry(
	ctx context.Context,
	store *history.Store,
	id string,
	result *analysis.Result,
	status history.Status,
) (*history.Entry, error) {
	persistCtx := context.WithoutCancel(ctx)
	if err := store.Complete(persistCtx, id, result, status); err != nil {
		return nil, err
	}
	return store.GetByID(persistCtx, id)
}
