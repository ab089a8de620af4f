package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/estimator"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

// EstimateRequest scores a candidate locally without touching the service.
type EstimateRequest struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     *history.Store
	Candidate analysis.Request

	// Optional override, built from Config when nil.
	Fallback LocalEstimator
}

// EstimateResult reports a locally estimated verdict.
type EstimateResult struct {
	Entry  *history.Entry
	Result *analysis.Result
}

// EstimateLocal validates the candidate, records it, and stores a labeled
// local estimate. No network access is involved.
func EstimateLocal(ctx context.Context, req EstimateRequest) (EstimateResult, error) {
	cfg := req.Config
	if cfg == nil {
		return EstimateResult{}, errors.New("configuration is required")
	}
	if req.Store == nil {
		return EstimateResult{}, errors.New("history store is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	candidate := req.Candidate
	if err := candidate.Validate(); err != nil {
		return EstimateResult{}, services.Wrap(services.ErrValidation, "estimate", "", err.Error(), nil)
	}

	entry, err := req.Store.NewSubmission(ctx, candidate)
	if err != nil {
		return EstimateResult{}, err
	}
	ctx = services.WithObjectID(ctx, candidate.ObjectID)
	ctx = services.WithSessionID(ctx, entry.ID)
	logger = logging.WithContext(ctx, logger)

	fallback := req.Fallback
	if fallback == nil {
		fallback = estimator.New(
			estimator.WithMaxDelay(cfg.EstimatorMaxDelay()),
			estimator.WithLogger(logger))
	}
	result, err := fallback.Estimate(ctx, candidate)
	if err != nil {
		persistCtx := context.WithoutCancel(ctx)
		if markErr := req.Store.MarkFailed(persistCtx, entry.ID, services.FailureStatus(err), err.Error()); markErr != nil {
			logger.Warn("failed to record estimate outcome", logging.Error(markErr))
		}
		return EstimateResult{}, err
	}

	final, err := completeEntry(ctx, req.Store, entry.ID, result, history.StatusEstimated)
	if err != nil {
		return EstimateResult{}, err
	}
	return EstimateResult{Entry: final, Result: result}, nil
}
