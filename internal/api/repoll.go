package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/config"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

// PollObjectRequest resumes polling for an already submitted object.
type PollObjectRequest struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *history.Store
	ObjectID string

	OnPending func(analysis.ServerStatus)
	OnError   func(error)

	// Optional override, built from Config when nil.
	Fetcher Fetcher
}

// PollObjectResult reports the outcome of a resumed poll.
type PollObjectResult struct {
	Entry  *history.Entry
	Result *analysis.Result
}

// PollObject polls the analysis service for the most recent submission of
// objectID and records the outcome against that submission. The original
// request payload, when still stored, is echoed into the verdict's data
// comments.
func PollObject(ctx context.Context, req PollObjectRequest) (PollObjectResult, error) {
	cfg := req.Config
	if cfg == nil {
		return PollObjectResult{}, errors.New("configuration is required")
	}
	if req.Store == nil {
		return PollObjectResult{}, errors.New("history store is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	objectID := strings.TrimSpace(req.ObjectID)
	if objectID == "" {
		return PollObjectResult{}, services.Wrap(services.ErrValidation, "poll", "", "object id is required", nil)
	}
	if services.IsPlaceholderEndpoint(cfg.Service.AnalyzeURL) {
		return PollObjectResult{}, services.Wrap(services.ErrConfiguration, "poll", "",
			"analyze endpoint is not configured; set service.analyze_url or SOMSCAN_ANALYZE_URL", nil)
	}

	entry, err := req.Store.LatestByObjectID(ctx, objectID)
	if err != nil {
		return PollObjectResult{}, err
	}
	if entry == nil {
		return PollObjectResult{}, services.Wrap(services.ErrNotFound, "poll", "",
			fmt.Sprintf("no submission found for %s; submit it first", objectID), nil)
	}
	candidate, ok := entry.Request()
	if !ok {
		candidate = analysis.Request{ObjectID: objectID}
	}

	lock, err := acquireSessionLock(cfg.Paths.StateDir)
	if err != nil {
		return PollObjectResult{}, err
	}
	defer lock.release(logger)

	ctx = services.WithObjectID(ctx, objectID)
	ctx = services.WithSessionID(ctx, entry.ID)
	logger = logging.WithContext(ctx, logger)

	status, pollErr := runPoll(ctx, req.Fetcher, cfg, logger, objectID, req.OnPending, req.OnError)
	if pollErr != nil {
		persistCtx := context.WithoutCancel(ctx)
		if err := req.Store.MarkFailed(persistCtx, entry.ID, services.FailureStatus(pollErr), pollErr.Error()); err != nil {
			logger.Warn("failed to record poll outcome", logging.Error(err))
		}
		final, _ := req.Store.GetByID(persistCtx, entry.ID)
		return PollObjectResult{Entry: final}, pollErr
	}

	result := analysis.NewServiceResult(candidate, status)
	final, err := completeEntry(ctx, req.Store, entry.ID, result, history.StatusCompleted)
	if err != nil {
		return PollObjectResult{}, err
	}
	return PollObjectResult{Entry: final, Result: result}, nil
}
