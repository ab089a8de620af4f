package submitlog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	userAgent          = "Somscan-Go/0.1.0"
	errorBodyLimit     = 2048

	contentTypeJSON = "application/json"
	// contentTypeOpaque mirrors the restricted mode some log collectors
	// require: the request goes out but the response is not interpreted.
	contentTypeOpaque = "text/plain;charset=UTF-8"
)

// HTTPDoer describes the HTTP client used by the submission logger.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// logPayload is the wire shape of one log record: the submitted fields plus
// a server-independent submission timestamp.
type logPayload struct {
	analysis.Request
	Timestamp string `json:"timestamp"`
}

// Logger delivers submission records to the logging endpoint.
type Logger struct {
	endpoint string
	client   HTTPDoer
	clock    func() time.Time
	logger   *slog.Logger
}

// Option customizes the submission logger.
type Option func(*Logger)

// WithHTTPClient overrides the HTTP client used for log deliveries.
func WithHTTPClient(client HTTPDoer) Option {
	return func(l *Logger) {
		if client != nil {
			l.client = client
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(l *Logger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger attaches a local logger for delivery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Logger) {
		if logger != nil {
			l.logger = logging.NewComponentLogger(logger, "submitlog")
		}
	}
}

// New constructs a submission logger for the given endpoint.
func New(endpoint string, opts ...Option) *Logger {
	logger := &Logger{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: defaultHTTPTimeout},
		clock:    time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(logger)
	}
	return logger
}

// Send posts the candidate to the logging endpoint and reports whether any
// attempt was dispatched. The first attempt is a regular JSON POST whose
// status is checked; when it fails the record is resent in opaque mode where
// only transport-level delivery counts. An unconfigured endpoint returns
// false without any network access. Callers must not gate the analysis flow
// on the returned value.
func (l *Logger) Send(ctx context.Context, req analysis.Request) bool {
	if services.IsPlaceholderEndpoint(l.endpoint) {
		l.logger.Debug("log endpoint not configured, skipping submission record",
			logging.String(logging.FieldObjectID, req.ObjectID))
		return false
	}

	payload := logPayload{Request: req, Timestamp: l.clock().UTC().Format(time.RFC3339)}
	body, err := json.Marshal(payload)
	if err != nil {
		l.logger.Warn("encode submission record failed",
			logging.String(logging.FieldObjectID, req.ObjectID),
			logging.Error(err))
		return false
	}

	if err := l.post(ctx, body, contentTypeJSON, true); err == nil {
		return true
	} else {
		l.logger.Debug("submission record rejected, retrying in opaque mode",
			logging.String(logging.FieldObjectID, req.ObjectID),
			logging.Error(err))
	}

	if err := l.post(ctx, body, contentTypeOpaque, false); err != nil {
		l.logger.Warn("submission record delivery failed",
			logging.String(logging.FieldObjectID, req.ObjectID),
			logging.Error(err))
		return false
	}
	return true
}

// Dispatch fires Send in the background. The returned channel is buffered
// and receives the outcome exactly once, so callers are free to ignore it.
func (l *Logger) Dispatch(ctx context.Context, req analysis.Request) <-chan bool {
	outcome := make(chan bool, 1)
	go func() {
		delivered := l.Send(ctx, req)
		if delivered {
			l.logger.Debug("submission record delivered",
				logging.String(logging.FieldObjectID, req.ObjectID))
		}
		outcome <- delivered
	}()
	return outcome
}

func (l *Logger) post(ctx context.Context, body []byte, contentType string, checkStatus bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrNetwork, "submitlog", "post", "build request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "submitlog", "post", "request failed", err)
	}
	defer resp.Body.Close()

	if checkStatus && resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return services.Wrap(services.ErrNetwork, "submitlog", "post", "", &services.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		})
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
