package jsonp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

// DefaultTimeout bounds how long Fetch waits for the callback to fire.
const DefaultTimeout = 15 * time.Second

const (
	userAgent      = "Somscan-Go/0.1.0"
	tokenPrefix    = "somcb"
	maxScriptBytes = 1 << 20
)

// NewToken generates a single-use callback token that is also a valid
// script identifier.
func NewToken() string {
	return tokenPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Bridge retrieves analysis payloads through the callback side channel.
type Bridge struct {
	registry   *Registry
	httpClient *http.Client
	timeout    time.Duration
	clock      func() time.Time
	logger     *slog.Logger
}

// Option customizes bridge construction.
type Option func(*Bridge)

// WithHTTPClient overrides the HTTP client used to load callback scripts.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bridge) {
		if client != nil {
			b.httpClient = client
		}
	}
}

// WithTimeout overrides how long Fetch waits for the callback.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Bridge) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithClock overrides the time source used for freshness parameters.
func WithClock(clock func() time.Time) Option {
	return func(b *Bridge) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithLogger attaches a logger to the bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logging.NewComponentLogger(logger, "bridge")
		}
	}
}

// NewBridge constructs a bridge around the provided registry.
func NewBridge(registry *Registry, opts ...Option) *Bridge {
	bridge := &Bridge{
		registry:   registry,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		timeout:    DefaultTimeout,
		clock:      time.Now,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(bridge)
	}
	if bridge.registry == nil {
		bridge.registry = NewRegistry()
	}
	return bridge
}

// Fetch loads the endpoint as a callback script for the given object and
// waits for the payload, a load failure, or the timeout. Exactly one of those
// outcomes is returned per invocation, and the callback registration is
// removed on every path.
func (b *Bridge) Fetch(ctx context.Context, endpoint, objectID string) (json.RawMessage, error) {
	token := NewToken()
	handle, err := b.registry.Register(token)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, "bridge", "register", "reserve callback token", err)
	}
	defer b.registry.Release(token)

	loadErr := make(chan error, 1)
	go func() {
		loadErr <- b.load(ctx, endpoint, objectID, token)
	}()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	for {
		select {
		case payload := <-handle.Payload():
			return payload, nil
		case err := <-loadErr:
			if err != nil {
				return nil, err
			}
			// Script loaded without invoking our token; keep waiting.
			loadErr = nil
		case <-timer.C:
			select {
			case payload := <-handle.Payload():
				return payload, nil
			default:
			}
			return nil, services.Wrap(services.ErrTimeout, "bridge", "fetch", fmt.Sprintf("no callback within %s", b.timeout), nil)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (b *Bridge) load(ctx context.Context, endpoint, objectID, token string) error {
	target, err := url.Parse(endpoint)
	if err != nil {
		return services.Wrap(services.ErrLoad, "bridge", "load", "parse endpoint", err)
	}
	query := target.Query()
	query.Set("object_id", objectID)
	query.Set("ts", strconv.FormatInt(b.clock().UnixMilli(), 10))
	query.Set("callback", token)
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrLoad, "bridge", "load", "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrLoad, "bridge", "load", "script request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		httpErr := &services.HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		return services.Wrap(services.ErrLoad, "bridge", "load", "script response", httpErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBytes))
	if err != nil {
		return services.Wrap(services.ErrLoad, "bridge", "load", "read script body", err)
	}

	callback, payload, err := ExtractInvocation(body)
	if err != nil {
		return services.Wrap(services.ErrLoad, "bridge", "load", "invalid callback script", err)
	}

	if !b.registry.Resolve(callback, payload) {
		b.logger.Warn("script invoked unknown callback token",
			logging.String("object_id", objectID),
			logging.String("callback", callback),
		)
	}
	return nil
}
