package somapp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/jsonp"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

// ScriptFetcher loads the analysis status through the script bridge.
type ScriptFetcher interface {
	Fetch(ctx context.Context, endpoint, objectID string) (json.RawMessage, error)
}

// RawFetcher loads the analysis status with a plain GET request.
type RawFetcher interface {
	FetchRaw(ctx context.Context, endpoint, objectID string) (json.RawMessage, error)
}

// Client fetches and classifies analysis status snapshots for one candidate.
type Client struct {
	endpoint      string
	bridge        ScriptFetcher
	transport     RawFetcher
	bridgeTimeout time.Duration
	httpClient    *http.Client
	logger        *slog.Logger
}

// Option customizes the analysis client.
type Option func(*Client)

// WithBridge overrides the script transport.
func WithBridge(bridge ScriptFetcher) Option {
	return func(c *Client) {
		if bridge != nil {
			c.bridge = bridge
		}
	}
}

// WithTransport overrides the direct transport.
func WithTransport(transport RawFetcher) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// WithHTTPClient sets the HTTP client used to build the default transports.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBridgeTimeout bounds how long the default script bridge waits for its
// callback before the client falls back to a direct request.
func WithBridgeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.bridgeTimeout = timeout
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs an analysis status client for the given endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	client := &Client{
		endpoint:      strings.TrimSpace(endpoint),
		bridgeTimeout: jsonp.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.bridge == nil {
		bridgeOpts := []jsonp.Option{
			jsonp.WithTimeout(client.bridgeTimeout),
			jsonp.WithLogger(client.logger),
		}
		if client.httpClient != nil {
			bridgeOpts = append(bridgeOpts, jsonp.WithHTTPClient(client.httpClient))
		}
		client.bridge = jsonp.NewBridge(jsonp.NewRegistry(), bridgeOpts...)
	}
	if client.transport == nil {
		var transportOpts []TransportOption
		if client.httpClient != nil {
			transportOpts = append(transportOpts, WithTransportHTTPClient(client.httpClient))
		}
		client.transport = NewTransport(transportOpts...)
	}
	client.logger = logging.NewComponentLogger(client.logger, "analysis")
	return client
}

// Endpoint returns the configured analysis URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchStatus retrieves the current status for objectID and classifies it.
// The script bridge runs first; when it fails for any reason other than
// cancellation the direct transport gets one attempt and its error is the one
// reported. An unconfigured endpoint fails before any request is made.
func (c *Client) FetchStatus(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
	var empty analysis.ServerStatus
	if services.IsPlaceholderEndpoint(c.endpoint) {
		return empty, services.Wrap(services.ErrConfiguration, "analysis", "fetch status",
			"analyze endpoint is not configured", nil)
	}

	payload, err := c.bridge.Fetch(ctx, c.endpoint, objectID)
	if err != nil {
		if ctx.Err() != nil {
			return empty, ctx.Err()
		}
		c.logger.Debug("script transport failed, trying direct request",
			logging.String(logging.FieldObjectID, objectID),
			logging.Error(err))
		payload, err = c.transport.FetchRaw(ctx, c.endpoint, objectID)
		if err != nil {
			return empty, err
		}
	}
	return analysis.DecodeStatus(payload), nil
}
