package somapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	userAgent          = "Somscan-Go/0.1.0"
	maxResponseBytes   = 1 << 20
	errorBodyLimit     = 2048
	snippetLimit       = 120
)

// HTTPDoer describes the HTTP client used by the direct transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport issues plain GET requests against the analysis endpoint. It is
// the fallback path for deployments where the script bridge is unavailable.
type Transport struct {
	client HTTPDoer
	clock  func() time.Time
}

// TransportOption customizes the direct transport.
type TransportOption func(*Transport)

// WithTransportHTTPClient overrides the HTTP client used for direct requests.
func WithTransportHTTPClient(client HTTPDoer) TransportOption {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTransportClock overrides the clock behind the cache-busting timestamp.
func WithTransportClock(clock func() time.Time) TransportOption {
	return func(t *Transport) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// NewTransport constructs a direct JSON transport.
func NewTransport(opts ...TransportOption) *Transport {
	transport := &Transport{
		client: &http.Client{Timeout: defaultHTTPTimeout},
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(transport)
	}
	return transport
}

// FetchRaw requests the current analysis status as raw JSON. The ts query
// parameter and the Cache-Control header both defeat intermediary caches so
// every poll observes fresh state.
func (t *Transport) FetchRaw(ctx context.Context, endpoint, objectID string) (json.RawMessage, error) {
	target, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "direct", "fetch", "invalid endpoint", err)
	}
	query := target.Query()
	query.Set("object_id", objectID)
	query.Set("ts", strconv.FormatInt(t.clock().UnixMilli(), 10))
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "direct", "fetch", "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "direct", "fetch", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, services.Wrap(services.ErrNetwork, "direct", "fetch", "", &services.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "direct", "fetch", "read response", err)
	}
	if !json.Valid(body) {
		return nil, services.Wrap(services.ErrParse, "direct", "fetch",
			fmt.Sprintf("response is not JSON: %s", snippet(body)), nil)
	}
	return json.RawMessage(body), nil
}

func snippet(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) <= snippetLimit {
		return trimmed
	}
	return trimmed[:snippetLimit] + "..."
}
