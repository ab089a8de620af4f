package somapp_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services/somapp"
)

func TestFetchRawStampsFreshnessParameter(t *testing.T) {
	var captured struct {
		objectID  string
		ts        string
		userAgent string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.objectID = r.URL.Query().Get("object_id")
		captured.ts = r.URL.Query().Get("ts")
		captured.userAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"status":"pending"}`)
	}))
	defer server.Close()

	transport := somapp.NewTransport(
		somapp.WithTransportHTTPClient(server.Client()),
		somapp.WithTransportClock(func() time.Time { return time.UnixMilli(1700000000000) }),
	)

	payload, err := transport.FetchRaw(context.Background(), server.URL, "TOI-700")
	if err != nil {
		t.Fatalf("FetchRaw failed: %v", err)
	}
	if string(payload) != `{"status":"pending"}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
	if captured.objectID != "TOI-700" {
		t.Fatalf("unexpected object_id: %q", captured.objectID)
	}
	if captured.ts != "1700000000000" {
		t.Fatalf("unexpected ts: %q", captured.ts)
	}
	if captured.userAgent == "" {
		t.Fatal("expected User-Agent header to be set")
	}
}

func TestFetchRawWrapsHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	transport := somapp.NewTransport(somapp.WithTransportHTTPClient(server.Client()))

	_, err := transport.FetchRaw(context.Background(), server.URL, "TOI-700")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	var httpErr *services.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", httpErr.StatusCode)
	}
	if httpErr.Body != "nope" {
		t.Fatalf("unexpected body snippet: %q", httpErr.Body)
	}
}

func TestFetchRawRejectsNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "callback({});")
	}))
	defer server.Close()

	transport := somapp.NewTransport(somapp.WithTransportHTTPClient(server.Client()))

	_, err := transport.FetchRaw(context.Background(), server.URL, "TOI-700")
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestFetchRawReportsTransportFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	endpoint := server.URL
	server.Close()

	transport := somapp.NewTransport(somapp.WithTransportHTTPClient(client))

	_, err := transport.FetchRaw(context.Background(), endpoint, "TOI-700")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}
