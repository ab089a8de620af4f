package poller_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/poller"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/services"
)

type fetcherFunc func(ctx context.Context, objectID string) (analysis.ServerStatus, error)

func (f fetcherFunc) FetchStatus(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
	return f(ctx, objectID)
}

func pendingStatus() analysis.ServerStatus {
	return analysis.DecodeStatus(json.RawMessage(`{"status":"pending"}`))
}

func completeStatus() analysis.ServerStatus {
	return analysis.DecodeStatus(json.RawMessage(`{"percent":87.2,"timestamp":"2024-01-01T00:00:00Z"}`))
}

func TestPollTimesOutWhileServerStaysPending(t *testing.T) {
	now := time.Unix(0, 0)
	fetches := 0
	pendings := 0

	p := poller.New(
		fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
			fetches++
			return pendingStatus(), nil
		}),
		poller.WithClock(func() time.Time { return now }),
		poller.WithSleeper(func(ctx context.Context, d time.Duration) error {
			now = now.Add(d)
			return nil
		}),
	)

	interval := 10 * time.Millisecond
	timeout := 50 * time.Millisecond
	_, err := p.Poll(context.Background(), "TOI-700", poller.Config{
		Interval:  interval,
		Timeout:   timeout,
		OnPending: func(analysis.ServerStatus) { pendings++ },
	})

	var timeoutErr *poller.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout sentinel in chain, got %v", err)
	}
	if timeoutErr.ObjectID != "TOI-700" {
		t.Fatalf("unexpected object id: %q", timeoutErr.ObjectID)
	}
	if pendings < 4 {
		t.Fatalf("expected at least 4 pending notifications, got %d", pendings)
	}
	bound := int(timeout/interval) + 1
	if fetches > bound {
		t.Fatalf("expected at most %d fetch attempts, got %d", bound, fetches)
	}
	if timeoutErr.Attempts != fetches {
		t.Fatalf("attempt accounting mismatch: error says %d, fetcher saw %d", timeoutErr.Attempts, fetches)
	}
}

func TestPollReturnsTerminalStatusOnSecondAttempt(t *testing.T) {
	fetches := 0
	pendings := 0

	p := poller.New(fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
		fetches++
		if fetches == 1 {
			return pendingStatus(), nil
		}
		return completeStatus(), nil
	}))

	status, err := p.Poll(context.Background(), "TOI-700", poller.Config{
		Interval:  time.Millisecond,
		Timeout:   time.Second,
		OnPending: func(analysis.ServerStatus) { pendings++ },
	})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("expected resolution on the second fetch, got %d", fetches)
	}
	if pendings != 1 {
		t.Fatalf("expected one pending notification, got %d", pendings)
	}
	if status.Percent != 87.2 {
		t.Fatalf("unexpected percent: %v", status.Percent)
	}
	if status.Timestamp != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected timestamp: %q", status.Timestamp)
	}
}

func TestPollTreatsFetchErrorsAsNonFatal(t *testing.T) {
	fetches := 0
	var seen []error

	p := poller.New(fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
		fetches++
		switch fetches {
		case 1:
			return analysis.ServerStatus{}, services.Wrap(services.ErrNetwork, "direct", "fetch", "connection refused", nil)
		case 2:
			return pendingStatus(), nil
		default:
			return completeStatus(), nil
		}
	}))

	status, err := p.Poll(context.Background(), "TOI-700", poller.Config{
		Interval: time.Millisecond,
		Timeout:  time.Second,
		OnError:  func(err error) { seen = append(seen, err) },
	})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if !status.Complete() {
		t.Fatalf("expected terminal status, got %+v", status)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one error notification, got %d", len(seen))
	}
	if !errors.Is(seen[0], services.ErrNetwork) {
		t.Fatalf("unexpected notified error: %v", seen[0])
	}
}

func TestPollSurfacesUnrecognizedShapesWithoutStopping(t *testing.T) {
	fetches := 0
	pendings := 0
	var seen []error

	p := poller.New(fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
		fetches++
		if fetches == 1 {
			return analysis.DecodeStatus(json.RawMessage(`{"note":"no usable fields"}`)), nil
		}
		return completeStatus(), nil
	}))

	status, err := p.Poll(context.Background(), "TOI-700", poller.Config{
		Interval:  time.Millisecond,
		Timeout:   time.Second,
		OnPending: func(analysis.ServerStatus) { pendings++ },
		OnError:   func(err error) { seen = append(seen, err) },
	})
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if !status.Complete() {
		t.Fatalf("expected terminal status, got %+v", status)
	}
	if pendings != 0 {
		t.Fatalf("unrecognized responses must not count as pending, got %d", pendings)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one error notification, got %d", len(seen))
	}
	if !errors.Is(seen[0], services.ErrParse) {
		t.Fatalf("unexpected notified error: %v", seen[0])
	}
}

func TestPollStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pendings := 0

	p := poller.New(fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
		return pendingStatus(), nil
	}))

	_, err := p.Poll(ctx, "TOI-700", poller.Config{
		Interval: time.Millisecond,
		Timeout:  time.Minute,
		OnPending: func(analysis.ServerStatus) {
			pendings++
			if pendings == 2 {
				cancel()
			}
		},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if pendings != 2 {
		t.Fatalf("expected the loop to stop right after cancellation, got %d pendings", pendings)
	}
}

func TestPollReportsCancellationSurfacedByFetcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errNotified := 0

	p := poller.New(fetcherFunc(func(ctx context.Context, objectID string) (analysis.ServerStatus, error) {
		cancel()
		return analysis.ServerStatus{}, ctx.Err()
	}))

	_, err := p.Poll(ctx, "TOI-700", poller.Config{
		Interval: time.Millisecond,
		Timeout:  time.Minute,
		OnError:  func(error) { errNotified++ },
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if errNotified != 0 {
		t.Fatalf("cancellation must not be routed through OnError, got %d notifications", errNotified)
	}
}
