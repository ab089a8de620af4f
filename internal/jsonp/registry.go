package jsonp

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Handle represents one pending callback registration. The payload channel
// carries at most one value; it is never closed.
type Handle struct {
	token   string
	payload chan json.RawMessage
}

// Token returns the callback token this handle was registered under.
func (h *Handle) Token() string {
	return h.token
}

// Payload returns the channel the resolved payload is delivered on.
func (h *Handle) Payload() <-chan json.RawMessage {
	return h.payload
}

// Registry tracks pending callback tokens for in-flight bridge requests.
// Tokens settle at most once: Resolve removes the entry before delivering, so
// races between callback arrival, timeouts, and teardown cannot double-fire.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// NewRegistry returns an empty callback registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Handle)}
}

// Register reserves a token and returns the handle its payload will arrive on.
func (r *Registry) Register(token string) (*Handle, error) {
	if token == "" {
		return nil, errors.New("callback token is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handles[token]; exists {
		return nil, fmt.Errorf("callback token %q already registered", token)
	}
	handle := &Handle{token: token, payload: make(chan json.RawMessage, 1)}
	r.handles[token] = handle
	return handle, nil
}

// Resolve delivers a payload to the handle registered under token. It reports
// whether a pending registration was settled; unknown or already settled
// tokens return false.
func (r *Registry) Resolve(token string, payload json.RawMessage) bool {
	r.mu.Lock()
	handle, ok := r.handles[token]
	if ok {
		delete(r.handles, token)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case handle.payload <- payload:
	default:
	}
	return true
}

// Release removes a registration without settling it. Releasing an unknown or
// already settled token is a no-op.
func (r *Registry) Release(token string) {
	r.mu.Lock()
	delete(r.handles, token)
	r.mu.Unlock()
}

// Len reports the number of pending registrations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
