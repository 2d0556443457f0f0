// Package syncq makes mutating operations resilient to an unreachable
// remote proxy. Attempts go out immediately; failures are parked in a
// durable queue and drained on a timer or when connectivity returns. The
// local store stays the source of truth throughout, and a caller-supplied
// mutation is never lost.
package syncq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means no proxy endpoint is set; callers apply the
	// mutation locally and skip the queue entirely.
	ErrNotConfigured = errors.New("remote endpoint not configured")

	// ErrDrainBusy means a drain pass is already running; the trigger is
	// simply dropped.
	ErrDrainBusy = errors.New("drain already in progress")
)

// Response is the proxy's reply envelope. Payload carries the
// resource-named object when the server returns one. Queued/QueueID report
// server-side deferral, which is distinct from this client's own queue.
type Response struct {
	Success bool
	Queued  bool
	QueueID string
	Error   string
	Payload json.RawMessage
}

// Remote is the delivery half of the sync layer. Send returns a non-nil
// error only for transport-level failures (unreachable, timeout, non-2xx);
// a definitive server rejection comes back as a Response with Success false
// and is not retried.
type Remote interface {
	Send(ctx context.Context, resource, method string, body []byte) (*Response, error)
	Ping(ctx context.Context) error
}

// DefaultTimeout bounds one delivery attempt. A hung proxy counts as
// unreachable rather than blocking the caller.
const DefaultTimeout = 5 * time.Second

// HTTPRemote talks JSON to the proxy: resource paths live under /api/, so
// Send(ctx, "residents/42", "PUT", body) becomes PUT <endpoint>/api/residents/42.
type HTTPRemote struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
}

// NewHTTPRemote builds a remote for the given endpoint. An empty endpoint
// is allowed and yields ErrNotConfigured from every call, which keeps the
// local-first fallback in one place.
func NewHTTPRemote(endpoint, apiKey string, timeout time.Duration) *HTTPRemote {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPRemote{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

func (r *HTTPRemote) Configured() bool { return r.endpoint != "" }

func (r *HTTPRemote) Send(ctx context.Context, resource, method string, body []byte) (*Response, error) {
	if !r.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	url := r.endpoint + "/api/" + strings.TrimLeft(resource, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("proxy returned %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	return decodeResponse(resp.Body, resource)
}

// decodeResponse lifts the flat proxy envelope into Response. The payload
// key is the singular resource name ("residents/42" answers under
// "resident").
func decodeResponse(body io.Reader, resource string) (*Response, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Response{Success: true}, nil
		}
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}

	out := &Response{}
	if v, ok := raw["success"]; ok {
		_ = json.Unmarshal(v, &out.Success)
	}
	if v, ok := raw["queued"]; ok {
		_ = json.Unmarshal(v, &out.Queued)
	}
	if v, ok := raw["queueId"]; ok {
		_ = json.Unmarshal(v, &out.QueueID)
	}
	if v, ok := raw["error"]; ok {
		_ = json.Unmarshal(v, &out.Error)
	}
	if out.Queued {
		out.Success = true
	}
	if v, ok := raw[payloadKey(resource)]; ok {
		out.Payload = v
	}
	return out, nil
}

func payloadKey(resource string) string {
	root := resourceRoot(resource)
	return strings.TrimSuffix(root, "s")
}

// resourceRoot returns the first path segment; queue ordering is per root
// so edits to the same collection stay causally ordered.
func resourceRoot(resource string) string {
	resource = strings.TrimLeft(resource, "/")
	if i := strings.IndexByte(resource, '/'); i >= 0 {
		return resource[:i]
	}
	return resource
}

func (r *HTTPRemote) Ping(ctx context.Context) error {
	if !r.Configured() {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proxy health check returned %s", resp.Status)
	}
	return nil
}
