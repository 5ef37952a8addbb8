// Package hub is the client for the sheet hub: finished atlas sheets are
// uploaded there and a processing message is enqueued for each one.
// Retries live here and only here; the composition core never retries.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Hub is a token-authenticated client for a sheet hub instance.
type Hub struct {
	baseURL    string
	token      string
	client     *http.Client
	maxRetries uint64
}

// New creates a hub client. The base URL must be absolute.
func New(baseURL, token string) (*Hub, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || !parsed.IsAbs() {
		return nil, fmt.Errorf("invalid hub URL %q", baseURL)
	}
	return &Hub{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		client:     &http.Client{Timeout: 2 * time.Minute},
		maxRetries: 4,
	}, nil
}

// permanentStatus reports whether a response status should not be retried.
// Client errors are caller-fixable; server errors and transport failures
// are worth another attempt.
func permanentStatus(status int) bool {
	return status >= 400 && status < 500
}

// do sends the request and maps the response status onto the backoff
// retry/permanent split.
func (h *Hub) do(req *http.Request) error {
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	reqErr := fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	if permanentStatus(resp.StatusCode) {
		return backoff.Permanent(reqErr)
	}
	return reqErr
}

// retry runs op with exponential backoff, honoring ctx cancellation.
func (h *Hub) retry(ctx context.Context, op func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), h.maxRetries), ctx)
	return backoff.Retry(op, b)
}

// postJSON sends a JSON body to the given endpoint with retry.
func (h *Hub) postJSON(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal request body: %w", err)
	}

	return h.retry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("could not create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+h.token)
		req.Header.Set("Content-Type", "application/json")
		return h.do(req)
	})
}
