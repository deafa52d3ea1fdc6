// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/riskwatch-tui/internal/model"
)

// =============================================================================
// CONSTANTS AND ERRORS
// =============================================================================

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultK is the number of context items requested per query.
	DefaultK = 5

	// maxResponseSize caps how much of a response body we will read (10 MB).
	maxResponseSize = 10 * 1024 * 1024
)

// ErrBackendUnavailable is the single failure kind a caller sees. Connection
// refusals, timeouts, non-2xx statuses, and malformed bodies all collapse
// into it; the distinctions are logged, not surfaced.
var ErrBackendUnavailable = errors.New("backend unavailable")

// BackendError carries the HTTP status of a rejected request. It unwraps to
// ErrBackendUnavailable so callers only ever match the single failure kind.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend unavailable: status %d: %s", e.Status, e.Message)
}

func (e *BackendError) Unwrap() error {
	return ErrBackendUnavailable
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the retrieval backend over one of the two protocols.
// A zero timeout means requests block until the context is cancelled.
type Client struct {
	baseURL    string
	protocol   Protocol
	k          int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a backend client with defaults. Use the With* builders
// to override.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		protocol:   ProtocolChat,
		k:          DefaultK,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(4), 1),
	}
}

// WithBaseURL sets the backend base URL.
func (c *Client) WithBaseURL(url string) *Client {
	if url != "" {
		c.baseURL = url
	}
	return c
}

// WithProtocol selects the request protocol.
func (c *Client) WithProtocol(p Protocol) *Client {
	if p != "" {
		c.protocol = p
	}
	return c
}

// WithK sets how many context items each query requests.
func (c *Client) WithK(k int) *Client {
	if k > 0 {
		c.k = k
	}
	return c
}

// WithTimeout sets a per-request timeout. Zero disables it.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Protocol returns the protocol the client sends.
func (c *Client) Protocol() Protocol {
	return c.protocol
}

// =============================================================================
// QUERY
// =============================================================================

// Query sends one request for the given query text and returns the backend's
// answer. history holds the prior turns only; the retrieve protocol ignores
// it. Exactly one HTTP request is made per call, never a retry: the caller
// resolves the conversation either way and the user may simply resubmit.
func (c *Client) Query(ctx context.Context, query string, history []HistoryEntry) (*Answer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var payload any
	switch c.protocol {
	case ProtocolRetrieve:
		payload = retrieveRequest{Query: query, K: c.k}
	default:
		if history == nil {
			history = []HistoryEntry{}
		}
		payload = chatRequest{Query: query, History: history, K: c.k}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + c.protocol.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logRequest(url, len(history))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[backend] request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	return c.readResponse(resp)
}

// readResponse decodes the shared response shape, collapsing every failure
// into ErrBackendUnavailable.
func (c *Client) readResponse(resp *http.Response) (*Answer, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		log.Printf("[backend] read body: %v", err)
		return nil, fmt.Errorf("%w: read body: %v", ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[backend] status %d (%d bytes)", resp.StatusCode, len(data))
		return nil, &BackendError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var parsed queryResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		log.Printf("[backend] malformed body: %v", err)
		return nil, fmt.Errorf("%w: malformed response: %v", ErrBackendUnavailable, err)
	}
	if parsed.Response == nil {
		log.Printf("[backend] response field missing")
		return nil, fmt.Errorf("%w: response field missing", ErrBackendUnavailable)
	}

	answer := &Answer{Content: *parsed.Response, Context: parsed.Context}
	if answer.Context == nil {
		answer.Context = []model.ContextItem{}
	}

	c.logResponse(resp.StatusCode, len(answer.Content), len(answer.Context))
	return answer, nil
}

// logRequest records the outbound call without the body. Query text can hold
// sensitive company names, so only shape is logged.
func (c *Client) logRequest(url string, historyLen int) {
	log.Printf("[backend] POST %s protocol=%s k=%d history=%d", url, c.protocol, c.k, historyLen)
}

func (c *Client) logResponse(status, contentLen, contextLen int) {
	log.Printf("[backend] status=%d answer_chars=%d findings=%d", status, contentLen, contextLen)
}
