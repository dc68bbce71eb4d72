// Package api is the typed gateway to the PlanBrew backend. Every call is
// a single best-effort round trip: a bearer token is attached when the
// session holds one, the {success, data, message} envelope is unwrapped,
// and failures surface the server message. No retry, no caching — callers
// own their own policy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	logger  *zap.Logger
}

// envelope is the backend's response wrapper convention.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// NewClient creates a gateway rooted at baseURL, e.g.
// "http://localhost:5001/api/v1".
func NewClient(baseURL string, session *Session, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		session: session,
		logger:  logger,
	}, nil
}

// Get resolves the data payload of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

// Post resolves the data payload of POST path into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, nil)
}

// Patch resolves the data payload of PATCH path into out. Used for the
// insight read acknowledgement.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, nil)
}

// do performs one round trip. out may be nil when the caller only cares
// about success. extra headers override nothing, they append.
func (c *Client) do(ctx context.Context, method, path string, body, out any, extra http.Header) error {
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token := c.session.Current(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{Message: genericFailure}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: genericFailure}
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID))

	if !env.Success {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
