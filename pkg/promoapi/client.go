// Package promoapi is the client for the remote eligibility/logging service.
// The service is the sole authority for daily spin quota; this client only
// transports the check and log calls.
package promoapi

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

	"github.com/google/uuid"
)

// API is the contract consumed by the session coordinator
type API interface {
	Check(ctx context.Context, name, phone string) (*CheckResponse, error)
	Log(ctx context.Context, req LogRequest) (*LogResponse, error)
}

// CheckResponse is the remote answer to an eligibility check
type CheckResponse struct {
	Allowed    bool   `json:"allowed"`
	SpinNumber int    `json:"spinNumber"`
	FirstSpin  bool   `json:"firstSpin"`
	Message    string `json:"message"`
}

// LogRequest carries one completed spin to the remote service
type LogRequest struct {
	Name       string
	Phone      string
	SpinNumber int
	GiftName   string
	Tier       string
}

// LogResponse is the remote answer to a spin log. AllowedNextSpin is the
// sole authority for whether the wheel re-enables.
type LogResponse struct {
	SpinNumber      int    `json:"spinNumber"`
	AllowedNextSpin bool   `json:"allowedNextSpin"`
	Message         string `json:"message"`
}

// Client represents a promo service client
type Client struct {
	Endpoint        string
	MockAPI         bool
	FallbackTimeout time.Duration
	client          *http.Client
}

// Compile-time check to ensure Client implements the interface
var _ API = (*Client)(nil)

const postTimeout = 10 * time.Second

// NewClient creates a new promo service client
func NewClient(endpoint string, mockAPI bool, fallbackTimeout time.Duration) *Client {
	if fallbackTimeout <= 0 {
		fallbackTimeout = 11 * time.Second
	}
	return &Client{
		Endpoint:        endpoint,
		MockAPI:         mockAPI,
		FallbackTimeout: fallbackTimeout,
		// deadlines come from per-call contexts, not the client
		client: &http.Client{},
	}
}

// Check asks the remote service whether this phone may spin today
func (c *Client) Check(ctx context.Context, name, phone string) (*CheckResponse, error) {
	if c.MockAPI {
		return c.mockCheck(name, phone)
	}

	payload := map[string]interface{}{
		"action": "check",
		"name":   name,
		"phone":  phone,
	}
	var resp CheckResponse
	if err := c.submit(ctx, payload, &resp); err != nil {
		return nil, fmt.Errorf("promo check: %w", err)
	}
	return &resp, nil
}

// Log records a completed spin with the remote service
func (c *Client) Log(ctx context.Context, req LogRequest) (*LogResponse, error) {
	if c.MockAPI {
		return c.mockLog(req)
	}

	payload := map[string]interface{}{
		"action":     "log",
		"name":       req.Name,
		"phone":      req.Phone,
		"spinNumber": req.SpinNumber,
		"giftName":   req.GiftName,
		"tier":       req.Tier,
	}
	var resp LogResponse
	if err := c.submit(ctx, payload, &resp); err != nil {
		return nil, fmt.Errorf("promo log: %w", err)
	}
	return &resp, nil
}

// submit sends the payload over the primary JSON POST transport and falls
// back to the callback-GET transport on any failure. Both transports carry
// the same fields and deliver the same logical response.
func (c *Client) submit(ctx context.Context, payload map[string]interface{}, out interface{}) error {
	body, postErr := c.post(ctx, payload)
	if postErr != nil {
		var fbErr error
		body, fbErr = c.fallbackGet(ctx, payload)
		if fbErr != nil {
			return fmt.Errorf("fallback after %v: %w", postErr, fbErr)
		}
	}
	return json.Unmarshal(body, out)
}

func (c *Client) post(ctx context.Context, payload map[string]interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, postTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("non-OK response: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON from POST")
	}
	return body, nil
}

// fallbackGet re-sends the payload as query parameters with a uniquely named
// callback, the shape script-injection clients use against the same service,
// and unwraps the callback(...) envelope from the response.
func (c *Client) fallbackGet(ctx context.Context, payload map[string]interface{}) ([]byte, error) {
	cb := "brendimo_cb_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:7]

	q := url.Values{}
	for k, v := range payload {
		q.Set(k, fmt.Sprint(v))
	}
	q.Set("callback", cb)

	ctx, cancel := context.WithTimeout(ctx, c.FallbackTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("non-OK response: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)

	// callback(...) envelope; some deployments answer plain JSON here too
	if open := bytes.IndexByte(body, '('); open >= 0 && bytes.HasSuffix(body, []byte(")")) && bytes.HasPrefix(body, []byte(cb)) {
		body = body[open+1 : len(body)-1]
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON from fallback")
	}
	return body, nil
}

// mockCheck mocks the Check method for local runs and testing
func (c *Client) mockCheck(name, phone string) (*CheckResponse, error) {
	return &CheckResponse{
		Allowed:    true,
		SpinNumber: 1,
		FirstSpin:  true,
	}, nil
}

// mockLog mocks the Log method, mirroring the server's three-spins-per-day rule
func (c *Client) mockLog(req LogRequest) (*LogResponse, error) {
	return &LogResponse{
		SpinNumber:      req.SpinNumber,
		AllowedNextSpin: req.SpinNumber < 3,
	}, nil
}
