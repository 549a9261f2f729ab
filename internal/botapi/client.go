// Package botapi is the typed HTTP client for the bot's control API. Every
// call performs one authenticated request and returns either a decoded
// payload or a classified *Error; retrying is the caller's concern.
package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/botpanel/botpanel/internal/configtree"
	"github.com/botpanel/botpanel/internal/logging"
)

const headerAPIKey = "X-API-Key"

// Timeouts holds per-endpoint request deadlines.
type Timeouts struct {
	Status   time.Duration
	Control  time.Duration
	Settings time.Duration
	History  time.Duration
}

// DefaultTimeouts mirrors the backend's expected response times.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Status:   10 * time.Second,
		Control:  15 * time.Second,
		Settings: 15 * time.Second,
		History:  20 * time.Second,
	}
}

// Client talks to the bot backend.
type Client struct {
	baseURL    string
	apiKey     string
	timeouts   Timeouts
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeouts overrides the per-endpoint deadlines.
func WithTimeouts(t Timeouts) Option {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client. An empty baseURL is the one fatal configuration
// error.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, &Error{Kind: ErrKindConfig, Message: "backend URL is not configured"}
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeouts:   DefaultTimeouts(),
		httpClient: &http.Client{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.RedactKey(apiKey)
	return c, nil
}

// Status fetches the bot's lifecycle snapshot.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	body, err := c.get(ctx, "/status", c.timeouts.Status)
	if err != nil {
		return nil, err
	}
	var status Status
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, &Error{Kind: ErrKindDecode, Endpoint: "/status", Message: err.Error(), Err: err}
	}
	if status.State == "" {
		return nil, &Error{Kind: ErrKindSchema, Endpoint: "/status", Message: "response has no state field"}
	}
	return &status, nil
}

// Control sends a start or stop command and returns the backend's message.
func (c *Client) Control(ctx context.Context, action ControlAction) (string, error) {
	payload, _ := json.Marshal(map[string]string{"action": string(action)})
	body, err := c.post(ctx, "/control", payload, c.timeouts.Control)
	if err != nil {
		return "", err
	}
	return decodeMessage("/control", body)
}

// Logs fetches the current log tail. Each poll fully replaces the previous
// batch.
func (c *Client) Logs(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/logs", c.timeouts.Status)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Logs *[]string `json:"logs"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{Kind: ErrKindDecode, Endpoint: "/logs", Message: err.Error(), Err: err}
	}
	if envelope.Logs == nil {
		return nil, &Error{Kind: ErrKindSchema, Endpoint: "/logs", Message: "response has no logs field"}
	}
	return *envelope.Logs, nil
}

// History fetches every profile's action history.
func (c *Client) History(ctx context.Context) (History, error) {
	body, err := c.get(ctx, "/history", c.timeouts.History)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Profiles *History `json:"profiles"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{Kind: ErrKindDecode, Endpoint: "/history", Message: err.Error(), Err: err}
	}
	if envelope.Profiles == nil {
		return nil, &Error{Kind: ErrKindSchema, Endpoint: "/history", Message: "response has no profiles field"}
	}
	return *envelope.Profiles, nil
}

// Stats fetches per-profile aggregate statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	body, err := c.get(ctx, "/all_logs", c.timeouts.History)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Profiles *Stats `json:"profiles"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{Kind: ErrKindDecode, Endpoint: "/all_logs", Message: err.Error(), Err: err}
	}
	if envelope.Profiles == nil {
		return nil, &Error{Kind: ErrKindSchema, Endpoint: "/all_logs", Message: "response has no profiles field"}
	}
	return *envelope.Profiles, nil
}

// Settings fetches the settings document as an order-preserving tree.
func (c *Client) Settings(ctx context.Context) (*configtree.Value, error) {
	body, err := c.get(ctx, "/settings", c.timeouts.Settings)
	if err != nil {
		return nil, err
	}
	doc, err := configtree.Decode(body)
	if err != nil {
		return nil, &Error{Kind: ErrKindDecode, Endpoint: "/settings", Message: err.Error(), Err: err}
	}
	if doc.Kind() != configtree.KindMap {
		return nil, &Error{Kind: ErrKindSchema, Endpoint: "/settings", Message: "settings document is not an object"}
	}
	return doc, nil
}

// SaveSettings pushes the full updated settings document and returns the
// backend's message.
func (c *Client) SaveSettings(ctx context.Context, doc *configtree.Value) (string, error) {
	payload, err := configtree.Encode(doc)
	if err != nil {
		return "", &Error{Kind: ErrKindDecode, Endpoint: "/settings", Message: err.Error(), Err: err}
	}
	body, err := c.post(ctx, "/settings", payload, c.timeouts.History)
	if err != nil {
		return "", err
	}
	return decodeMessage("/settings", body)
}

func (c *Client) get(ctx context.Context, endpoint string, timeout time.Duration) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, timeout)
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte, timeout time.Duration) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, payload, timeout)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, &Error{Kind: ErrKindConfig, Endpoint: endpoint, Message: err.Error(), Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := classifyTransport(endpoint, err)
		c.logger.Warn("backend request failed",
			"endpoint", endpoint, "kind", apiErr.Kind.String(), "error", apiErr.Message)
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrKindConnection, Endpoint: endpoint, Message: err.Error(), Err: err}
	}

	c.logger.Debug("backend request",
		"method", method, "endpoint", endpoint,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:     ErrKindHTTP,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  errorMessage(data),
		}
	}

	return data, nil
}

// errorMessage extracts the backend's {error: ...} text, falling back to the
// raw body.
func errorMessage(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(body))
}

func decodeMessage(endpoint string, body []byte) (string, error) {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &Error{Kind: ErrKindDecode, Endpoint: endpoint, Message: err.Error(), Err: err}
	}
	if envelope.Message == "" {
		return fmt.Sprintf("%s accepted", endpoint), nil
	}
	return envelope.Message, nil
}
