// Package client is the HTTP client for the flow API: loading and
// saving flow definitions, listing executions, and triggering flows
// over their webhook surface.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/randalmurphal/floweditor/pkg/floweditor/execution"
	"github.com/randalmurphal/floweditor/pkg/floweditor/observability"
)

// webhookSecretHeader carries the shared secret on webhook triggers.
const webhookSecretHeader = "X-Webhook-Secret"

// APIError is a non-2xx response from the flow API.
type APIError struct {
	// StatusCode is the HTTP status.
	StatusCode int
	// Message is the server's error message, or the status text when
	// the body carried none.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// Client talks to the flow API. All methods take a context and are
// safe for concurrent use. A failed call never mutates caller state:
// a save that errors leaves the in-memory graph exactly as edited.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	webhookSecret string
	logger        *slog.Logger
	metrics       observability.MetricsRecorder
	spans         observability.SpanManager
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client.
// Default: http.Client with a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithWebhookSecret sets the shared secret sent on webhook triggers.
func WithWebhookSecret(secret string) Option {
	return func(c *Client) { c.webhookSecret = secret }
}

// WithLogger sets the structured logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics enables OTel metrics for API calls.
func WithMetrics(enabled bool) Option {
	return func(c *Client) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		}
	}
}

// WithTracing enables OTel spans for API calls.
func WithTracing(enabled bool) Option {
	return func(c *Client) {
		if enabled {
			c.spans = observability.NewSpanManager()
		}
	}
}

// New creates a Client for the given base URL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		metrics:    observability.NoopMetrics{},
		spans:      observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetFlow fetches a flow definition by ID, nodes in chain form.
func (c *Client) GetFlow(ctx context.Context, id string) (*Flow, error) {
	var flow Flow
	if err := c.do(ctx, http.MethodGet, "/flows/"+url.PathEscape(id), nil, &flow); err != nil {
		return nil, fmt.Errorf("get flow %s: %w", id, err)
	}
	return &flow, nil
}

// SaveFlow persists a flow definition: POST when the flow has no ID
// yet, PUT otherwise. The body is exactly the chain form; callers are
// expected to have validated the graph before converting. Returns the
// server's copy (assigned ID, bumped version).
func (c *Client) SaveFlow(ctx context.Context, flow *Flow) (*Flow, error) {
	ctx, span := c.spans.StartSaveSpan(ctx, flow.ID)

	method, path := http.MethodPost, "/flows"
	if flow.ID != "" {
		method, path = http.MethodPut, "/flows/"+url.PathEscape(flow.ID)
	}

	var saved Flow
	err := c.do(ctx, method, path, flow, &saved)
	c.spans.EndSpanWithError(span, err)
	c.metrics.RecordSave(ctx, flow.ID, err == nil)
	if err != nil {
		observability.LogSaveError(c.logger, flow.ID, err)
		return nil, fmt.Errorf("save flow: %w", err)
	}
	observability.LogSave(c.logger, saved.ID, len(saved.Nodes))
	return &saved, nil
}

// executionsPage is the wire shape of the execution listing endpoint.
type executionsPage struct {
	Executions []execution.FlowExecution `json:"executions"`
	Total      int                       `json:"total"`
}

// ListExecutions fetches one page of a flow's run history, most
// recent first. Returns the page and the total record count for
// pagination.
func (c *Client) ListExecutions(ctx context.Context, flowID string, page, pageSize int) ([]execution.FlowExecution, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("sort", "startedAt:desc")

	var result executionsPage
	path := "/flows/" + url.PathEscape(flowID) + "/executions?" + q.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, 0, fmt.Errorf("list executions for flow %s: %w", flowID, err)
	}
	return result.Executions, result.Total, nil
}

// TriggerWebhook starts a flow run through its webhook surface. The
// input map supplies the input node's fields. When the client carries
// a webhook secret it is sent in the shared-secret header. The
// returned execution carries TriggeredBy "webhook".
func (c *Client) TriggerWebhook(ctx context.Context, slug string, input map[string]any) (*execution.FlowExecution, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode webhook input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/webhooks/flows/"+url.PathEscape(slug), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.webhookSecret != "" {
		req.Header.Set(webhookSecretHeader, c.webhookSecret)
	}

	var exec execution.FlowExecution
	if err := c.send(req, &exec); err != nil {
		return nil, fmt.Errorf("trigger flow %s: %w", slug, err)
	}
	return &exec, nil
}

// do builds and sends one API request. in is encoded as the JSON body
// when non-nil; the response body is decoded into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send executes the request and decodes the response.
// Non-2xx responses become *APIError.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError extracts the server's error message from a non-2xx
// response, falling back to the HTTP status text.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
