// Package client talks to the querybridge HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"querybridge/internal/model"
	"querybridge/internal/service"
)

const defaultTimeout = 60 * time.Second

// APIError is a non-envelope error answered by the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// QueryResponse is the /api/query envelope, which also echoes the submitted text.
type QueryResponse struct {
	model.QueryResult
	Query string `json:"query"`
}

// Client is a thin JSON client for the HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL (for example http://localhost:8080).
// A nil hc gets a traced client with a 60s timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Query submits free text to the intent router. The envelope is returned for any
// status the server answers with one, so failures still carry their message.
func (c *Client) Query(ctx context.Context, text string) (*QueryResponse, error) {
	var out QueryResponse
	if err := c.envelope(ctx, http.MethodPost, "/api/query", map[string]string{"query": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Command submits an operator command.
func (c *Client) Command(ctx context.Context, text string) (*model.QueryResult, error) {
	var out model.QueryResult
	if err := c.envelope(ctx, http.MethodPost, "/api/command", map[string]string{"command": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tools fetches the capability listing.
func (c *Client) Tools(ctx context.Context) (*service.ToolCatalog, error) {
	var out struct {
		Data struct {
			Tools service.ToolCatalog `json:"tools"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tools", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data.Tools, nil
}

// Examples fetches the example phrases grouped by category.
func (c *Client) Examples(ctx context.Context) (map[string][]string, error) {
	var out struct {
		Data struct {
			Examples map[string][]string `json:"examples"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/examples", nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Examples, nil
}

// Health fetches the per-backend health report. An unhealthy report is
// answered with 503 and still decoded.
func (c *Client) Health(ctx context.Context) (*service.HealthReport, error) {
	var out service.HealthReport
	if err := c.envelope(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Backups lists recorded backups.
func (c *Client) Backups(ctx context.Context, limit, offset int) (*service.BackupListResult, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out service.BackupListResult
	if err := c.do(ctx, http.MethodGet, "/api/backups?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// envelope decodes the body whatever the status, failing only when the body is not JSON.
func (c *Client) envelope(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 && isErrorPayload(b) {
		return apiError(resp, b)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return apiError(resp, b)
	}
	return nil
}

func isErrorPayload(b []byte) bool {
	var probe struct {
		Error *APIError `json:"error"`
	}
	return json.Unmarshal(b, &probe) == nil && probe.Error != nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, b)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func apiError(resp *http.Response, body []byte) error {
	e := &APIError{StatusCode: resp.StatusCode, RequestID: resp.Header.Get("X-Request-ID")}
	var payload struct {
		Error APIError `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Error.Code
		e.Message = payload.Error.Message
	}
	return e
}
