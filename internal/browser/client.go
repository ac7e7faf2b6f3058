package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"evalgo.org/wnbrowser/internal/config"
)

// Response is the outcome of one request: the decoded document when the
// body was a Mason document, otherwise the raw body text.
type Response struct {
	StatusCode int
	Document   *Document
	Text       string
}

// OK reports whether the request succeeded.
func (r *Response) OK() bool {
	return r.StatusCode < 400
}

// Client performs the HTTP requests the browser loop asks for. Hrefs come
// straight out of controls and are resolved against the configured base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the API at the configured address.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Client.Timeout},
		baseURL:    strings.TrimRight(cfg.Client.APIURL, "/"),
	}
}

// Get fetches the resource behind an href.
func (c *Client) Get(ctx context.Context, href string) (*Response, error) {
	return c.do(ctx, http.MethodGet, href, nil)
}

// Submit sends data to the href using the control's method. A nil data map
// sends no body, which is how delete controls are driven.
func (c *Client) Submit(ctx context.Context, method, href string, data map[string]any) (*Response, error) {
	return c.do(ctx, method, href, data)
}

func (c *Client) do(ctx context.Context, method, href string, data map[string]any) (*Response, error) {
	var body io.Reader
	if data != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(data); err != nil {
			return nil, err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+href, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.mason+json, application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, href, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &Response{StatusCode: resp.StatusCode}
	if doc, err := ParseDocument(payload); err == nil {
		result.Document = doc
	} else {
		result.Text = string(payload)
	}
	return result, nil
}
