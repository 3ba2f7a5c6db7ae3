package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/agenthands/patientdesk/internal/core/common"
	"github.com/agenthands/patientdesk/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

type Options struct {
	BaseURL string
	// MaxRPS caps outgoing requests per second. Zero means unlimited.
	MaxRPS float64
	// HTTPClient overrides the default instrumented client.
	HTTPClient *http.Client
}

// Client talks to the records backend. It never retries and sets no timeout
// of its own; the caller's context bounds every call.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	c := &Client{
		baseURL: base,
		http:    httpClient,
	}
	if opts.MaxRPS > 0 {
		burst := int(opts.MaxRPS)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), burst)
	}
	return c, nil
}

// Send issues a request and returns the raw JSON body of a 2xx response.
// A non-nil body is encoded as JSON.
func (c *Client) Send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	data, err := c.do(ctx, method, path, contentType, reader)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (data []byte, err error) {
	done := metrics.TimeBackend(route(path))
	defer func() { done(err == nil) }()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Method: method, Path: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id := common.RequestID(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: errorMessage(data, resp.StatusCode),
		}
	}
	return data, nil
}

// route is the metrics label for a request path: no query string and no
// record ids.
func route(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if strings.HasPrefix(path, "/patients/") {
		return "/patients/{id}"
	}
	return path
}

func decode[T any](path string, data []byte) (T, error) {
	v, err := common.DecodeJSON[T](data)
	if err != nil {
		return v, fmt.Errorf("decode response from %s: %w", path, err)
	}
	return v, nil
}
