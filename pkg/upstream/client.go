// Package upstream provides the shared HTTP plumbing for the third-party
// commerce services the proxy fronts: JSON requests with a fixed timeout,
// single-attempt semantics, and error classification.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for upstream requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_upstream_requests_total",
		Help: "Total upstream requests by service and status",
	}, []string{"service", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proxy_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by service",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"service"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_upstream_errors_total",
		Help: "Total upstream errors by service and kind",
	}, []string{"service", "kind"})
)

// Client performs JSON requests against one upstream service.
// Every call carries the configured timeout and is attempted exactly once;
// there is no retry and no backoff.
type Client struct {
	httpClient *http.Client
	service    string
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a client for the named upstream service.
func NewClient(service string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{},
		service:    service,
		timeout:    timeout,
		logger:     log.With().Str("component", "upstream").Str("service", service).Logger(),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetJSON performs a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, headers, nil, out)
}

// PostJSON performs a POST request with a JSON body and decodes the JSON
// response into out.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return ShapeError(c.service, "encode request body", err)
	}
	return c.doJSON(ctx, http.MethodPost, url, headers, payload, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, headers map[string]string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return ShapeError(c.service, "create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamRequestDuration.WithLabelValues(c.service).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := classifyTransport(err)
		upstreamErrorsTotal.WithLabelValues(c.service, string(kind)).Inc()
		upstreamRequestsTotal.WithLabelValues(c.service, "network_error").Inc()
		c.logger.Warn().
			Err(err).
			Str("endpoint", redactURL(url)).
			Str("error_kind", string(kind)).
			Msg("Upstream request failed")
		if kind == KindTimeout {
			return Timeout(c.service, err)
		}
		return Transport(c.service, err)
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(c.service, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(c.service, string(KindHTTP)).Inc()
		return Transport(c.service, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		upstreamErrorsTotal.WithLabelValues(c.service, string(KindNotFound)).Inc()
		return NotFound(c.service, "resource not found")
	}
	if resp.StatusCode >= 400 {
		upstreamErrorsTotal.WithLabelValues(c.service, string(KindHTTP)).Inc()
		c.logger.Warn().
			Str("endpoint", redactURL(url)).
			Int("status_code", resp.StatusCode).
			Msg("Upstream returned error status")
		return HTTPError(c.service, resp.StatusCode, truncate(string(raw), 256))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			upstreamErrorsTotal.WithLabelValues(c.service, string(KindShape)).Inc()
			return ShapeError(c.service, "decode response body", err)
		}
	}

	return nil
}

// redactURL strips the query string and fragment before a URL is
// logged; query parameters carry upstream credentials.
func redactURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// classifyTransport separates timeouts from other transport failures.
func classifyTransport(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindHTTP
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
