package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	outboundRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_http_requests_total",
			Help: "Total number of outbound HTTP requests",
		},
		[]string{"method", "status"},
	)

	outboundRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outbound_http_request_duration_seconds",
			Help:    "Outbound HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "status"},
	)
)

// Client sends one attempt per call. Server errors (5xx) are returned to the
// caller as responses but count against the circuit breaker.
type Client struct {
	client *http.Client
	cb     *CircuitBreaker
}

func NewClient(timeout time.Duration, maxFailures int, cbInterval time.Duration) *Client {
	return NewClientWithTransport(&http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, NewCircuitBreaker(maxFailures, cbInterval))
}

func NewClientWithTransport(hc *http.Client, cb *CircuitBreaker) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if cb == nil {
		cb = NewCircuitBreaker(5, 30*time.Second)
	}
	return &Client{client: hc, cb: cb}
}

func (c *Client) Breaker() *CircuitBreaker {
	return c.cb
}

func (c *Client) Get(ctx context.Context, baseURL string, queryParams map[string]string, headers map[string]string) (*http.Response, error) {
	return c.do(ctx, func() (*http.Request, error) {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}

		q := u.Query()
		for k, v := range queryParams {
			q.Add(k, v)
		}
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}

		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
}

func (c *Client) Post(ctx context.Context, url string, body any, headers map[string]string) (*http.Response, error) {
	return c.do(ctx, func() (*http.Request, error) {
		var bodyReader io.Reader
		if body != nil {
			jsonData, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			bodyReader = bytes.NewBuffer(jsonData)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
		if err != nil {
			return nil, err
		}

		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
}

func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
}

func (c *Client) do(ctx context.Context, reqFactory func() (*http.Request, error)) (*http.Response, error) {
	// Build first: a request that cannot be built must not consume the
	// half-open trial.
	req, err := reqFactory()
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if err := c.cb.CheckBeforeRequest(); err != nil {
		logger.Warn("request blocked by circuit breaker", zap.Error(err))
		return nil, err
	}

	start := time.Now()
	response, err := c.client.Do(req)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		c.cb.OnFailure()
		outboundRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		outboundRequestDuration.WithLabelValues(req.Method, "error").Observe(elapsed)
		logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	status := strconv.Itoa(response.StatusCode)
	outboundRequestsTotal.WithLabelValues(req.Method, status).Inc()
	outboundRequestDuration.WithLabelValues(req.Method, status).Observe(elapsed)

	if response.StatusCode >= 500 {
		c.cb.OnFailure()
	} else {
		c.cb.OnSuccess()
	}

	logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", response.StatusCode),
	)
	return response, nil
}
