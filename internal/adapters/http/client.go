package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"ondus/internal/domain"
)

const (
	// Rate limiting configuration.
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 20
)

// Options configures the adapter.
type Options struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	RequestsPerSecond  float64
	Burst              int
}

// Adapter is a domain.Transport backed by resty with rate limiting.
// Requests are sent once; resty retries stay disabled.
type Adapter struct {
	client  *resty.Client
	logger  *slog.Logger
	limiter *rate.Limiter
}

var _ domain.Transport = (*Adapter)(nil)

// NewAdapter creates a new HTTP adapter.
func NewAdapter(opts Options, logger *slog.Logger) *Adapter {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}

	client := resty.New().
		SetRetryCount(0).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // User-configurable for self-signed certificates
		})
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	a := &Adapter{
		client:  client,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return a.limiter.Wait(req.Context())
	})

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
			"authorized", req.Header.Get("Authorization") != "",
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return a
}

// Execute sends req and returns the raw response with an unread body.
// The caller owns the body.
func (a *Adapter) Execute(ctx context.Context, req domain.Request) (*http.Response, error) {
	request := a.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	for key, values := range req.Header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	resp, err := request.Execute(req.Method, req.URL)
	if err != nil {
		if resp != nil && resp.RawResponse != nil && resp.RawResponse.Body != nil {
			_ = resp.RawResponse.Body.Close()
		}
		return nil, fmt.Errorf("failed to execute %s request: %w", req.Method, err)
	}
	return resp.RawResponse, nil
}
