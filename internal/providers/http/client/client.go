package client

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/shared/id"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// Client wraps resty with rate limiting and request ids
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter

	logger *logging.Logger
}

// Options configures a Client
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// RateLimit is requests per second; zero or less means unlimited
	RateLimit float64
	Logger    *logging.Logger
}

// NewClient creates an HTTP client
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	// Pooled transport only; a publish must never be replayed
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetRetryCount(0).
		SetLogger(logger.Sugar()).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTransport(retryClient.HTTPClient.Transport)

	if opts.Timeout > 0 {
		restyClient.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		restyClient.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{
		Resty:   restyClient,
		Limiter: newLimiter(opts.RateLimit),
		logger:  logger,
	}
}

// newLimiter builds a limiter for rps requests per second; zero or less is unlimited
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Request creates a new request with rate limiting and a fresh request id
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	requestID := id.NewRequestID()
	c.logger.Debug("http request", zap.String("request_id", string(requestID)))

	return c.Resty.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, string(requestID)), nil
}

// Logger returns the client's logger
func (c *Client) Logger() *logging.Logger {
	return c.logger
}

// IsSuccess reports whether resp carries a 2xx status
func IsSuccess(resp *resty.Response) bool {
	return resp != nil && resp.StatusCode() >= 200 && resp.StatusCode() < 300
}
