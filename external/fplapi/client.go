package fplapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/resilience"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://fantasy.premierleague.com/api"

	pathBootstrap = "/bootstrap-static/"
	pathFixtures  = "/fixtures/"

	defaultTimeout     = 10 * time.Second
	defaultBackoffStep = time.Second
	maxResponseBytes   = 8 << 20
	userAgent          = "fpl-squad-optimizer"
)

var errFPLTransient = crerr.New("fpl api transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	BackoffStep    time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the season calendar, fixture difficulties and the player list
// from the public FPL API.
type Client struct {
	httpClient  *fasthttp.Client
	baseURL     string
	timeout     time.Duration
	maxRetries  int
	backoffStep time.Duration
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	flight      resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL, err := validateHTTPBaseURL(baseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid FPL_API_BASE_URL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoffStep := cfg.BackoffStep
	if backoffStep <= 0 {
		backoffStep = defaultBackoffStep
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.IsFailure = isTransient

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		timeout:     timeout,
		maxRetries:  max(cfg.MaxRetries, 0),
		backoffStep: backoffStep,
		logger:      logger,
		breaker: resilience.NewCircuitBreaker("fpl-api", breakerCfg, func(name, from, to string) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}),
	}, nil
}

// BreakerState exposes the breaker state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	raw, err := resilience.Execute(c.breaker, func() ([]byte, error) {
		body, _, err := c.flight.Do(path, func() ([]byte, error) {
			return c.fetch(ctx, c.baseURL+path)
		})
		return body, err
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "fpl api circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return fmt.Errorf("%w: fpl api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if isTransient(err) {
			return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode fpl api payload %s", path)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String("fplapi.url", fullURL))
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, fullURL)
		if err == nil {
			if span.IsRecording() {
				span.SetAttributes(attribute.Int("fplapi.attempts", attempt+1))
			}
			return body, nil
		}
		lastErr = err
		if !isTransient(err) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * c.backoffStep
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "fpl api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errFPLTransient, err)
	}

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return append([]byte(nil), resp.Body()...), nil
	}
	if isRetryableStatus(status) {
		return nil, fmt.Errorf("%w: fpl api status=%d body=%s", errFPLTransient, status, abbreviateBody(resp.Body()))
	}
	return nil, fmt.Errorf("fpl api status=%d body=%s", status, abbreviateBody(resp.Body()))
}

func isTransient(err error) bool {
	return errors.Is(err, errFPLTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "...(truncated)"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}
