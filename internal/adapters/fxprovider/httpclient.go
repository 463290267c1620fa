package fxprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// HTTPClientConfig holds the shared transport policy for provider adapters.
type HTTPClientConfig struct {
	BaseURL    string
	Timeout    time.Duration // per-attempt timeout, default 5s
	MaxRetries int           // retries after the first attempt, default 2
	Backoff    time.Duration // initial backoff interval, default 500ms
}

func (c HTTPClientConfig) withDefaults() HTTPClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 2
	}
	if c.Backoff <= 0 {
		c.Backoff = 500 * time.Millisecond
	}
	return c
}

// HTTPClient applies the uniform retry/backoff/jitter/timeout policy shared
// by all provider adapters. Retries happen on 429, 5xx and transport errors;
// other 4xx responses fail immediately. A Retry-After header overrides the
// computed backoff. Exhaustion surfaces as *ProviderError.
type HTTPClient struct {
	config HTTPClientConfig
	client *http.Client
	logger *slog.Logger
}

// NewHTTPClient creates a client for the given base URL and policy.
func NewHTTPClient(config HTTPClientConfig, logger *slog.Logger) *HTTPClient {
	config = config.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// GetJSON performs a GET against path with the given query parameters and
// decodes the JSON response body into out.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	requestURL := c.buildURL(path, query)
	attempts := c.config.MaxRetries + 1

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.Backoff
	policy.RandomizationFactor = 0.2
	policy.MaxElapsedTime = 0

	var lastErr *ProviderError
	for attempt := 1; attempt <= attempts; attempt++ {
		body, retryable, retryAfter, err := c.doAttempt(ctx, requestURL)
		if err == nil {
			if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
				return &ProviderError{Code: ErrCodeBadPayload, Message: "invalid JSON response: " + decodeErr.Error()}
			}
			return nil
		}

		lastErr = err
		if !retryable || attempt == attempts {
			break
		}

		delay := policy.NextBackOff()
		if retryAfter > 0 {
			delay = retryAfter
		}
		c.logger.Warn("HTTP request failed, retrying",
			slog.String("url", requestURL),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return &ProviderError{Code: ErrCodeUnavailable, Message: "request cancelled: " + ctx.Err().Error()}
		case <-time.After(delay):
		}
	}

	return lastErr
}

// doAttempt runs a single request. It returns the body on success, or the
// failure together with whether the policy allows a retry and any
// server-provided Retry-After delay.
func (c *HTTPClient) doAttempt(ctx context.Context, requestURL string) (body []byte, retryable bool, retryAfter time.Duration, provErr *ProviderError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, 0, &ProviderError{Code: ErrCodeHTTP, Message: "failed to build request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, 0, &ProviderError{Code: ErrCodeUnavailable, Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, 0, &ProviderError{Code: ErrCodeHTTP, Status: resp.StatusCode, Message: "failed to read response body: " + err.Error()}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, false, 0, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, parseRetryAfter(resp.Header.Get("Retry-After")), &ProviderError{
			Code:    ErrCodeHTTP,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, truncate(string(data), 200)),
		}
	default:
		return nil, false, 0, &ProviderError{
			Code:    ErrCodeHTTP,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("upstream returned %d: %s", resp.StatusCode, truncate(string(data), 200)),
		}
	}
}

func (c *HTTPClient) buildURL(path string, query url.Values) string {
	base := strings.TrimRight(c.config.BaseURL, "/")
	suffix := "/" + strings.TrimLeft(path, "/")
	if len(query) == 0 {
		return base + suffix
	}
	return base + suffix + "?" + query.Encode()
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if delay := time.Until(at); delay > 0 {
			return delay
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
