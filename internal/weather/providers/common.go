package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/classy-weather/internal/metrics"
)

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// maxErrorBody caps how much of a failed response is read for its reason.
const maxErrorBody = 4 << 10

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      20 * time.Second,
		IsSuccessful: healthyUpstream,
	})
}

// healthyUpstream decides what counts toward tripping the breaker. Requests
// the caller abandoned and client errors (other than 429) say nothing about
// the upstream's health.
func healthyUpstream(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, errUnexpected)
}

// upstreamError is the body Open-Meteo returns with 4xx responses.
type upstreamError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// getJSON performs a single GET through the circuit breaker and decodes a
// 2xx JSON body into out. There are no retries: a failed call is reported
// to the caller as-is.
func getJSON(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	upstream string,
	url string,
	out any,
) error {
	if client == nil {
		return errNoHTTPClient
	}

	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}

		var ue upstreamError
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(body, &ue) == nil && ue.Reason != "" {
			return nil, fmt.Errorf("%w: %d: %s", errUnexpected, resp.StatusCode, ue.Reason)
		}
		return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	})
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(upstream, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s: %w: %v", upstream, errCircuitOpen, err)
		}
		return fmt.Errorf("%s: %w", upstream, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fmt.Errorf("%s: unexpected result type from circuit breaker", upstream)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(upstream, "malformed").Inc()
		return fmt.Errorf("%s: decode response: %w", upstream, err)
	}

	metrics.UpstreamRequests.WithLabelValues(upstream, "ok").Inc()
	return nil
}
