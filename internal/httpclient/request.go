package httpclient

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/couchbaselabs/gosocial/internal/leakcheck"
)

// RequestOptions is the set of options available to a request.
type RequestOptions struct {
	// Path is appended to the base path of the client.
	Path string

	// Query is the URL encoded query string, without a leading question mark.
	Query string

	// TokenProvider returns the bearer token to send, or an empty string for none.
	TokenProvider func() string

	// MaxRetries specifies the maximum number of times a request is retried.
	MaxRetries uint32
}

// Response is a completed response whose body has been read in full.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get executes a GET request. Transport errors and transient status codes are retried with
// backoff, up to MaxRetries times. Any other response, successful or not, is returned as is; the
// last response is also returned when retries run out on a transient status code.
func (c *Client) Get(ctx context.Context, opts *RequestOptions) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reqURI := c.requestURI(opts.Path, opts.Query)
	uniqueID := uuid.NewString()

	var retries uint32

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURI, nil)
		if err != nil {
			return nil, newObfuscateErrorWrapper("failed to create http request", err)
		}

		req.Header.Set("Accept", "application/json")

		if opts.TokenProvider != nil {
			if token := opts.TokenProvider(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		// The query string is left out of logs as it may carry an API key.
		c.logger.Trace("Sending request %s to %s%s (attempt %d)", uniqueID, c.basePath, opts.Path, retries+1)

		resp, err := c.innerClient.Do(req)
		if err != nil {
			c.logger.Trace("Received HTTP Response for ID=%s, errored: %v", uniqueID, err)

			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, newRequestError(err, c.host, opts.Path, 0).withRetries(retries)
			}

			sendErr := newObfuscateErrorWrapper("failed to send request", err)

			retryErr := c.waitForRetry(ctx, retries, opts.MaxRetries)
			if retryErr != nil {
				if errors.Is(retryErr, errRetriesExhausted) {
					retryErr = ErrServiceUnavailable
				}

				return nil, newRequestError(retryErr, c.host, opts.Path, 0).
					withErrorText(sendErr.Error()).
					withRetries(retries)
			}

			retries++

			continue
		}

		c.logger.Trace("Received HTTP Response for ID=%s, status=%d", uniqueID, resp.StatusCode)

		resp = leakcheck.WrapHTTPResponse(resp) // nolint: bodyclose

		body, readErr := io.ReadAll(resp.Body)

		closeErr := resp.Body.Close()
		if closeErr != nil {
			c.logger.Debug("Failed to close response body for ID=%s: %v", uniqueID, closeErr)
		}

		if readErr != nil {
			return nil, newRequestError(newObfuscateErrorWrapper("failed to read response body", readErr),
				c.host, opts.Path, resp.StatusCode).withRetries(retries)
		}

		if isRetriableStatus(resp.StatusCode) {
			retryErr := c.waitForRetry(ctx, retries, opts.MaxRetries)
			if retryErr == nil {
				c.logger.Debug("Retrying request %s after status %d", uniqueID, resp.StatusCode)

				retries++

				continue
			}

			if !errors.Is(retryErr, errRetriesExhausted) {
				return nil, newRequestError(retryErr, c.host, opts.Path, resp.StatusCode).
					withErrorText(string(body)).
					withRetries(retries)
			}
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}
}

var errRetriesExhausted = errors.New("retries exhausted")

func isRetriableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}

// waitForRetry sleeps for the backoff of the given attempt. It fails without sleeping if no
// retries are left or the backoff would run past the context deadline.
func (c *Client) waitForRetry(ctx context.Context, retries, maxRetries uint32) error {
	if retries >= maxRetries {
		return errRetriesExhausted
	}

	b := c.backoff(retries)

	if deadline, ok := ctx.Deadline(); ok {
		if time.Now().Add(b).After(deadline) {
			return ErrContextDeadlineWouldBeExceeded
		}
	}

	timer := time.NewTimer(b)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type backoffCalculator func(retryAttempts uint32) time.Duration

func exponentialBackoffWithJitter(min, max time.Duration, backoffFactor float64) backoffCalculator { //nolint:revive
	var minBackoff float64 = 1000000 // 1 Millisecond

	var maxBackoff float64 = 500000000 // 500 Milliseconds

	var factor float64 = 2

	if min > 0 {
		minBackoff = float64(min)
	}

	if max > 0 {
		maxBackoff = float64(max)
	}

	if backoffFactor > 0 {
		factor = backoffFactor
	}

	return func(retryAttempts uint32) time.Duration {
		backoff := minBackoff * (math.Pow(factor, float64(retryAttempts)))

		backoff = rand.Float64() * (backoff) // #nosec G404

		if backoff > maxBackoff {
			backoff = maxBackoff
		}

		if backoff < minBackoff {
			backoff = minBackoff
		}

		return time.Duration(backoff)
	}
}
