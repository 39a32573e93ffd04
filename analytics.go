package social

import (
	"context"
)

// GetAnalyticsData runs a Core Reporting data query and returns its parsed response.
// When GetAnalyticsData is called with no context.Context, or a context.Context with no Deadline,
// then the Client level RequestTimeout will be applied.
//
// Errors reported by the API in the response body are returned as an *APIError, which wraps
// ErrAPI. Failures that left no usable response body are returned as a *RequestError.
func (c *Client) GetAnalyticsData(ctx context.Context, opts ...*AnalyticsDataOptions) (*AnalyticsDataResponse, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	if ctx == nil {
		ctx = context.Background()
	}

	dataOpts := mergeAnalyticsDataOptions(opts...)

	return c.client.AnalyticsClient().GetData(ctx, dataOpts) //nolint:wrapcheck
}
