package social

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/couchbaselabs/gosocial/internal/httpclient"
)

const analyticsDataPath = "/data/ga"

type analyticsClient interface {
	GetData(ctx context.Context, opts *AnalyticsDataOptions) (*AnalyticsDataResponse, error)
}

type httpAnalyticsClient struct {
	credential     Credential
	client         *httpclient.Client
	requestTimeout time.Duration
	maxRetries     uint32
	logger         Logger
}

type httpAnalyticsClientConfig struct {
	Credential     Credential
	Client         *httpclient.Client
	RequestTimeout time.Duration
	MaxRetries     uint32
	Logger         Logger
}

func newHTTPAnalyticsClient(cfg httpAnalyticsClientConfig) *httpAnalyticsClient {
	return &httpAnalyticsClient{
		credential:     cfg.Credential,
		client:         cfg.Client,
		requestTimeout: cfg.RequestTimeout,
		maxRetries:     cfg.MaxRetries,
		logger:         cfg.Logger,
	}
}

func (c *httpAnalyticsClient) GetData(ctx context.Context, opts *AnalyticsDataOptions) (*AnalyticsDataResponse, error) {
	clientOpts, err := c.translateDataOptions(opts)
	if err != nil {
		return nil, err
	}

	var ownDeadline bool

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()

		ownDeadline = true
	}

	res, err := c.client.Get(ctx, clientOpts)
	if err != nil {
		return nil, translateClientError(err, ownDeadline)
	}

	return c.parseResponse(res)
}

func (c *httpAnalyticsClient) translateDataOptions(opts *AnalyticsDataOptions) (*httpclient.RequestOptions, error) {
	query, err := opts.toQueryString()
	if err != nil {
		return nil, err
	}

	var tokenProvider func() string

	switch credential := c.credential.(type) {
	case *AccessTokenCredential:
		tokenProvider = func() string {
			return credential.AccessToken
		}
	case *DynamicAccessTokenCredential:
		tokenProvider = credential.Token
	case *APIKeyCredential:
		if err := query.Set("key", credential.Key); err != nil {
			return nil, err
		}
	}

	return &httpclient.RequestOptions{
		Path:          analyticsDataPath,
		Query:         query.String(),
		TokenProvider: tokenProvider,
		MaxRetries:    c.maxRetries,
	}, nil
}

func (c *httpAnalyticsClient) parseResponse(res *httpclient.Response) (*AnalyticsDataResponse, error) {
	endpoint := c.client.Host()
	success := res.StatusCode >= 200 && res.StatusCode < 300

	obj, err := ParseJSONObject(res.Body)
	if err != nil {
		if success {
			return nil, err
		}

		return nil, newRequestError(causeForStatus(res.StatusCode), endpoint, res.StatusCode).
			withMessage(string(res.Body))
	}

	if obj == nil {
		if success {
			return nil, unmarshalError{
				Reason: "response body is null",
			}
		}

		return nil, newRequestError(causeForStatus(res.StatusCode), endpoint, res.StatusCode).
			withMessage(http.StatusText(res.StatusCode))
	}

	response, err := ParseAnalyticsDataResponse(obj)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.logger.Debug("Received api error from %s: %d %s", endpoint, apiErr.Code(), apiErr.Message())

			return nil, apiErr.withCause(causeForStatus(apiErr.Code())).withEndpoint(endpoint, res.StatusCode)
		}

		return nil, err
	}

	if !success {
		return nil, newRequestError(causeForStatus(res.StatusCode), endpoint, res.StatusCode).
			withMessage(http.StatusText(res.StatusCode))
	}

	return response, nil
}

// causeForStatus maps an HTTP status code, or the code of an API error, to an error cause. It
// returns nil for codes with no specific cause.
func causeForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrInvalidCredential
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	}

	return nil
}

func translateClientError(err error, ownDeadline bool) error {
	var clientErr *httpclient.RequestError
	if !errors.As(err, &clientErr) {
		return err
	}

	var baseErr error

	switch {
	case errors.Is(err, httpclient.ErrServiceUnavailable):
		baseErr = ErrServiceUnavailable
	case errors.Is(err, context.Canceled):
		baseErr = context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		if ownDeadline {
			baseErr = ErrTimeout
		} else {
			baseErr = context.DeadlineExceeded
		}
	default:
		baseErr = clientErr.InnerError
	}

	msg := clientErr.ErrorText
	if msg == "" {
		msg = clientErr.InnerError.Error()
	}

	return newRequestError(baseErr, clientErr.Endpoint, clientErr.HTTPResponseCode).withMessage(msg)
}
