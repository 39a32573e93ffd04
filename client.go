package social

import (
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultAnalyticsEndpoint is the base URL of the Google Analytics Core Reporting API.
const DefaultAnalyticsEndpoint = "https://www.googleapis.com/analytics/v3"

// Client is the main entry point for the SDK.
// It is used to query the APIs it supports over HTTP.
type Client struct {
	client socialClient
	closed atomic.Bool
}

// NewClient creates a new Client instance for the API at endpoint, for example
// DefaultAnalyticsEndpoint.
//
// The query string of endpoint may carry options, which take precedence over opts:
// timeout.connect_timeout, timeout.request_timeout, security.trust_only_pem_file,
// security.disable_server_certificate_verification and max_retries.
func NewClient(endpoint string, credential Credential, opts ...*ClientOptions) (*Client, error) {
	connSpec, err := url.Parse(endpoint)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if connSpec.Scheme != "https" && connSpec.Scheme != "http" {
		return nil, invalidArgumentError{
			ArgumentName: "scheme",
			Reason:       "only http and https schemes are supported",
		}
	}

	if connSpec.Hostname() == "" {
		return nil, invalidArgumentError{
			ArgumentName: "endpoint",
			Reason:       "must include a host",
		}
	}

	var port int

	if connSpec.Port() == "" {
		if connSpec.Scheme == "https" {
			port = 443
		} else {
			port = 80
		}
	} else {
		thisPort, err := strconv.Atoi(connSpec.Port())
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		port = thisPort
	}

	addr := address{
		Host: connSpec.Hostname(),
		Port: port,
	}

	if credential == nil {
		return nil, invalidArgumentError{
			ArgumentName: "Credential",
			Reason:       "cannot be nil",
		}
	}

	clientOpts := mergeClientOptions(opts...)

	logger := clientOpts.Logger
	if logger == nil {
		logger = NewNoopLogger()
	}

	connectTimeout := 10000 * time.Millisecond
	requestTimeout := 1 * time.Minute
	maxRetries := uint32(3)

	timeoutOpts := clientOpts.TimeoutOptions
	securityOpts := clientOpts.SecurityOptions

	if timeoutOpts.ConnectTimeout != nil {
		connectTimeout = *timeoutOpts.ConnectTimeout
	}

	if timeoutOpts.RequestTimeout != nil {
		requestTimeout = *timeoutOpts.RequestTimeout
	}

	if clientOpts.MaxRetries != nil {
		maxRetries = *clientOpts.MaxRetries
	}

	values, err := url.ParseQuery(connSpec.RawQuery)
	if err != nil {
		return nil, invalidArgumentError{
			ArgumentName: "endpoint",
			Reason:       err.Error(),
		}
	}

	endpointOpts := NewQueryStringFromValues(values)

	if valStr := endpointOption(endpointOpts, "timeout.connect_timeout"); valStr != nil {
		duration, err := time.ParseDuration(*valStr)
		if err != nil {
			return nil, invalidArgumentError{
				ArgumentName: "timeout.connect_timeout",
				Reason:       err.Error(),
			}
		}

		connectTimeout = duration
	}

	if valStr := endpointOption(endpointOpts, "timeout.request_timeout"); valStr != nil {
		duration, err := time.ParseDuration(*valStr)
		if err != nil {
			return nil, invalidArgumentError{
				ArgumentName: "timeout.request_timeout",
				Reason:       err.Error(),
			}
		}

		requestTimeout = duration
	}

	if valStr := endpointOption(endpointOpts, "security.trust_only_pem_file"); valStr != nil {
		securityOpts.TrustOnly = TrustOnlyPemFile{
			Path: *valStr,
		}
	}

	if endpointOption(endpointOpts, "security.disable_server_certificate_verification") != nil {
		val, err := endpointOpts.GetBoolean("security.disable_server_certificate_verification")
		if err != nil {
			return nil, invalidArgumentError{
				ArgumentName: "security.disable_server_certificate_verification",
				Reason:       err.Error(),
			}
		}

		securityOpts.DisableServerCertificateVerification = &val
	}

	if endpointOption(endpointOpts, "max_retries") != nil {
		val, err := endpointOpts.GetInt32("max_retries")
		if err != nil || val < 0 {
			return nil, invalidArgumentError{
				ArgumentName: "max_retries",
				Reason:       "must be a non-negative integer",
			}
		}

		maxRetries = uint32(val)
	}

	if connectTimeout <= 0 {
		return nil, invalidArgumentError{
			ArgumentName: "ConnectTimeout",
			Reason:       "must be greater than 0",
		}
	}

	if requestTimeout <= 0 {
		return nil, invalidArgumentError{
			ArgumentName: "RequestTimeout",
			Reason:       "must be greater than 0",
		}
	}

	if securityOpts.DisableServerCertificateVerification != nil && *securityOpts.DisableServerCertificateVerification {
		logger.Warn("server certificate verification is disabled, this is insecure")
	}

	mgr, err := newSocialClient(socialClientOptions{
		Scheme:                               connSpec.Scheme,
		BasePath:                             strings.TrimSuffix(connSpec.Path, "/"),
		Credential:                           credential,
		ConnectTimeout:                       connectTimeout,
		RequestTimeout:                       requestTimeout,
		MaxRetries:                           maxRetries,
		TrustOnly:                            securityOpts.TrustOnly,
		DisableServerCertificateVerification: securityOpts.DisableServerCertificateVerification,
		CipherSuites:                         securityOpts.CipherSuites,
		Address:                              addr,
		Logger:                               logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		client: mgr,
	}, nil
}

// Close shuts down the client and releases all resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	return c.client.Close() //nolint:wrapcheck
}

func endpointOption(q *QueryString, name string) *string {
	// name is a non-blank literal, so the lookup cannot fail.
	val, _ := q.GetString(name)

	return val
}
