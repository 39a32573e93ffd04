// Package httpclient implements an HTTP client for making requests against a REST API.
package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/couchbaselabs/gosocial/internal/logging"
)

// ClientConfig holds the configuration for the client.
type ClientConfig struct {
	TLSConfig      *tls.Config
	ConnectTimeout time.Duration
	Logger         logging.Logger
}

// Client represents an HTTP client that can be used to make requests to the server.
type Client struct {
	scheme      string
	host        string
	port        int
	basePath    string
	innerClient *http.Client
	logger      logging.Logger
	backoff     backoffCalculator
}

// NewClient creates a new Client for the given endpoint. basePath is prefixed to the path of every
// request.
func NewClient(scheme string, host string, port int, basePath string, config ClientConfig) *Client {
	logger := config.Logger
	if logger == nil {
		logger = logging.NoopLogger{}
	}

	connectTimeout := config.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	return &Client{
		scheme:      scheme,
		host:        host,
		port:        port,
		basePath:    basePath,
		innerClient: createHTTPClient(config.TLSConfig, connectTimeout),
		logger:      logger,
		backoff:     exponentialBackoffWithJitter(100*time.Millisecond, 10*time.Second, 2),
	}
}

// Host returns the host the client sends requests to.
func (c *Client) Host() string {
	return c.host
}

// Close closes the client and releases any resources it holds.
func (c *Client) Close() error {
	if tsport, ok := c.innerClient.Transport.(*http.Transport); ok {
		tsport.CloseIdleConnections()
	}

	return nil
}

func (c *Client) requestURI(path, query string) string {
	hostPort := c.host
	if !(c.scheme == "https" && c.port == 443) && !(c.scheme == "http" && c.port == 80) {
		hostPort = net.JoinHostPort(c.host, strconv.Itoa(c.port))
	}

	uri := fmt.Sprintf("%s://%s%s%s", c.scheme, hostPort, c.basePath, path)
	if query != "" {
		uri += "?" + query
	}

	return uri
}

func createHTTPClient(tlsConfig *tls.Config, connectTimeout time.Duration) *http.Client {
	httpDialer := &net.Dialer{ //nolint:exhaustruct
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	// We set ForceAttemptHTTP2, which will update the base-config to support HTTP2
	// automatically, so that all configs from it will look for that.
	httpTransport := &http.Transport{ //nolint:exhaustruct
		ForceAttemptHTTP2: true,

		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return httpDialer.DialContext(ctx, network, addr)
		},

		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: connectTimeout,
		MaxIdleConns:        0,
		MaxIdleConnsPerHost: 0,
		MaxConnsPerHost:     0,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{ //nolint:exhaustruct
		Transport: httpTransport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Carry the bearer token over to redirects, pulled off the oldest (first) request.
			if len(via) >= 10 {
				// Just duplicate the default behaviour for maximum redirects.
				return errors.New("stopped after 10 redirects") //nolint:err113
			}

			oldest := via[0]
			auth := oldest.Header.Get("Authorization")
			if auth != "" {
				req.Header.Set("Authorization", auth)
			}

			return nil
		},
	}
}
