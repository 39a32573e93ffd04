package social

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/couchbaselabs/gosocial/internal/httpclient"
)

type socialClient interface {
	AnalyticsClient() analyticsClient

	Close() error
}

type address struct {
	Host string
	Port int
}

type socialClientOptions struct {
	Scheme                               string
	BasePath                             string
	Credential                           Credential
	ConnectTimeout                       time.Duration
	RequestTimeout                       time.Duration
	MaxRetries                           uint32
	TrustOnly                            TrustOnly
	DisableServerCertificateVerification *bool
	CipherSuites                         []*tls.CipherSuite
	Address                              address
	Logger                               Logger
}

func newSocialClient(opts socialClientOptions) (socialClient, error) {
	return newHTTPSocialClient(opts)
}

type httpSocialClient struct {
	client *httpclient.Client

	credential     Credential
	requestTimeout time.Duration
	maxRetries     uint32
	logger         Logger
}

func newHTTPSocialClient(opts socialClientOptions) (*httpSocialClient, error) {
	trustOnly := opts.TrustOnly
	if trustOnly == nil {
		trustOnly = TrustOnlySystem{}
	}

	var pool *x509.CertPool
	switch to := trustOnly.(type) {
	case TrustOnlySystem:
		certPool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("failed to read system cert pool %w", err)
		}

		pool = certPool
	case TrustOnlyPemFile:
		data, err := os.ReadFile(to.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read pem file %w", err)
		}

		pool = x509.NewCertPool()
		if !pool.AppendCertsFromPEM(data) {
			return nil, invalidArgumentError{
				ArgumentName: "TrustOnlyPemFile",
				Reason:       "no certificates could be parsed from " + to.Path,
			}
		}
	case TrustOnlyPemString:
		pool = x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(to.Pem)) {
			return nil, invalidArgumentError{
				ArgumentName: "TrustOnlyPemString",
				Reason:       "no certificates could be parsed",
			}
		}
	case TrustOnlyCertificates:
		pool = to.Certificates
	}

	insecure := opts.DisableServerCertificateVerification != nil && *opts.DisableServerCertificateVerification

	var tlsConfig *tls.Config
	if opts.Scheme == "https" {
		tlsConfig = createTLSConfig(opts.CipherSuites, pool, insecure, opts.Logger)
	}

	client := httpclient.NewClient(opts.Scheme, opts.Address.Host, opts.Address.Port, opts.BasePath, httpclient.ClientConfig{
		TLSConfig:      tlsConfig,
		ConnectTimeout: opts.ConnectTimeout,
		Logger:         opts.Logger,
	})

	return &httpSocialClient{
		client:         client,
		credential:     opts.Credential,
		requestTimeout: opts.RequestTimeout,
		maxRetries:     opts.MaxRetries,
		logger:         opts.Logger,
	}, nil
}

func (c *httpSocialClient) AnalyticsClient() analyticsClient {
	return newHTTPAnalyticsClient(httpAnalyticsClientConfig{
		Credential:     c.credential,
		Client:         c.client,
		RequestTimeout: c.requestTimeout,
		MaxRetries:     c.maxRetries,
		Logger:         c.logger,
	})
}

func (c *httpSocialClient) Close() error {
	err := c.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close client: %s", err) // nolint: err113, errorlint
	}

	return nil
}

func createTLSConfig(cipherSuite []*tls.CipherSuite, pool *x509.CertPool, insecure bool, logger Logger) *tls.Config {
	var suites []uint16

	if cipherSuite != nil {
		suites = make([]uint16, 0, len(cipherSuite))
		for _, suite := range cipherSuite {
			if suite == nil {
				continue
			}

			var s uint16
			for _, suiteID := range tls.CipherSuites() {
				if suite.Name == suiteID.Name {
					s = suiteID.ID

					break
				}
			}

			for _, suiteID := range tls.InsecureCipherSuites() {
				if suite.Name == suiteID.Name {
					s = suiteID.ID

					break
				}
			}

			if s > 0 {
				suites = append(suites, s)
			} else {
				logger.Warn("Unknown cipher suite %s, ignoring", suite.Name)
			}
		}
	}

	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		CipherSuites:       suites,
		RootCAs:            pool,
		InsecureSkipVerify: insecure, // #nosec G402
	}
}
