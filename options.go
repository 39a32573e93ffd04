package social

import (
	"crypto/tls"
	"crypto/x509"
	"time"
)

// TrustOnly specifies the trust mode to use within the SDK.
type TrustOnly interface {
	trustOnly()
}

// TrustOnlySystem tells the SDK to trust only the certificates trusted by the system cert pool.
// This is the default.
type TrustOnlySystem struct{}

func (t TrustOnlySystem) trustOnly() {}

// TrustOnlyPemFile tells the SDK to trust only the PEM-encoded certificate(s) in the file at the
// given path.
type TrustOnlyPemFile struct {
	Path string
}

func (t TrustOnlyPemFile) trustOnly() {}

// TrustOnlyPemString tells the SDK to trust only the PEM-encoded certificate(s) in the given
// string.
type TrustOnlyPemString struct {
	Pem string
}

func (t TrustOnlyPemString) trustOnly() {}

// TrustOnlyCertificates tells the SDK to trust only the specified certificates.
type TrustOnlyCertificates struct {
	Certificates *x509.CertPool
}

func (t TrustOnlyCertificates) trustOnly() {}

// SecurityOptions specifies options for controlling security related items such as TLS root
// certificates and verification skipping.
type SecurityOptions struct {
	// TrustOnly specifies the trust mode to use within the SDK.
	TrustOnly TrustOnly

	// DisableServerCertificateVerification when specified causes the SDK to trust ANY certificate
	// regardless of validity.
	DisableServerCertificateVerification *bool

	// CipherSuites specifies the TLS cipher suites the SDK is allowed to use when negotiating TLS
	// settings, or an empty list to enable all supported cipher suites.
	CipherSuites []*tls.CipherSuite
}

// NewSecurityOptions creates a new instance of SecurityOptions.
func NewSecurityOptions() *SecurityOptions {
	return &SecurityOptions{
		TrustOnly:                            nil,
		DisableServerCertificateVerification: nil,
		CipherSuites:                         nil,
	}
}

// SetTrustOnly sets the TrustOnly field to the value provided.
func (opts *SecurityOptions) SetTrustOnly(trustOnly TrustOnly) *SecurityOptions {
	opts.TrustOnly = trustOnly

	return opts
}

// SetDisableServerCertificateVerification sets the DisableServerCertificateVerification field to the value provided.
func (opts *SecurityOptions) SetDisableServerCertificateVerification(disabled bool) *SecurityOptions {
	opts.DisableServerCertificateVerification = &disabled

	return opts
}

// SetCipherSuites sets the CipherSuites field to the value provided.
func (opts *SecurityOptions) SetCipherSuites(cipherSuites []*tls.CipherSuite) *SecurityOptions {
	opts.CipherSuites = cipherSuites

	return opts
}

// TimeoutOptions specifies options for various operation timeouts.
type TimeoutOptions struct {
	// ConnectTimeout specifies the socket connection timeout.
	ConnectTimeout *time.Duration

	// RequestTimeout specifies the default amount of time to spend on a request, retries
	// included. It applies when the context of the call has no deadline.
	RequestTimeout *time.Duration
}

// NewTimeoutOptions creates a new instance of TimeoutOptions.
func NewTimeoutOptions() *TimeoutOptions {
	return &TimeoutOptions{
		ConnectTimeout: nil,
		RequestTimeout: nil,
	}
}

// SetConnectTimeout sets the ConnectTimeout field to the value provided.
func (opts *TimeoutOptions) SetConnectTimeout(timeout time.Duration) *TimeoutOptions {
	opts.ConnectTimeout = &timeout

	return opts
}

// SetRequestTimeout sets the RequestTimeout field to the value provided.
func (opts *TimeoutOptions) SetRequestTimeout(timeout time.Duration) *TimeoutOptions {
	opts.RequestTimeout = &timeout

	return opts
}

// ClientOptions is the set of options available for creating a Client.
type ClientOptions struct {
	// TimeoutOptions specifies various operation timeouts.
	TimeoutOptions *TimeoutOptions

	// SecurityOptions specifies security related configuration options.
	SecurityOptions *SecurityOptions

	// Logger specifies the logger to use. Nil means no logging.
	Logger Logger

	// MaxRetries specifies how many times a request is retried after a transient failure.
	MaxRetries *uint32
}

// NewClientOptions creates a new instance of ClientOptions.
func NewClientOptions() *ClientOptions {
	return &ClientOptions{
		TimeoutOptions:  NewTimeoutOptions(),
		SecurityOptions: NewSecurityOptions(),
		Logger:          nil,
		MaxRetries:      nil,
	}
}

// SetTimeoutOptions sets the TimeoutOptions field to the value provided.
func (co *ClientOptions) SetTimeoutOptions(timeoutOptions *TimeoutOptions) *ClientOptions {
	co.TimeoutOptions = timeoutOptions

	return co
}

// SetSecurityOptions sets the SecurityOptions field to the value provided.
func (co *ClientOptions) SetSecurityOptions(securityOptions *SecurityOptions) *ClientOptions {
	co.SecurityOptions = securityOptions

	return co
}

// SetLogger sets the Logger field to the value provided.
func (co *ClientOptions) SetLogger(logger Logger) *ClientOptions {
	co.Logger = logger

	return co
}

// SetMaxRetries sets the MaxRetries field to the value provided.
func (co *ClientOptions) SetMaxRetries(maxRetries uint32) *ClientOptions {
	co.MaxRetries = &maxRetries

	return co
}

func mergeClientOptions(opts ...*ClientOptions) *ClientOptions {
	clientOpts := &ClientOptions{
		TimeoutOptions:  &TimeoutOptions{ConnectTimeout: nil, RequestTimeout: nil},
		SecurityOptions: &SecurityOptions{TrustOnly: nil, DisableServerCertificateVerification: nil, CipherSuites: nil},
		Logger:          nil,
		MaxRetries:      nil,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if opt.TimeoutOptions != nil {
			if opt.TimeoutOptions.ConnectTimeout != nil {
				clientOpts.TimeoutOptions.ConnectTimeout = opt.TimeoutOptions.ConnectTimeout
			}

			if opt.TimeoutOptions.RequestTimeout != nil {
				clientOpts.TimeoutOptions.RequestTimeout = opt.TimeoutOptions.RequestTimeout
			}
		}

		if opt.SecurityOptions != nil {
			if opt.SecurityOptions.TrustOnly != nil {
				clientOpts.SecurityOptions.TrustOnly = opt.SecurityOptions.TrustOnly
			}

			if opt.SecurityOptions.DisableServerCertificateVerification != nil {
				clientOpts.SecurityOptions.DisableServerCertificateVerification = opt.SecurityOptions.DisableServerCertificateVerification
			}

			if len(opt.SecurityOptions.CipherSuites) > 0 {
				clientOpts.SecurityOptions.CipherSuites = opt.SecurityOptions.CipherSuites
			}
		}

		if opt.Logger != nil {
			clientOpts.Logger = opt.Logger
		}

		if opt.MaxRetries != nil {
			clientOpts.MaxRetries = opt.MaxRetries
		}
	}

	return clientOpts
}
