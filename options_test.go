package social

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeClientOptions(t *testing.T) {
	logger := NewNoopLogger()

	merged := mergeClientOptions(
		NewClientOptions().
			SetTimeoutOptions(NewTimeoutOptions().SetConnectTimeout(time.Second).SetRequestTimeout(time.Minute)).
			SetMaxRetries(1),
		nil,
		&ClientOptions{
			TimeoutOptions:  NewTimeoutOptions().SetRequestTimeout(2 * time.Minute),
			SecurityOptions: NewSecurityOptions().SetDisableServerCertificateVerification(true),
			Logger:          logger,
			MaxRetries:      nil,
		},
	)

	require.NotNil(t, merged.TimeoutOptions.ConnectTimeout)
	assert.Equal(t, time.Second, *merged.TimeoutOptions.ConnectTimeout)
	require.NotNil(t, merged.TimeoutOptions.RequestTimeout)
	assert.Equal(t, 2*time.Minute, *merged.TimeoutOptions.RequestTimeout)
	require.NotNil(t, merged.SecurityOptions.DisableServerCertificateVerification)
	assert.True(t, *merged.SecurityOptions.DisableServerCertificateVerification)
	assert.Nil(t, merged.SecurityOptions.TrustOnly)
	require.NotNil(t, merged.MaxRetries)
	assert.Equal(t, uint32(1), *merged.MaxRetries)
	assert.Equal(t, logger, merged.Logger)
}

func TestMergeClientOptionsEmpty(t *testing.T) {
	merged := mergeClientOptions()

	require.NotNil(t, merged.TimeoutOptions)
	require.NotNil(t, merged.SecurityOptions)
	assert.Nil(t, merged.Logger)
	assert.Nil(t, merged.MaxRetries)
}

func TestCreateTLSConfig(t *testing.T) {
	var suite *tls.CipherSuite
	for _, s := range tls.CipherSuites() {
		if s.Name == "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256" {
			suite = s
		}
	}

	require.NotNil(t, suite)

	cfg := createTLSConfig([]*tls.CipherSuite{suite}, nil, false, NewNoopLogger())

	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, []uint16{tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256}, cfg.CipherSuites)
	assert.False(t, cfg.InsecureSkipVerify)

	cfg = createTLSConfig(nil, nil, true, NewNoopLogger())

	assert.Nil(t, cfg.CipherSuites)
	assert.True(t, cfg.InsecureSkipVerify)
}
