package httpclient

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchbaselabs/gosocial/internal/leakcheck"
)

func TestMain(m *testing.M) {
	leakcheck.EnableAll()

	result := m.Run()

	if !leakcheck.ReportAll() {
		log.Printf("Detected leaked response bodies, failing")

		result = 1
	}

	os.Exit(result)
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	host, portStr, err := net.SplitHostPort(serverURL.Host)
	require.NoError(t, err)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client := NewClient("http", host, port, "/analytics/v3", ClientConfig{})
	client.backoff = func(uint32) time.Duration {
		return time.Millisecond
	}

	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})

	return client
}

func TestGetSendsPathQueryAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/analytics/v3/data/ga", r.URL.Path)
		assert.Equal(t, "ids=ga%3A1&metrics=ga%3Asessions", r.URL.RawQuery)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalResults":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	res, err := client.Get(context.Background(), &RequestOptions{
		Path:          "/data/ga",
		Query:         "ids=ga%3A1&metrics=ga%3Asessions",
		TokenProvider: func() string { return "secret" },
		MaxRetries:    0,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `{"totalResults":0}`, string(res.Body))
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
}

func TestGetWithoutTokenSendsNoAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	res, err := client.Get(context.Background(), &RequestOptions{Path: "/data/ga"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestGetRetriesTransientStatus(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":503,"message":"Backend Error"}}`))

			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	res, err := client.Get(context.Background(), &RequestOptions{Path: "/data/ga", MaxRetries: 5})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetReturnsLastResponseWhenRetriesRunOut(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"Backend Error"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	res, err := client.Get(context.Background(), &RequestOptions{Path: "/data/ga", MaxRetries: 2})
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, `{"error":{"code":503,"message":"Backend Error"}}`, string(res.Body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Forbidden"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	res, err := client.Get(context.Background(), &RequestOptions{Path: "/data/ga", MaxRetries: 5})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetConnectionFailureIsServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := newTestClient(t, server)
	server.Close()

	_, err := client.Get(context.Background(), &RequestOptions{Path: "/data/ga", MaxRetries: 1})
	require.ErrorIs(t, err, ErrServiceUnavailable)

	var reqErr *RequestError

	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, uint32(1), reqErr.Retries)
	assert.NotEmpty(t, reqErr.ErrorText)
}

func TestGetCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, &RequestOptions{Path: "/data/ga", MaxRetries: 3})
	require.ErrorIs(t, err, context.Canceled)
}

func TestGetDeadlineWouldBeExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	client.backoff = func(uint32) time.Duration {
		return time.Hour
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Get(ctx, &RequestOptions{Path: "/data/ga", MaxRetries: 3})
	require.ErrorIs(t, err, ErrContextDeadlineWouldBeExceeded)
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	var reqErr *RequestError

	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.HTTPResponseCode)
}

func TestRequestURI(t *testing.T) {
	client := NewClient("https", "www.googleapis.com", 443, "/analytics/v3", ClientConfig{})
	assert.Equal(t, "https://www.googleapis.com/analytics/v3/data/ga?a=1", client.requestURI("/data/ga", "a=1"))

	client = NewClient("http", "localhost", 8080, "", ClientConfig{})
	assert.Equal(t, "http://localhost:8080/data/ga", client.requestURI("/data/ga", ""))
}

func TestExponentialBackoffWithJitterBounds(t *testing.T) {
	calc := exponentialBackoffWithJitter(10*time.Millisecond, 100*time.Millisecond, 2)

	for attempt := uint32(0); attempt < 10; attempt++ {
		b := calc(attempt)
		assert.GreaterOrEqual(t, b, 10*time.Millisecond)
		assert.LessOrEqual(t, b, 100*time.Millisecond)
	}
}
