// Package leakcheck tracks HTTP response bodies in tests to make sure every one of them is closed.
package leakcheck

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

var leakTrackingEnabled uint32
var trackedRespsLock sync.Mutex
var trackedResps []*leakTrackingReadCloser

// EnableAll enables every kind of leak tracking.
func EnableAll() {
	EnableHTTPResponseTracking()
}

// ReportAll reports every kind of tracked leak. Returns true if nothing leaked.
func ReportAll() bool {
	return ReportLeakedHTTPResponses()
}

// EnableHTTPResponseTracking enables tracking response bodies to ensure that they are
// eventually closed.
func EnableHTTPResponseTracking() {
	atomic.StoreUint32(&leakTrackingEnabled, 1)
}

// WrapHTTPResponse wraps an HTTP response body to track it for leaks.
func WrapHTTPResponse(resp *http.Response) *http.Response {
	if atomic.LoadUint32(&leakTrackingEnabled) == 0 {
		return resp
	}

	var path string
	if resp.Request != nil && resp.Request.URL != nil {
		path = resp.Request.URL.Path
	}

	trackingBody := &leakTrackingReadCloser{
		parent:     resp.Body,
		path:       path,
		stackTrace: debug.Stack(),
	}

	trackedRespsLock.Lock()
	trackedResps = append(trackedResps, trackingBody)
	trackedRespsLock.Unlock()

	resp.Body = trackingBody

	return resp
}

// TrackedHTTPResponses returns the number of response bodies that are open.
func TrackedHTTPResponses() int {
	trackedRespsLock.Lock()
	defer trackedRespsLock.Unlock()

	return len(trackedResps)
}

func removeTrackedHTTPBodyRecord(l *leakTrackingReadCloser) {
	trackedRespsLock.Lock()
	defer trackedRespsLock.Unlock()

	for i, tracked := range trackedResps {
		if tracked == l {
			trackedResps = append(trackedResps[:i], trackedResps[i+1:]...)

			return
		}
	}
}

// ReportLeakedHTTPResponses prints the stack traces of any response bodies that have not
// been closed. Returns true if all bodies have been closed, false otherwise.
func ReportLeakedHTTPResponses() bool {
	trackedRespsLock.Lock()
	defer trackedRespsLock.Unlock()

	if len(trackedResps) == 0 {
		log.Printf("No leaked http responses")

		return true
	}

	log.Printf("Found %d leaked http responses", len(trackedResps))

	for _, leakRecord := range trackedResps {
		log.Printf("Leaked http response for %s, stack: %s", leakRecord.path, leakRecord.stackTrace)
	}

	return false
}

type leakTrackingReadCloser struct {
	parent     io.ReadCloser
	path       string
	stackTrace []byte
}

func (l *leakTrackingReadCloser) Read(p []byte) (int, error) {
	n, err := l.parent.Read(p)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		removeTrackedHTTPBodyRecord(l)
	}

	return n, err
}

func (l *leakTrackingReadCloser) Close() error {
	removeTrackedHTTPBodyRecord(l)

	return l.parent.Close()
}

var _ io.ReadCloser = (*leakTrackingReadCloser)(nil)
