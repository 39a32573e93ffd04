package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrContextDeadlineWouldBeExceeded is returned when a Deadline set on an operation
	// would be exceeded if the operation were retried. It wraps context.DeadlineExceeded.
	ErrContextDeadlineWouldBeExceeded = fmt.Errorf(
		"operation not retried, as timeout would be exceeded: %w",
		context.DeadlineExceeded,
	)

	// ErrServiceUnavailable occurs when the service, or a part of the system in the path to it,
	// could not be reached within the allowed number of retries.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// RequestError represents an error that prevented a request from producing a response.
type RequestError struct {
	InnerError       error
	Endpoint         string
	Path             string
	Retries          uint32
	ErrorText        string
	HTTPResponseCode int
}

func newRequestError(innerError error, endpoint, path string, responseCode int) *RequestError {
	return &RequestError{
		InnerError:       innerError,
		Endpoint:         endpoint,
		Path:             path,
		Retries:          0,
		ErrorText:        "",
		HTTPResponseCode: responseCode,
	}
}

func (e RequestError) withErrorText(errText string) *RequestError {
	e.ErrorText = errText

	return &e
}

func (e RequestError) withRetries(retries uint32) *RequestError {
	e.Retries = retries

	return &e
}

// Error returns the string representation of this error.
func (e RequestError) Error() string {
	errBytes, _ := json.Marshal(struct {
		Endpoint         string `json:"endpoint,omitempty"`
		Path             string `json:"path,omitempty"`
		Retries          uint32 `json:"retries,omitempty"`
		ErrorText        string `json:"error_text,omitempty"`
		HTTPResponseCode int    `json:"status_code,omitempty"`
	}{
		Endpoint:         e.Endpoint,
		Path:             e.Path,
		Retries:          e.Retries,
		ErrorText:        e.ErrorText,
		HTTPResponseCode: e.HTTPResponseCode,
	})

	return e.InnerError.Error() + " | " + string(errBytes)
}

// Unwrap returns the underlying reason for the error.
func (e RequestError) Unwrap() error {
	return e.InnerError
}

type obfuscateErrorWrapper struct {
	InnerError error
	Message    string
}

func newObfuscateErrorWrapper(message string, innerError error) *obfuscateErrorWrapper {
	return &obfuscateErrorWrapper{
		InnerError: innerError,
		Message:    message,
	}
}

func (e *obfuscateErrorWrapper) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.InnerError)
}

func (e *obfuscateErrorWrapper) Unwrap() error {
	return e.InnerError
}
