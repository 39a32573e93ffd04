package social

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidArgument occurs when an invalid argument is provided to a function.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrConversion occurs when a stored value cannot be converted to the requested type.
var ErrConversion = errors.New("conversion error")

// ErrAPI is the base error for any error reported by a remote API in its response body.
var ErrAPI = errors.New("api error")

// ErrInvalidCredential occurs when invalid credentials are provided leading to errors in things like authentication.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrTimeout occurs when a timeout is reached while waiting for a response.
var ErrTimeout = errors.New("timeout error")

// ErrServiceUnavailable occurs when the remote service, or a part of the system in the path to it, is unavailable.
var ErrServiceUnavailable = errors.New("service unavailable")

// ErrUnmarshal occurs when an entity could not be unmarshalled.
var ErrUnmarshal = errors.New("unmarshalling error")

// ErrClosed occurs when an entity was used after it was closed.
var ErrClosed = errors.New("closed")

type apiErrorDesc struct {
	Domain  string
	Reason  string
	Message string
}

func (e apiErrorDesc) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(struct {
		Domain  string `json:"domain,omitempty"`
		Reason  string `json:"reason,omitempty"`
		Message string `json:"message,omitempty"`
	}{
		Domain:  e.Domain,
		Reason:  e.Reason,
		Message: e.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal api error description: %s", err) // nolint: err113, errorlint
	}

	return b, nil
}

// APIErrorDetail is a single entry of the errors list an API may attach to an error response.
type APIErrorDetail struct {
	Domain  string
	Reason  string
	Message string
}

// APIError occurs when the response body of an API call carries an error object.
type APIError struct {
	cause   error
	code    int
	message string

	errors           []apiErrorDesc
	endpoint         string
	httpResponseCode int
}

func newAPIError(code int, message string) *APIError {
	return &APIError{
		cause:            ErrAPI,
		code:             code,
		message:          message,
		errors:           nil,
		endpoint:         "",
		httpResponseCode: 0,
	}
}

func (e APIError) withErrors(errors []apiErrorDesc) *APIError {
	e.errors = errors

	return &e
}

func (e APIError) withCause(cause error) *APIError {
	if cause == nil {
		cause = ErrAPI
	}

	e.cause = cause

	return &e
}

func (e APIError) withEndpoint(endpoint string, statusCode int) *APIError {
	e.endpoint = endpoint
	e.httpResponseCode = statusCode

	return &e
}

// Code returns the error code from the server for this error.
func (e APIError) Code() int {
	return e.code
}

// Message returns the error message from the server for this error.
func (e APIError) Message() string {
	return e.message
}

// Details returns the individual errors listed by the server, if any.
func (e APIError) Details() []APIErrorDetail {
	if len(e.errors) == 0 {
		return nil
	}

	details := make([]APIErrorDetail, len(e.errors))
	for i, desc := range e.errors {
		details[i] = APIErrorDetail(desc)
	}

	return details
}

// Error returns the string representation of an API error.
func (e APIError) Error() string {
	errBytes, _ := json.Marshal(struct {
		Code             int            `json:"code,omitempty"`
		Message          string         `json:"message,omitempty"`
		Errors           []apiErrorDesc `json:"errors,omitempty"`
		Endpoint         string         `json:"endpoint,omitempty"`
		HTTPResponseCode int            `json:"status_code,omitempty"`
	}{
		Code:             e.code,
		Message:          e.message,
		Errors:           e.errors,
		Endpoint:         e.endpoint,
		HTTPResponseCode: e.httpResponseCode,
	})

	return e.rootCause().Error() + " | " + string(errBytes)
}

// Unwrap returns the underlying reasons for the error. ErrAPI is always part of the chain.
func (e APIError) Unwrap() []error {
	cause := e.rootCause()
	if errors.Is(cause, ErrAPI) {
		return []error{cause}
	}

	return []error{cause, ErrAPI}
}

func (e APIError) rootCause() error {
	if e.cause == nil {
		return ErrAPI
	}

	return e.cause
}

// RequestError occurs when a request could not be completed, or completed without a usable
// response body.
type RequestError struct {
	cause   error
	message string

	endpoint         string
	httpResponseCode int
}

func newRequestError(cause error, endpoint string, statusCode int) RequestError {
	if cause == nil {
		cause = ErrAPI
	}

	return RequestError{
		cause:            cause,
		message:          "",
		endpoint:         endpoint,
		httpResponseCode: statusCode,
	}
}

func (e RequestError) withMessage(message string) *RequestError {
	e.message = message

	return &e
}

// Error returns the string representation of a request error.
func (e RequestError) Error() string {
	errBytes, _ := json.Marshal(struct {
		Message          string `json:"message,omitempty"`
		Endpoint         string `json:"endpoint,omitempty"`
		HTTPResponseCode int    `json:"status_code,omitempty"`
	}{
		Message:          e.message,
		Endpoint:         e.endpoint,
		HTTPResponseCode: e.httpResponseCode,
	})

	return e.cause.Error() + " | " + string(errBytes)
}

// Unwrap returns the underlying reason for the error.
func (e RequestError) Unwrap() error {
	if e.cause == nil {
		return ErrAPI
	}

	return e.cause
}

type invalidArgumentError struct {
	ArgumentName string
	Reason       string
}

func (e invalidArgumentError) Error() string {
	return fmt.Sprintf("%s %s - %s", e.Unwrap(), e.ArgumentName, e.Reason)
}

func (e invalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

type conversionError struct {
	Key        string
	Value      string
	TargetType string
	Reason     string
}

func (e conversionError) Error() string {
	return fmt.Sprintf("%s %q (key %s) to %s - %s", e.Unwrap(), e.Value, e.Key, e.TargetType, e.Reason)
}

func (e conversionError) Unwrap() error {
	return ErrConversion
}

type unmarshalError struct {
	Reason string
}

func (e unmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal - %s", e.Reason)
}

func (e unmarshalError) Unwrap() error {
	return ErrUnmarshal
}
