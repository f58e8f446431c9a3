package reporter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// ErrorType categorises why a submission failed.
type ErrorType int

const (
	// ErrTypeNetwork indicates a generic network failure
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request did not finish in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the endpoint
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the collector host could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP
	// ErrTypeParse indicates an unreadable response body
	ErrTypeParse
	// ErrTypeEncode indicates the report could not be built
	ErrTypeEncode
	// ErrTypeCanceled indicates the caller's context was canceled
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeEncode:
		return "Encode Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// SubmitError describes a failed submission. It is only ever logged.
type SubmitError struct {
	Type       ErrorType
	Message    string
	StatusCode int // HTTP status, when Type is ErrTypeHTTP
	Endpoint   string
	Err        error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// ClassifyTransportError maps an error returned by http.Client.Do to a
// SubmitError.
func ClassifyTransportError(err error, endpoint string) *SubmitError {
	if err == nil {
		return nil
	}

	classified := &SubmitError{
		Type:     ErrTypeNetwork,
		Message:  "network error",
		Endpoint: endpoint,
		Err:      err,
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError

	switch {
	case errors.Is(err, context.Canceled):
		classified.Type = ErrTypeCanceled
		classified.Message = "submission canceled"
	case errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err):
		classified.Type = ErrTypeTimeout
		classified.Message = "collector did not respond in time"
	case errors.As(err, &dnsErr):
		classified.Type = ErrTypeDNS
		classified.Message = fmt.Sprintf("cannot resolve %s", dnsErr.Name)
	case errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED):
		classified.Type = ErrTypeConnectionRefused
		classified.Message = "collector refused connection"
	}

	return classified
}

// NewHTTPError reports a non-2xx collector response.
func NewHTTPError(statusCode int, endpoint string) *SubmitError {
	return &SubmitError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
}

// NewParseError reports an unreadable collector response.
func NewParseError(message string, err error) *SubmitError {
	return &SubmitError{Type: ErrTypeParse, Message: message, Err: err}
}

// IsType reports whether err is a SubmitError of the given type.
func IsType(err error, t ErrorType) bool {
	var submitErr *SubmitError
	return errors.As(err, &submitErr) && submitErr.Type == t
}
