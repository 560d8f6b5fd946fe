package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError for callers that need to branch on it.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindNetwork      Kind = "network"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

// Messages shown to the user verbatim.
const (
	MsgInvalidYouTubeURL = "Invalid YouTube URL"
	MsgGeneric           = "An error occurred"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func InvalidInput(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInput,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Network reports a failed outbound call: connectivity, non-2xx status or an
// unusable response body.
func Network(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindNetwork,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func RateLimited(op string) *AppError {
	return &AppError{
		Code:    http.StatusTooManyRequests,
		Kind:    KindRateLimited,
		Message: "Rate limit exceeded",
		Op:      op,
	}
}

func Internal(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func IsInvalidInput(err error) bool { return IsKind(err, KindInvalidInput) }
func IsNetwork(err error) bool      { return IsKind(err, KindNetwork) }

// UserMessage is the text to show for err: the AppError message when there is
// one, otherwise err's own text, falling back to MsgGeneric when empty.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgGeneric
}

// StatusCode maps err to an HTTP status, defaulting to 500.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
