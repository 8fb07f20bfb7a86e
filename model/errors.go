package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies an AppError so the HTTP boundary and tests can tell
// failure modes apart without string matching.
type ErrorKind int

const (
	// KindUnclassified is the catch-all for anything not matching below.
	KindUnclassified ErrorKind = iota
	// KindUpstream means an upstream call failed (transport, non-2xx, bad body).
	KindUpstream
	// KindNoEligibleCase means selection found no case with the required status.
	KindNoEligibleCase
	// KindNotFound means a requested case or document genuinely does not exist.
	KindNotFound
	// KindValidation means the request input was rejected before the core ran.
	KindValidation
)

// CodeUnclassified is the default numeric error code exposed to callers when
// a failure has no more specific classification.
const CodeUnclassified = 9999

// AppError is the single typed failure produced by the service layer. Code is
// the numeric code surfaced in the error envelope; Err is the wrapped cause,
// kept for server-side logs only.
type AppError struct {
	Kind    ErrorKind
	Code    int
	Message string
	Err     error
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

// UpstreamError wraps a failed upstream call.
func UpstreamError(msg string, cause error) *AppError {
	return &AppError{Kind: KindUpstream, Code: CodeUnclassified, Message: msg, Err: cause}
}

// NoEligibleCaseError reports that no case matched the selection status.
func NoEligibleCaseError(status string) *AppError {
	return &AppError{
		Kind:    KindNoEligibleCase,
		Code:    CodeUnclassified,
		Message: fmt.Sprintf("No cases found with '%s' status", status),
	}
}

// NotFoundError reports a genuinely missing case or document.
func NotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Code: 404, Message: msg}
}

// ValidationError reports malformed request input.
func ValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Code: 400, Message: msg}
}

// KindOf returns the classification of err, or KindUnclassified when err is
// not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnclassified
}

// AsAppError returns err as an AppError, wrapping unclassified failures with
// the default code so no raw error ever reaches the envelope.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindUnclassified, Code: CodeUnclassified, Message: "System error occurred", Err: err}
}

// ErrorResponse is the uniform error envelope returned at the HTTP boundary.
type ErrorResponse struct {
	ErrorCode    int       `json:"errorCode"`
	ErrorMessage string    `json:"errorMessage"`
	Timestamp    time.Time `json:"timestamp"`
	Path         string    `json:"path"`
}

// NewErrorResponse stamps an envelope with the current time.
func NewErrorResponse(code int, msg, path string) ErrorResponse {
	return ErrorResponse{
		ErrorCode:    code,
		ErrorMessage: msg,
		Timestamp:    time.Now(),
		Path:         path,
	}
}
