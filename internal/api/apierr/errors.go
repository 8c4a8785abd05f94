package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/boggle-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNicknameRequired = "NICKNAME_REQUIRED"
	CodeWordRequired     = "WORD_REQUIRED"
	CodeInvalidTimeLimit = "INVALID_TIME_LIMIT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeUnknownUser      = "UNKNOWN_USER"
	CodeNotParticipant   = "NOT_PARTICIPANT"
	CodeNotSeated        = "NOT_SEATED"
	CodeConflict         = "CONFLICT"
	CodeAlreadySeated    = "ALREADY_SEATED"
	CodeMatchNotActive   = "MATCH_NOT_ACTIVE"
	CodeNotFound         = "NOT_FOUND"
	CodeMatchNotFound    = "MATCH_NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// specificCodes refines the category code for errors callers commonly branch on
var specificCodes = []struct {
	err  error
	code string
}{
	{model.ErrEmptyNickname, CodeNicknameRequired},
	{model.ErrEmptyWord, CodeWordRequired},
	{model.ErrTimeLimitOutOfRange, CodeInvalidTimeLimit},
	{model.ErrUnknownUser, CodeUnknownUser},
	{model.ErrNotParticipant, CodeNotParticipant},
	{model.ErrNotSeated, CodeNotSeated},
	{model.ErrAlreadySeated, CodeAlreadySeated},
	{model.ErrMatchNotActive, CodeMatchNotActive},
	{model.ErrMatchNotFound, CodeMatchNotFound},
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error is reported with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Invalid input and unauthorized
// callers are both reported as 403.
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var status int
	var code string
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		status, code = http.StatusForbidden, CodeInvalidInput
	case errors.Is(err, model.ErrUnauthorized):
		status, code = http.StatusForbidden, CodeUnauthorized
	case errors.Is(err, model.ErrStateConflict):
		status, code = http.StatusConflict, CodeConflict
	case errors.Is(err, model.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}

	for _, sc := range specificCodes {
		if errors.Is(err, sc.err) {
			code = sc.code
			break
		}
	}
	return &httpError{status, APIError{code, err.Error()}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewRouteNotFoundError is returned for paths no route matches
func NewRouteNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeRouteNotFound, "Route not found"}}
}

// NewMethodNotAllowedError is returned when a route exists but not for the method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}
