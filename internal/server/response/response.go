// Package response writes the API's JSON envelope. Every response has a
// data field on success and an error field on failure.
package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/agentstation/diecast/pkg/errors"
)

// Response is the envelope of every API response.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail builds an error envelope.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes resp with status.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are out; nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Created writes data with 201.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Success(data))
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest writes a 400.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail("UNAUTHORIZED", message, details))
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusForbidden, Fail("FORBIDDEN", message, details))
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// Conflict writes a 409.
func Conflict(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusConflict, Fail("CONFLICT", message, details))
}

// TooLarge writes a 413.
func TooLarge(w http.ResponseWriter, message string) {
	JSON(w, http.StatusRequestEntityTooLarge, Fail("TOO_LARGE", "Request body too large", message))
}

// RateLimited writes a 429.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Rate limit exceeded", message))
}

// InternalError writes a 500 without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail("SERVICE_UNAVAILABLE", "Service unavailable", message))
}

// ErrorFromType maps the typed errors of pkg/errors to statuses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case stderrors.As(err, &maxErr):
		TooLarge(w, err.Error())
	case errors.IsValidationError(err), stderrors.Is(err, errors.ErrInvalidInput):
		BadRequest(w, err.Error(), "")
	case errors.IsAlreadyExists(err):
		Conflict(w, err.Error(), "")
	case stderrors.Is(err, errors.ErrReadOnly):
		Forbidden(w, err.Error(), "")
	default:
		InternalError(w, err)
	}
}
