package utils

import (
	"errors"
	"net/http"
)

// APIError is the error shape every handler returns to clients.
// It mirrors the {statusCode, msg} body documented for the public API.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Msg        string `json:"msg"`
}

func (e *APIError) Error() string {
	return e.Msg
}

func NewAPIError(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Msg: msg}
}

func BadRequest(msg string) *APIError {
	return NewAPIError(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) *APIError {
	return NewAPIError(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *APIError {
	return NewAPIError(http.StatusForbidden, msg)
}

func NotFound(msg string) *APIError {
	return NewAPIError(http.StatusNotFound, msg)
}

func Conflict(msg string) *APIError {
	return NewAPIError(http.StatusConflict, msg)
}

func UnprocessableEntity(msg string) *APIError {
	return NewAPIError(http.StatusUnprocessableEntity, msg)
}

// AsAPIError unwraps err into an APIError, falling back to a 500 so
// internal failures never leak driver details to the client.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(http.StatusInternalServerError, "internal server error")
}
