package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine codes so a front end can branch on the failure kind
// instead of parsing message strings.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUserNotEligible     = "USER_NOT_ELIGIBLE"
	CodeNotFound            = "NOT_FOUND"
	CodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	CodeArtifactUnavailable = "ARTIFACT_UNAVAILABLE"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeInvalidStatus       = "INVALID_STATUS"
)

// ServiceError is an error with a stable code and an associated HTTP status.
type ServiceError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two ServiceErrors by code.
func (e *ServiceError) Is(target error) bool {
	var se *ServiceError
	if errors.As(target, &se) {
		return se.Code == e.Code
	}
	return false
}

func newf(code string, status int, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: code, Status: status, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...interface{}) *ServiceError {
	return newf(CodeInvalidInput, http.StatusBadRequest, format, args...)
}

func UserNotEligible(format string, args ...interface{}) *ServiceError {
	return newf(CodeUserNotEligible, http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...interface{}) *ServiceError {
	return newf(CodeNotFound, http.StatusNotFound, format, args...)
}

func CapacityExceeded(format string, args ...interface{}) *ServiceError {
	return newf(CodeCapacityExceeded, http.StatusConflict, format, args...)
}

func ArtifactUnavailable(err error, format string, args ...interface{}) *ServiceError {
	e := newf(CodeArtifactUnavailable, http.StatusBadGateway, format, args...)
	e.Err = err
	return e
}

func StoreUnavailable(err error) *ServiceError {
	return &ServiceError{
		Code:    CodeStoreUnavailable,
		Status:  http.StatusInternalServerError,
		Message: "storage unavailable",
		Err:     err,
	}
}

func InvalidStatus(format string, args ...interface{}) *ServiceError {
	return newf(CodeInvalidStatus, http.StatusConflict, format, args...)
}

// CodeOf returns the stable code of err, or STORE_UNAVAILABLE for anything
// that is not a ServiceError (unexpected failures read as infrastructure).
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeStoreUnavailable
}

// StatusOf returns the HTTP status to use for err.
func StatusOf(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}
