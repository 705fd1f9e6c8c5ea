package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// Timeout & Cancellation Errors
var (
	ErrContextDeadline    = errors.New("context deadline exceeded")
	ErrClientDisconnected = errors.New("client disconnected")
)

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		kind:       ErrInternal,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		kind:       ErrInternal,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

// Timeout & Cancellation Error Constructors
func NewContextDeadlineError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrContextDeadline,
		kind:       ErrDatabaseConnection,
		Details:    fmt.Sprintf("Context deadline exceeded for %s", operation),
		Cause:      cause,
	}
}

func NewClientDisconnectedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestTimeout,
		err:        ErrClientDisconnected,
		Details:    "Client disconnected during request",
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrEnvironmentVariable)
}

func IsContextDeadlineError(err error) bool {
	return errors.Is(err, ErrContextDeadline)
}

func IsClientDisconnectedError(err error) bool {
	return errors.Is(err, ErrClientDisconnected)
}
