package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnknownField         = errors.New("unknown field")
	ErrInvalidField         = errors.New("invalid field")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func validationErr(message string, sentinel error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New(message),
		kind:       fmt.Errorf("%w: %w", ErrBadRequest, sentinel),
	}
}

// NewMissingFieldsError lists every key the payload must carry.
func NewMissingFieldsError(required []string) *ApiErr {
	return validationErr("Required keys are "+strings.Join(required, ","), ErrMissingRequiredField)
}

// NewUnknownFieldsError is returned when a payload carries keys outside the allowed set.
func NewUnknownFieldsError(allowed []string, unknown []string) *ApiErr {
	apiErr := validationErr("Allowed keys are "+strings.Join(allowed, ","), ErrUnknownField)
	if len(unknown) > 0 {
		apiErr.Details = "unexpected keys: " + strings.Join(unknown, ",")
	}
	return apiErr
}

// NewEmptyPatchError is returned for a partial update that names no field.
func NewEmptyPatchError(allowed []string) *ApiErr {
	return validationErr("At least one of the keys "+strings.Join(allowed, ",")+" is required", ErrMissingRequiredField)
}

// NewInvalidEnumError renders the allowed values the way clients see them:
// "PreferredOS value needs to be Windows or Linux or MacOS".
func NewInvalidEnumError(label string, allowed []string) *ApiErr {
	return validationErr(fmt.Sprintf("%s value needs to be %s", label, strings.Join(allowed, " or ")), ErrInvalidField)
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	apiErr := validationErr("Invalid value for "+fieldName, ErrInvalidField)
	apiErr.Field = fieldName
	apiErr.Details = reason
	return apiErr
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	apiErr := validationErr(fmt.Sprintf("Malformed %s payload", payloadType), ErrMalformedPayload)
	apiErr.Cause = cause
	return apiErr
}

func NewInvalidJSONError(cause error) *ApiErr {
	apiErr := validationErr("Invalid JSON body", ErrInvalidJSON)
	apiErr.Cause = cause
	return apiErr
}

// Request & Input-Validation Error Type Checkers
func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsUnknownFieldError(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsInvalidJSONError(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}
