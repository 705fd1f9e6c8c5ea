package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError_Classification(t *testing.T) {
	tests := []struct {
		name    string
		cause   error
		status  int
		message string
		is      []error
	}{
		{
			name:    "gorm duplicated key",
			cause:   gorm.ErrDuplicatedKey,
			status:  http.StatusConflict,
			message: "developer already exists",
			is:      []error{ErrConflict, ErrUniqueConstraintViolation},
		},
		{
			name:    "postgres unique violation",
			cause:   fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
			status:  http.StatusConflict,
			message: "developer already exists",
			is:      []error{ErrConflict, ErrUniqueConstraintViolation},
		},
		{
			name:    "postgres foreign key violation",
			cause:   &pgconn.PgError{Code: "23503"},
			status:  http.StatusBadRequest,
			message: "invalid reference in developer",
			is:      []error{ErrBadRequest, ErrForeignKeyConstraint},
		},
		{
			name:    "postgres undefined column",
			cause:   &pgconn.PgError{Code: "42703"},
			status:  http.StatusConflict,
			message: "unknown column for developer",
			is:      []error{ErrConflict, ErrUndefinedColumn},
		},
		{
			name:    "record not found",
			cause:   gorm.ErrRecordNotFound,
			status:  http.StatusNotFound,
			message: "developer not found",
			is:      []error{ErrNotFound},
		},
		{
			name:    "deadline exceeded",
			cause:   context.DeadlineExceeded,
			status:  http.StatusServiceUnavailable,
			message: "context deadline exceeded",
			is:      []error{ErrContextDeadline, ErrDatabaseConnection},
		},
		{
			name:    "client went away",
			cause:   context.Canceled,
			status:  http.StatusRequestTimeout,
			message: "client disconnected",
			is:      []error{ErrClientDisconnected},
		},
		{
			name:    "anything else",
			cause:   errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "database query failed",
			is:      []error{ErrInternal, ErrDatabaseQuery},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "developer", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.message, err.Message())
			for _, target := range tt.is {
				assert.ErrorIs(t, err, target)
			}
		})
	}
}

func TestPgCode(t *testing.T) {
	assert.Equal(t, "23505", PgCode(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.Equal(t, "", PgCode(errors.New("plain")))
}

func TestValidationErrors(t *testing.T) {
	missing := NewMissingFieldsError([]string{"name", "email"})
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
	assert.Equal(t, "Required keys are name,email", missing.Message())
	assert.True(t, IsBadRequest(missing))
	assert.True(t, IsMissingRequiredFieldError(missing))

	unknown := NewUnknownFieldsError([]string{"name", "email"}, []string{"age"})
	assert.Equal(t, "Allowed keys are name,email", unknown.Message())
	assert.Equal(t, "unexpected keys: age", unknown.Details)
	assert.Equal(t, "Allowed keys are name,email: unexpected keys: age", unknown.Error())
	assert.True(t, IsUnknownFieldError(unknown))
	assert.False(t, IsMissingRequiredFieldError(unknown))

	enum := NewInvalidEnumError("PreferredOS", []string{"Windows", "Linux", "MacOS"})
	assert.Equal(t, "PreferredOS value needs to be Windows or Linux or MacOS", enum.Message())
	assert.True(t, IsInvalidFieldError(enum))

	field := NewInvalidFieldError("startDate", "bad date")
	assert.Equal(t, "startDate", field.Field)
	assert.Equal(t, "Invalid value for startDate", field.Message())

	invalidJSON := NewInvalidJSONError(errors.New("unexpected EOF"))
	assert.True(t, IsInvalidJSONError(invalidJSON))
	assert.True(t, IsBadRequest(invalidJSON))
	assert.Contains(t, invalidJSON.GetFullError(), "unexpected EOF")
}

func TestNotFoundAndConflict(t *testing.T) {
	notFound := NewNotFound("Developer")
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
	assert.Equal(t, "Developer not found", notFound.Message())
	assert.True(t, IsNotFound(notFound))

	conflict := NewConflictError("Email already in use")
	assert.True(t, IsConflict(conflict))
	assert.False(t, IsNotFound(conflict))

	undefined := NewUndefinedColumnError([]string{"name", "email"}, []string{"age"})
	assert.Equal(t, http.StatusConflict, undefined.StatusCode)
	assert.Equal(t, "Required keys are: name,email", undefined.Message())
	assert.True(t, IsUndefinedColumnError(undefined))
}

func TestGetFullError_Nested(t *testing.T) {
	inner := NewInternalErrorWithCause("inner", errors.New("root cause"))
	outer := NewTransactionFailedError("delete developer", inner)

	assert.True(t, IsTransactionFailedError(outer))
	assert.Equal(t,
		"transaction failed: Transaction failed during delete developer -> inner -> root cause",
		outer.GetFullError())
}

func TestConfigErrors(t *testing.T) {
	err := NewConfigError("/db/password", errors.New("access denied"))
	assert.True(t, IsConfigError(err))
	assert.True(t, IsInternal(err))

	env := NewEnvironmentVariableError("DB_PORT")
	assert.True(t, IsConfigError(env))
	assert.Equal(t, "DB_PORT", env.Field)
}

func TestNewDatabaseError_Context(t *testing.T) {
	deadline := NewDatabaseError("find", "developer", context.DeadlineExceeded)
	assert.True(t, IsContextDeadlineError(deadline))
	assert.False(t, IsClientDisconnectedError(deadline))
	assert.Equal(t, http.StatusServiceUnavailable, deadline.StatusCode)

	canceled := NewDatabaseError("find", "developer", fmt.Errorf("query: %w", context.Canceled))
	assert.True(t, IsClientDisconnectedError(canceled))
	assert.False(t, IsContextDeadlineError(canceled))
	assert.Equal(t, http.StatusRequestTimeout, canceled.StatusCode)
}
