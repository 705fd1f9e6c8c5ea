package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
	ErrUndefinedColumn           = errors.New("undefined column")
	ErrTransactionFailed         = errors.New("transaction failed")
)

// PostgreSQL SQLSTATE codes the API translates into client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgUndefinedColumn     = "42703"
)

// NewNotFound builds the client-facing "<Entity> not found" error.
func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// PgCode extracts the SQLSTATE from a PostgreSQL driver error, or "" when
// err did not come from PostgreSQL.
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	code := PgCode(cause)
	switch {
	case errors.Is(cause, gorm.ErrDuplicatedKey) || code == pgUniqueViolation:
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s already exists", entity),
			kind:       fmt.Errorf("%w: %w", ErrConflict, ErrUniqueConstraintViolation),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrForeignKeyViolated) || code == pgForeignKeyViolation:
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("invalid reference in %s", entity),
			kind:       fmt.Errorf("%w: %w", ErrBadRequest, ErrForeignKeyConstraint),
			Details:    "The referenced resource does not exist or cannot be linked",
			Cause:      cause,
		}
	case code == pgUndefinedColumn:
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("unknown column for %s", entity),
			kind:       fmt.Errorf("%w: %w", ErrConflict, ErrUndefinedColumn),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, context.Canceled):
		return NewClientDisconnectedError(cause)
	case errors.Is(cause, context.DeadlineExceeded):
		return NewContextDeadlineError(fmt.Sprintf("%s %s", operation, entity), cause)
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		kind:       ErrInternal,
		Details:    details,
		Cause:      cause,
	}
}

func NewTransactionFailedError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTransactionFailed,
		kind:       ErrInternal,
		Details:    fmt.Sprintf("Transaction failed during %s", operation),
		Cause:      cause,
		Field:      "transaction",
	}
}

// Database & Storage Error Type Checkers
func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}

func IsUndefinedColumnError(err error) bool {
	return errors.Is(err, ErrUndefinedColumn)
}

func IsTransactionFailedError(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}

// NewUndefinedColumnError answers a create payload whose extra keys have no
// matching column, listing the keys the entity accepts.
func NewUndefinedColumnError(required []string, unknown []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("Required keys are: %s", strings.Join(required, ",")),
		kind:       fmt.Errorf("%w: %w", ErrConflict, ErrUndefinedColumn),
		Details:    "unexpected keys: " + strings.Join(unknown, ","),
	}
}
