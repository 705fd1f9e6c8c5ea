package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/devprojects-api/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

func (r Responder) WriteCreated(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusCreated, data)
}

func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	// Marshal first so a failure can still become a 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unhandled error")
		r.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "Internal Server Error",
		})
		return
	}

	response := ErrorResponse{
		Message: apiErr.Message(),
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(apiErr.Cause).Msg(apiErr.GetFullError())
		// storage internals stay in the log
		response.Details = ""
	} else if apiErr.Cause != nil {
		r.logger.Debug().Err(apiErr.Cause).Int("status", apiErr.StatusCode).Msg(apiErr.Error())
	}

	r.writeJSON(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}

// transactionError keeps an *errs.ApiErr returned from inside a transaction
// and reports anything else, such as a failed commit, as a transaction failure.
func transactionError(operation string, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return errs.NewTransactionFailedError(operation, err)
}
