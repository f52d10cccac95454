package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/blog-catalog-backend/errs"
	"github.com/rs/zerolog"
)

// Responder is the single boundary that turns operation outcomes into
// HTTP responses. Errors that are not an *errs.ApiErr become a generic
// internal failure, with the underlying message kept for diagnostics.
type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteData writes a success envelope with the given status code.
func (r Responder) WriteData(w http.ResponseWriter, status int, data any, message string) {
	r.writeJSON(w, status, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteList writes a success envelope carrying one page of records plus
// the pagination metadata block.
func (r Responder) WriteList(w http.ResponseWriter, data any, pagination Pagination) {
	r.writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
	})
}

// WriteMessage writes a success envelope with no data payload.
func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return a generic internal failure.
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: "An unexpected error occurred",
			Error:   err.Error(),
		})
		return
	}

	response := Response{
		Success: false,
		Message: apiErr.Error(),
		Errors:  apiErr.Violations,
	}

	// Attach the full cause chain for upstream failures so they are
	// diagnosable without being retried here.
	if apiErr.Cause != nil {
		response.Error = apiErr.GetFullError()
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}

	r.writeJSON(w, apiErr.StatusCode, response)
}

// writeJSON marshals first so encoding failures can still produce a
// clean 500 instead of a half-written body.
func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
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
