package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/logger"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteError logs the raw error and maps it to the response contract:
// validation failures are 400 with the full detail list, configuration
// problems are 500 with a prefixed message, everything else is 500
// surfacing the error message verbatim (or fallback when empty).
func WriteError(w http.ResponseWriter, err error, fallback string) {
	logger.Log.Error("request failed", "error", err)

	switch e := err.(type) {
	case *errors.ValidationError:
		WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error:   "Validation failed",
			Details: e.Details,
		})
	case *errors.ConfigurationError:
		WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error: "Configuration error: " + e.Message,
		})
	case *errors.ErrorWithStatusCode:
		WriteJSON(w, e.StatusCode, api.ErrorResponse{Error: e.Message})
	default:
		msg := err.Error()
		if msg == "" {
			msg = fallback
		}
		WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: msg})
	}
}

// Decode parses a JSON request body into body.
func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Error("failed to decode request body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
