package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"customers-api/internal/api/problem"
	"customers-api/internal/pkg/apperrors"
)

const bodyField = "body"

// decodeJSON turns every decoding failure into a field level validation
// error so malformed input is answered with the 400 problem document.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperrors.NewValidationError(bodyField, "A non-empty request body is required.")
	}
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperrors.NewValidationError(typeErr.Field, fmt.Sprintf("The %s field has an invalid value.", typeErr.Field))
	case errors.Is(err, io.EOF):
		return apperrors.NewValidationError(bodyField, "A non-empty request body is required.")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.NewValidationError(bodyField, "The request body is not valid JSON.")
	default:
		return apperrors.NewValidationError(bodyField, "The request body could not be read.")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		problem.Write(w, problem.Internal(""))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError is the single point where handler errors become wire bodies.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	doc := problem.Respond(w, r, err)

	level := slog.LevelWarn
	if doc.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "Request failed",
		slog.Int("status", doc.Status),
		slog.String("traceId", doc.TraceID),
		slog.Any("error", err),
	)
}
