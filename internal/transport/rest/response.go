package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/salita/internal/domain"
	"github.com/heartmarshall/salita/pkg/ctxutil"
)

const maxBodyBytes = 1 << 16

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// respondError maps domain errors to HTTP statuses. Anything unrecognised is
// logged and reported as a 500 without its message.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]fieldError, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
			Code:    "VALIDATION",
			Message: "validation failed",
			Fields:  fields,
		}})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, domain.ErrInsufficientWords):
		writeError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_WORDS", err.Error())
	case errors.Is(err, domain.ErrIndexOutOfRange):
		writeError(w, http.StatusBadRequest, "INDEX_OUT_OF_RANGE", err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, domain.ErrServiceUnavailable):
		log.WarnContext(r.Context(), "upstream failure",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusBadGateway, "SERVICE_UNAVAILABLE", "translation service unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

func badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
}

type wordResponse struct {
	Filipino string `json:"filipino"`
	English  string `json:"english"`
}

func toWordResponse(e domain.WordEntry) wordResponse {
	return wordResponse{Filipino: e.Source, English: e.Target}
}

func toWordResponses(entries []domain.WordEntry) []wordResponse {
	out := make([]wordResponse, len(entries))
	for i, e := range entries {
		out[i] = toWordResponse(e)
	}
	return out
}

type wordRequest struct {
	Filipino string `json:"filipino"`
	English  string `json:"english"`
}

func (r wordRequest) entry() domain.WordEntry {
	return domain.NewWordEntry(r.Filipino, r.English)
}
