package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// DecodeJSON reads one JSON value into v. An empty body leaves v untouched.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func WriteBadJSON(w http.ResponseWriter) {
	WriteError(w, http.StatusBadRequest, "malformed_json", "malformed JSON body", nil)
}

// WriteServiceError maps a service failure onto status, code and message.
// Anything unclassified is logged and hidden behind a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
		return
	}

	switch se.Kind {
	case services.KindValidation:
		var details interface{}
		if len(se.Fields) > 0 {
			details = se.Fields
		}
		WriteError(w, http.StatusBadRequest, "validation_error", se.Msg, details)
	case services.KindConflict:
		WriteError(w, http.StatusBadRequest, "conflict", se.Msg, nil)
	case services.KindUnauthorized:
		WriteError(w, http.StatusUnauthorized, "unauthorized", se.Msg, nil)
	case services.KindInvalidCredentials:
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", se.Msg, nil)
	case services.KindForbidden:
		WriteError(w, http.StatusForbidden, "forbidden", se.Msg, nil)
	case services.KindNotFound:
		WriteError(w, http.StatusNotFound, "not_found", se.Msg, nil)
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
