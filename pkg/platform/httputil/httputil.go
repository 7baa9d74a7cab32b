// Package httputil renders the API envelope and decodes request bodies.
package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/requestcontext"
)

const internalErrorMessage = "An unexpected error occurred"

// maxBodyBytes bounds request bodies accepted by DecodeJSON.
const maxBodyBytes = 1 << 20

// Envelope is the uniform response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope carrying data.
func WriteSuccess(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// WriteMessage writes a success envelope without data.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message})
}

// WriteError translates err into a failure envelope. Errors without a domain
// code, and internal ones, are rendered without detail.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := internalErrorMessage
	if de, ok := dErrors.As(err); ok {
		code = de.Code
		if dErrors.ToHTTPStatus(code) != http.StatusInternalServerError {
			message = de.Message
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), Envelope{
		Success: false,
		Error:   dErrors.Title(code),
		Message: message,
	})
}

// Fail logs err against the request and writes its failure envelope.
// Server-side failures log at error level, client mistakes at warn.
func Fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if logger != nil {
		ctx := r.Context()
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		}
		de, ok := dErrors.As(err)
		if !ok || dErrors.ToHTTPStatus(de.Code) == http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed", attrs...)
		} else {
			logger.WarnContext(ctx, "request rejected", attrs...)
		}
	}
	WriteError(w, err)
}

// WriteFailure writes a failure envelope for a status without a domain error.
func WriteFailure(w http.ResponseWriter, status int, code dErrors.Code, message string) {
	WriteJSON(w, status, Envelope{Success: false, Error: dErrors.Title(code), Message: message})
}

// DecodeJSON reads a JSON object body into dst. An absent, null or empty
// object body is rejected as "No data provided".
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return dErrors.New(dErrors.CodeBadRequest, "No data provided")
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid request body")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return dErrors.New(dErrors.CodeBadRequest, "No data provided")
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid request body")
	}
	if len(probe) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "No data provided")
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid request body")
	}
	return nil
}

// PathUUID parses the named chi URL parameter. A malformed id addresses no
// record, so callers answer it with their not-found error.
func PathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// PathInt parses the named chi URL parameter as a positive integer id.
func PathInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
