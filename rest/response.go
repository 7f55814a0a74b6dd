package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-rest-boot/logger"
	"go.uber.org/zap"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

type errorDetail struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"status_code"`
	Details    map[string]any `json:"details,omitempty"`
}

type errorBody struct {
	Success   bool        `json:"success"`
	Error     errorDetail `json:"error"`
	Timestamp string      `json:"timestamp"`
	RequestID string      `json:"request_id"`
}

// WriteError emits the framework's structured error shape.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	body := errorBody{
		Error: errorDetail{
			Code:       code,
			Message:    message,
			StatusCode: status,
			Details:    details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: RequestIDFromContext(r.Context()),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed writing error response", zap.Error(err))
	}
}

// WriteUnauthorized keeps the message generic on purpose: no detail about why
// a credential was rejected.
func WriteUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func WriteForbidden(w http.ResponseWriter, r *http.Request, message string, details map[string]any) {
	WriteError(w, r, http.StatusForbidden, "FORBIDDEN", message, details)
}

func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

func WriteInternalError(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}

// WriteJSON writes a success payload.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed writing response", zap.Error(err))
	}
}
