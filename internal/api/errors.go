package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]any
	requestID string
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]any),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// WithCause records the underlying error message
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	if err != nil {
		eb.context["cause"] = err.Error()
	}
	return eb
}

// Build creates the final EngineError
func (eb *ErrorBuilder) Build() EngineError {
	return EngineError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleError writes err with the given status and type.
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, status int, errType, message string, err error) {
	engineErr := NewError(errType, message).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		WithCause(err).
		Build()

	eh.logError(r, engineErr, status)
	eh.writeErrorResponse(w, status, engineErr)
}

// HandleValidationError handles validation-specific errors
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	engineErr := NewError(ErrTypeValidation, fmt.Sprintf("Validation failed: %s", message)).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("field", field).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, http.StatusBadRequest)
	eh.writeErrorResponse(w, http.StatusBadRequest, engineErr)
}

func (eh *ErrorHandler) logError(r *http.Request, engineErr EngineError, status int) {
	category := GetErrorCategory(engineErr.Type)

	level := slog.LevelError
	if category == CategoryValidation || category == CategoryLookup {
		level = slog.LevelWarn
	}

	eh.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("type", engineErr.Type),
		slog.String("category", string(category)),
		slog.Int("status", status),
		slog.String("request_id", engineErr.RequestID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("message", engineErr.Message),
		slog.Any("context", engineErr.Context),
	)
}

func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, engineErr EngineError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.Header().Set("X-Error-Type", engineErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(engineErr.Type)))
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(engineErr); err != nil {
		eh.logger.Error("encode error response", "error", err)
	}
}

// RecoveryHandler turns panics into a structured 500.
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				requestID := middleware.GetReqID(r.Context())
				eh.logger.Error("panic recovered",
					"request_id", requestID,
					"path", r.URL.Path,
					"method", r.Method,
					"panic", rvr,
				)

				engineErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					Build()
				eh.writeErrorResponse(w, http.StatusInternalServerError, engineErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
