package observability

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldOperation is the field name for the store operation.
	LogFieldOperation = "operation"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
)

// RequestContext represents the context for a single request with structured logging.
type RequestContext struct {
	RequestID string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewRequestContext creates a new request context with a generated request ID.
func NewRequestContext(logger *slog.Logger) *RequestContext {
	return &RequestContext{
		RequestID: generateRequestID(),
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// NewRequestContextWithID creates a new request context with a specific request ID.
func NewRequestContextWithID(logger *slog.Logger, requestID string) *RequestContext {
	return &RequestContext{
		RequestID: requestID,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Elapsed returns the time elapsed since the request started.
func (rc *RequestContext) Elapsed() time.Duration {
	return time.Since(rc.StartTime)
}

// LogRequest logs the completion of a request.
func (rc *RequestContext) LogRequest(method, path string, status int) {
	rc.Logger.Info("request completed",
		slog.String(LogFieldRequestID, rc.RequestID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Int64(LogFieldDuration, rc.Elapsed().Milliseconds()),
	)
}

// LogError logs a request failure with its error code.
func (rc *RequestContext) LogError(operation string, code string, err error) {
	rc.Logger.Error("request failed",
		slog.String(LogFieldRequestID, rc.RequestID),
		slog.String(LogFieldOperation, operation),
		slog.String(LogFieldErrorCode, code),
		slog.String("error", err.Error()),
		slog.Int64(LogFieldDuration, rc.Elapsed().Milliseconds()),
	)
}

// generateRequestID generates a short, log-friendly request identifier.
func generateRequestID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
