// Package respond writes JSON responses and turns errors into bodies that
// are safe to show to API clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ytldr/internal/observability/logging"
	"ytldr/internal/observability/requestid"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already sent
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// AppError carries a message chosen for the client next to the internal cause.
type AppError struct {
	Code    int
	UserMsg string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// clientSafe lists fragments of 4xx messages that describe the client's own
// request and may be echoed back.
var clientSafe = []string{
	"required",
	"invalid",
	"must be",
	"must not",
	"too long",
	"too short",
	"unsupported",
	"no extractable text",
}

// SafeError writes err as a JSON error response.
//
// An *AppError anywhere in the chain supplies both status and message. Other
// 4xx errors are echoed when they read like validation failures. Everything
// else becomes a generic message and is logged with secrets masked.
func SafeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if err == nil {
		return
	}
	ctx := r.Context()
	body := ErrorBody{RequestID: requestid.FromContext(ctx)}
	logger := logging.FromContext(ctx)

	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		body.Error = appErr.UserMsg
		if appErr.Err != nil {
			logger.WarnContext(ctx, "request failed",
				slog.Int("code", code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
	case code < 500 && isClientSafe(err.Error()):
		body.Error = err.Error()
	default:
		body.Error = genericMessage(code)
		logger.ErrorContext(ctx, "request failed",
			slog.Int("code", code),
			slog.String("status", http.StatusText(code)),
			slog.String("error", SanitizeError(err)))
	}
	JSON(w, code, body)
}

func isClientSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, s := range clientSafe {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func genericMessage(code int) string {
	if code >= 500 {
		return "internal server error"
	}
	return strings.ToLower(http.StatusText(code))
}
