// Package handler holds shared HTTP response helpers used by the
// storefront and admin handler packages.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/middleware"
	"github.com/mpetrenko/voltride/internal/telemetry"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a structured JSON error response derived from a domain
// error. The user-facing message comes from domain.ErrorMessage, which
// hides internal detail. Server faults also go to Sentry.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}

	if status >= 500 {
		slog.Error("request error", attrs...)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	} else {
		slog.Info("request error", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// BadRequest is a convenience wrapper for 400 errors.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, domain.Errorf(domain.EINVALID, "", "%s", message))
}

// NotFound is a convenience wrapper for 404 errors.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, domain.Errorf(domain.ENOTFOUND, "", "The requested resource was not found"))
}

// Unauthorized is a convenience wrapper for 401 errors.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	Error(w, r, domain.Errorf(domain.EUNAUTHORIZED, "", "Authentication required"))
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized // 401
	case domain.EFORBIDDEN:
		return http.StatusForbidden // 403
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable // 503
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	case domain.ENOTIMPL:
		return http.StatusNotImplemented // 501
	default:
		return http.StatusInternalServerError // 500
	}
}
