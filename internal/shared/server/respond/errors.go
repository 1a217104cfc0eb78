package respond

import (
	"github.com/gin-gonic/gin"

	"application-backend/internal/shared/telemetry"
)

// Error codes shared by handlers.
const (
	CodeValidation             = "validation_error"
	CodeUnsupportedFileType    = "unsupported_file_type"
	CodeNoTextExtracted        = "no_text_extracted"
	CodeUnreadableDocument     = "unreadable_document"
	CodeInvalidPayload         = "invalid_payload"
	CodePayloadTooLarge        = "payload_too_large"
	CodeTransportNotConfigured = "transport_not_configured"
	CodeAuthenticationFailed   = "authentication_failed"
	CodeDeliveryFailed         = "delivery_failed"
	CodeRateLimited            = "rate_limited"
	CodeInternal               = "internal"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response and aborts the chain.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
