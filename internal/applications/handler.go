package applications

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"application-backend/internal/extract"
	"application-backend/internal/forms/build"
	"application-backend/internal/forms/model"
	"application-backend/internal/mailer"
	"application-backend/internal/shared/server/middleware"
	"application-backend/internal/shared/server/respond"
	"application-backend/internal/shared/telemetry"
)

// payloadAllowance covers the JSON payload, including drawn signature images,
// on top of the resume upload limit.
const payloadAllowance = 4 << 20

const authFailedMessage = "SMTP authentication failed. Check SMTP_USER/SMTP_PASS or use an app password."

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/submit-application", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		limit := h.MaxUploadBytes + payloadAllowance
		if c.Request.ContentLength > limit {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "Submission is too large", nil)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	raw, resume, ok := h.readSubmission(c)
	if !ok {
		return
	}

	payload, err := model.DecodePayload(raw)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidPayload, "Invalid payload.", nil)
		return
	}

	receipt, err := h.Svc.Deliver(c.Request.Context(), Submission{Payload: payload, Resume: resume})
	if receipt.ID != "" {
		c.Set(middleware.SubmissionIDKey, receipt.ID)
	}
	if err != nil {
		h.fail(c, receipt, err)
		return
	}

	respond.OK(c, gin.H{"status": "ok"})
}

// readSubmission returns the JSON payload bytes and the optional resume from
// either a JSON body or a multipart form.
func (h *Handler) readSubmission(c *gin.Context) ([]byte, *build.Resume, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			h.readError(c, err)
			return nil, nil, false
		}
		return raw, nil, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.readError(c, err)
		return nil, nil, false
	}
	values := form.Value["payload"]
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidPayload, "Missing payload field.", nil)
		return nil, nil, false
	}

	var resume *build.Resume
	if files := form.File["resume"]; len(files) > 0 && files[0].Size > 0 {
		data, err := readFile(files[0])
		if err != nil {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Unable to read resume file", nil)
			return nil, nil, false
		}
		resume = &build.Resume{FileName: files[0].Filename, Data: data}
	}
	return []byte(values[0]), resume, true
}

func (h *Handler) readError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "Submission is too large", nil)
		return
	}
	respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Unable to read request body", nil)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) fail(c *gin.Context, receipt Receipt, err error) {
	fields := map[string]any{
		"request_id":    middleware.RequestIDFromContext(c),
		"submission_id": receipt.ID,
		"error":         err,
	}
	switch {
	case errors.Is(err, mailer.ErrTransportNotConfigured):
		telemetry.Error("application.transport_not_configured", fields)
		respond.Error(c, http.StatusInternalServerError, respond.CodeTransportNotConfigured, "SMTP_HOST is not configured on the server.", nil)
	case errors.Is(err, mailer.ErrAuthenticationFailed):
		telemetry.Error("application.smtp_auth_failed", fields)
		respond.Error(c, http.StatusInternalServerError, respond.CodeAuthenticationFailed, authFailedMessage, nil)
	case extract.IsUnsupported(err):
		respond.Error(c, http.StatusBadRequest, respond.CodeUnsupportedFileType, unsupportedMessage(err), nil)
	case extract.IsUnreadable(err):
		telemetry.Warn("application.resume_unreadable", fields)
		respond.Error(c, http.StatusBadRequest, respond.CodeUnreadableDocument, "Could not read the uploaded resume.", nil)
	case errors.Is(err, ErrDeliveryFailed):
		telemetry.Error("application.delivery_failed", fields)
		respond.Error(c, http.StatusInternalServerError, respond.CodeDeliveryFailed, "Could not deliver the application email.", nil)
	default:
		telemetry.Error("application.submit_failed", fields)
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal error while submitting application.", nil)
	}
}

func unsupportedMessage(err error) string {
	var ute *extract.UnsupportedTypeError
	if errors.As(err, &ute) && ute.Ext != "" {
		return fmt.Sprintf("Unsupported resume file type: %s", ute.Ext)
	}
	return "Unsupported resume file type"
}
