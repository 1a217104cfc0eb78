package resumes

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"application-backend/internal/extract"
	"application-backend/internal/shared/server/middleware"
	"application-backend/internal/shared/server/respond"
	"application-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/parse-resume", h.parse)
}

func (h *Handler) parse(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		if c.Request.ContentLength > h.MaxUploadBytes {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "File is too large", nil)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge, "File is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "No file provided", nil)
		return
	}

	if _, err := extract.CheckName(fileHeader.Filename); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeUnsupportedFileType, unsupportedMessage(err), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Unable to read file", nil)
		return
	}

	resp, err := h.Svc.Parse(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		switch {
		case extract.IsUnsupported(err):
			respond.Error(c, http.StatusBadRequest, respond.CodeUnsupportedFileType, unsupportedMessage(err), nil)
		case errors.Is(err, extract.ErrNoTextExtracted):
			respond.Error(c, http.StatusBadRequest, respond.CodeNoTextExtracted, "Could not extract text from resume.", nil)
		case extract.IsUnreadable(err):
			telemetry.Warn("resume.unreadable", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"filename":   fileHeader.Filename,
				"error":      err,
			})
			respond.Error(c, http.StatusBadRequest, respond.CodeUnreadableDocument, "Could not read the uploaded document.", nil)
		default:
			telemetry.Error("resume.parse_failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"filename":   fileHeader.Filename,
				"error":      err,
			})
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Internal error while processing resume.", nil)
		}
		return
	}

	c.Set(middleware.ParseModeKey, string(resp.Meta.Mode))
	respond.OK(c, resp)
}

func unsupportedMessage(err error) string {
	var ute *extract.UnsupportedTypeError
	if errors.As(err, &ute) {
		ext := ute.Ext
		if ext == "" {
			ext = "unknown"
		}
		return fmt.Sprintf("Unsupported file type: %s", ext)
	}
	return "Unsupported file type"
}
