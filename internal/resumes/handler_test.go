package resumes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"application-backend/internal/llm"
)

func newTestRouter(gen llm.Generator, maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(gen), maxBytes).RegisterRoutes(r)
	return r
}

func multipartUpload(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		fw, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, r *gin.Engine, field, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, field, name, content)
	req := httptest.NewRequest(http.MethodPost, "/parse-resume", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Error.Code
}

func TestParseHandlerFallbackResponse(t *testing.T) {
	r := newTestRouter(nil, 1<<20)
	resp := doUpload(t, r, "file", "resume.txt", []byte(sampleResume))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	meta := got["meta"].(map[string]any)
	assert.Equal(t, "fallback", meta["mode"])
	assert.Equal(t, "fallback-regex", meta["model"])
	assert.Equal(t, "FALLBACK", meta["finish_reason"])
	assert.Equal(t, "resume.txt", meta["filename"])
	assert.Contains(t, meta, "excerpt_chars")
	assert.Nil(t, meta["excerpt_chars"])

	parsed := got["parsed"].(map[string]any)
	contact := parsed["contact"].(map[string]any)
	assert.Equal(t, "jane.doe@example.com", contact["email"])
	assert.Contains(t, parsed, "targetRole")
	assert.Nil(t, parsed["targetRole"])
}

func TestParseHandlerErrors(t *testing.T) {
	r := newTestRouter(nil, 1<<20)

	resp := doUpload(t, r, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "validation_error", errorCode(t, resp))

	resp = doUpload(t, r, "file", "tool.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "unsupported_file_type", errorCode(t, resp))

	resp = doUpload(t, r, "file", "empty.txt", []byte("  \n"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "no_text_extracted", errorCode(t, resp))

	resp = doUpload(t, r, "file", "broken.docx", []byte("definitely not a zip"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "unreadable_document", errorCode(t, resp))
}

func TestParseHandlerInternalError(t *testing.T) {
	r := newTestRouter(&fakeGenerator{err: assert.AnError}, 1<<20)
	resp := doUpload(t, r, "file", "resume.txt", []byte(sampleResume))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "internal", errorCode(t, resp))
}

func TestParseHandlerRejectsOversizedUpload(t *testing.T) {
	r := newTestRouter(nil, 512)
	resp := doUpload(t, r, "file", "resume.txt", bytes.Repeat([]byte("a"), 4096))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}
