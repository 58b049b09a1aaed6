package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladr7/shift-scheduler-api/pkg/storage"
)

type fakeOCRSrv struct {
	text     string
	cacheHit bool
	err      error
	lastLang string
}

func (f *fakeOCRSrv) Recognize(_ context.Context, _, language string) (string, bool, error) {
	f.lastLang = language
	return f.text, f.cacheHit, f.err
}

func newOCRHandlerForTest(t *testing.T, srv ocrService, maxSize int64) (*OCRHandler, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewUploadStore(dir)
	require.NoError(t, err)
	return NewOCRHandler(srv, store, nil, maxSize, nil), dir
}

func postUpload(t *testing.T, field, filename string, content []byte, extra map[string]string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/ocr", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return rec, c
}

func TestOCRHandlerRecognize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeOCRSrv{text: "Dana בוקר", cacheHit: true}
	h, dir := newOCRHandlerForTest(t, srv, 1024)

	rec, c := postUpload(t, "schedule", "grid.png", []byte("img"), map[string]string{"language": "hebrew"})
	h.Recognize(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hebrew", srv.lastLang)

	var envelope struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Dana בוקר", envelope.Data.Text)
	assert.Equal(t, true, envelope.Meta["cache_hit"])

	// The transient upload must be gone after the request.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOCRHandlerDefaultsLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeOCRSrv{text: "ok"}
	h, _ := newOCRHandlerForTest(t, srv, 1024)

	rec, c := postUpload(t, "schedule", "grid.png", []byte("img"), nil)
	h.Recognize(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "both", srv.lastLang)
}

func TestOCRHandlerMissingUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newOCRHandlerForTest(t, &fakeOCRSrv{}, 1024)

	rec, c := postUpload(t, "wrongfield", "grid.png", []byte("img"), nil)
	h.Recognize(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOCRHandlerRejectsOversizedUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newOCRHandlerForTest(t, &fakeOCRSrv{}, 4)

	rec, c := postUpload(t, "schedule", "grid.png", []byte("more than four bytes"), nil)
	h.Recognize(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestOCRHandlerKeepsExtension(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeOCRSrv{text: "ok"}
	dir := t.TempDir()
	store, err := storage.NewUploadStore(dir)
	require.NoError(t, err)

	var savedExt string
	probe := &extProbe{inner: srv, store: store, ext: &savedExt}
	h := NewOCRHandler(probe, store, nil, 1024, nil)

	_, c := postUpload(t, "schedule", "grid.jpeg", []byte("img"), nil)
	h.Recognize(c)

	assert.Equal(t, ".jpeg", savedExt)
}

type extProbe struct {
	inner ocrService
	store *storage.UploadStore
	ext   *string
}

func (p *extProbe) Recognize(ctx context.Context, filename, language string) (string, bool, error) {
	*p.ext = filepath.Ext(filename)
	return p.inner.Recognize(ctx, filename, language)
}
