package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIngestor struct {
	texts []string
	err   error
}

func (s *stubIngestor) Ingest(_ context.Context, text string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.texts = append(s.texts, text)
	return 3, nil
}

func multipartUpload(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleUpload(t *testing.T) {
	ing := &stubIngestor{}
	h := NewDocumentsHandler(ing, 0, nil)

	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartUpload(t, "manual.txt", "the product manual text"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, ing.texts, 1)
	assert.Equal(t, "the product manual text", ing.texts[0])
	assert.Contains(t, rec.Body.String(), `"chunks":3`)
}

func TestHandleUploadRejectsUnsupportedExtension(t *testing.T) {
	ing := &stubIngestor{}
	h := NewDocumentsHandler(ing, 0, nil)

	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartUpload(t, "manual.pdf", "%PDF-1.4"))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Empty(t, ing.texts)
}

func TestHandleUploadRequiresFile(t *testing.T) {
	h := NewDocumentsHandler(&stubIngestor{}, 0, nil)

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUploadIngestFailure(t *testing.T) {
	h := NewDocumentsHandler(&stubIngestor{err: errors.New("embedder down")}, 0, nil)

	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartUpload(t, "manual.md", "# manual"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
