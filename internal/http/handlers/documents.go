package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/docchat-ai/docchat/pkg/logging"
)

// DocumentIngestor indexes raw document text and reports the chunk count.
type DocumentIngestor interface {
	Ingest(ctx context.Context, text string) (int, error)
}

// DocumentsHandler accepts plain-text document uploads for indexing.
type DocumentsHandler struct {
	ingestor DocumentIngestor
	maxBytes int64
	logger   *logging.Logger
}

// NewDocumentsHandler creates the handler. maxBytes <= 0 defaults to 5 MiB.
func NewDocumentsHandler(ingestor DocumentIngestor, maxBytes int64, logger *logging.Logger) *DocumentsHandler {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DocumentsHandler{
		ingestor: ingestor,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// HandleUpload ingests one multipart file upload. Only .txt and .md files
// are accepted; there is no PDF parsing.
func (h *DocumentsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".txt" && ext != ".md" {
		writeError(w, http.StatusUnsupportedMediaType, "only .txt and .md files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	chunks, err := h.ingestor.Ingest(r.Context(), string(data))
	if err != nil {
		h.logger.Error("documents: ingest failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to index document")
		return
	}

	h.logger.Info("documents: indexed", "filename", header.Filename, "chunks", chunks)
	writeJSON(w, http.StatusCreated, map[string]any{
		"filename": header.Filename,
		"chunks":   chunks,
	})
}
