package handler

import (
	"context"
	"io"
	"net/http"

	"neurodiverse/internal/model"
	"neurodiverse/internal/service"

	"go.uber.org/zap"
)

// maxUploadMemory is the part of a multipart upload kept in memory
const maxUploadMemory = 32 << 20

// Uploader stores an uploaded document and extracts its text
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error)
}

// DocumentHandler handles document upload
type DocumentHandler struct {
	docs   Uploader
	logger *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs Uploader, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:   docs,
		logger: logger,
	}
}

// Upload handles POST /upload
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeErr(w, service.ErrNoFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// a file part sent without a filename is parsed as a plain value
		if _, ok := r.MultipartForm.Value["file"]; ok {
			writeErr(w, service.ErrEmptyFilename)
			return
		}
		writeErr(w, service.ErrNoFile)
		return
	}
	defer file.Close()

	result, err := h.docs.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error("upload failed", zap.String("file", header.Filename), zap.Error(err))
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
