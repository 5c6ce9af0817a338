package handler

import (
	"context"
	"net/http"
	"path/filepath"

	"neurodiverse/internal/service"

	"go.uber.org/zap"
)

// OutputProducer renders the stored text into downloadable files
type OutputProducer interface {
	DyslexicPDF(ctx context.Context) (string, error)
	Narration(ctx context.Context) (string, error)
}

// OutputHandler handles the PDF and audio endpoints
type OutputHandler struct {
	outputs OutputProducer
	logger  *zap.Logger
}

// NewOutputHandler creates a new output handler
func NewOutputHandler(outputs OutputProducer, logger *zap.Logger) *OutputHandler {
	return &OutputHandler{
		outputs: outputs,
		logger:  logger,
	}
}

// TextToSpeech handles GET /text_to_speech?file_name=...
// The parameter is required but the narration always covers the stored text.
func (h *OutputHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("file_name") == "" {
		writeErr(w, service.ErrMissingFileName)
		return
	}

	path, err := h.outputs.Narration(r.Context())
	if err != nil {
		h.logger.Error("text to speech failed", zap.Error(err))
		writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

// GeneratePDF handles POST /generate-pdf
func (h *OutputHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	path, err := h.outputs.DyslexicPDF(r.Context())
	if err != nil {
		h.logger.Error("pdf generation failed", zap.Error(err))
		writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
