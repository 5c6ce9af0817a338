package handler

import (
	"context"
	"net/http"

	"neurodiverse/internal/model"

	"go.uber.org/zap"
)

// Generator runs the generation flows and reads back stored stories
type Generator interface {
	Summarize(ctx context.Context) (string, error)
	GenerateStory(ctx context.Context) ([]model.Chapter, error)
	GenerateCompound(ctx context.Context) (string, error)
	Chapters(ctx context.Context) ([]byte, error)
}

// GenerationHandler handles the summary and story endpoints
type GenerationHandler struct {
	gen    Generator
	logger *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(gen Generator, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		gen:    gen,
		logger: logger,
	}
}

// Summarize handles POST /summarize
func (h *GenerationHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	summary, err := h.gen.Summarize(r.Context())
	if err != nil {
		h.logger.Error("summarize failed", zap.Error(err))
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SummaryResponse{
		Message: "Summary generated successfully.",
		Summary: summary,
	})
}

// GenerateStory handles POST /generate-story
func (h *GenerationHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.gen.GenerateStory(r.Context())
	if err != nil {
		h.logger.Error("story generation failed", zap.Error(err))
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.StoryResponse{
		Message: "Story generated successfully",
		Story:   chapters,
	})
}

// Process1 handles POST /process1
func (h *GenerationHandler) Process1(w http.ResponseWriter, r *http.Request) {
	data, err := h.gen.GenerateCompound(r.Context())
	if err != nil {
		h.logger.Error("compound generation failed", zap.Error(err))
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CompoundResponse{
		Message: "Data saved successfully",
		Data:    data,
	})
}

// GetStory handles GET /get-story. The stored document is returned as is.
func (h *GenerationHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	doc, err := h.gen.Chapters(r.Context())
	if err != nil {
		h.logger.Error("read stories failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
