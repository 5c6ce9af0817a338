package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"neurodiverse/internal/model"
	"neurodiverse/internal/repository"

	"go.uber.org/zap"
)

const (
	// PDFFileName is the rendered dyslexia-friendly document
	PDFFileName = "dyslexic_friendly.pdf"
	// AudioFileName is the synthesized narration
	AudioFileName = "output.mp3"
)

// Renderer lays text out as a PDF file
type Renderer interface {
	RenderFile(path, text string) error
}

// Synthesizer converts text to MP3 audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Restyler rewrites text before rendering
type Restyler interface {
	Restyle(ctx context.Context, text string) (string, error)
}

// OutputService produces the downloadable artifacts in the output directory
type OutputService struct {
	outputDir   string
	lang        string
	textRepo    repository.TextRepo
	restyler    Restyler
	renderer    Renderer
	synthesizer Synthesizer
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewOutputService creates a new output service
func NewOutputService(
	outputDir, lang string,
	textRepo repository.TextRepo,
	restyler Restyler,
	renderer Renderer,
	synthesizer Synthesizer,
	logger *zap.Logger,
) *OutputService {
	return &OutputService{
		outputDir:   outputDir,
		lang:        lang,
		textRepo:    textRepo,
		restyler:    restyler,
		renderer:    renderer,
		synthesizer: synthesizer,
		broadcaster: noopBroadcaster{},
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *OutputService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// DyslexicPDF renders the stored text as a dyslexia-friendly PDF and
// returns its path. A failing style flow leaves the text unchanged.
func (s *OutputService) DyslexicPDF(ctx context.Context) (string, error) {
	text, err := s.textRepo.Load(ctx)
	if err != nil {
		return "", err
	}

	styled, err := s.restyler.Restyle(ctx, text)
	if err != nil {
		s.logger.Warn("style flow failed, rendering original text", zap.Error(err))
		styled = text
	}

	path := filepath.Join(s.outputDir, PDFFileName)
	if err := s.renderer.RenderFile(path, styled); err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}

	s.logger.Info("pdf rendered", zap.String("path", path), zap.Int("chars", len(styled)))
	s.broadcaster.Broadcast(model.EventPDFReady, map[string]string{"file": PDFFileName})
	return path, nil
}

// Narration synthesizes the stored text to MP3 and returns its path
func (s *OutputService) Narration(ctx context.Context) (string, error) {
	text, err := s.textRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	audio, err := s.synthesizer.Synthesize(ctx, text, s.lang)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(s.outputDir, AudioFileName)
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}

	s.logger.Info("narration saved", zap.String("path", path), zap.Int("bytes", len(audio)))
	s.broadcaster.Broadcast(model.EventAudioReady, map[string]string{"file": AudioFileName})
	return path, nil
}
