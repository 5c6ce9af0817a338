package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"neurodiverse/internal/extract"
	"neurodiverse/internal/model"
	"neurodiverse/internal/repository"

	"go.uber.org/zap"
)

// DocumentService stores uploads and keeps their extracted text
type DocumentService struct {
	uploadDir   string
	extractor   extract.Extractor
	textRepo    repository.TextRepo
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(uploadDir string, extractor extract.Extractor, textRepo repository.TextRepo, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		uploadDir:   uploadDir,
		extractor:   extractor,
		textRepo:    textRepo,
		broadcaster: noopBroadcaster{},
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *DocumentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Upload saves the file under its base name, extracts its text and
// replaces the stored text with it
func (s *DocumentService) Upload(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error) {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if strings.TrimSpace(filename) == "" || name == "." || name == ".." || name == "/" {
		return nil, ErrEmptyFilename
	}

	path := filepath.Join(s.uploadDir, name)
	if err := saveFile(path, content); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	text, err := s.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	if err := s.textRepo.Save(ctx, text); err != nil {
		return nil, fmt.Errorf("save extracted text: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("file", name),
		zap.Int("chars", len(text)))
	s.broadcaster.Broadcast(model.EventTextExtracted, map[string]interface{}{
		"fileName": name,
		"chars":    len(text),
	})

	return &model.UploadResult{
		Message:  "Text extracted successfully",
		FilePath: path,
		FileName: name,
	}, nil
}

// Text returns the stored extracted text
func (s *DocumentService) Text(ctx context.Context) (string, error) {
	return s.textRepo.Load(ctx)
}

func saveFile(path string, content io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
