package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neurodiverse/internal/model"
	"neurodiverse/internal/repository"

	"go.uber.org/zap"
)

func TestDocumentServiceUpload(t *testing.T) {
	stores := newTestStores(t)
	uploadDir := filepath.Join(stores.dir, "uploads")
	svc := NewDocumentService(uploadDir, fakeExtractor{text: "Hello\nWorld\n"}, stores.text, zap.NewNop())
	events := &fakeBroadcaster{}
	svc.SetBroadcaster(events)

	res, err := svc.Upload(context.Background(), "../../notes.pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if res.Message != "Text extracted successfully" {
		t.Errorf("message = %q", res.Message)
	}
	if res.FileName != "notes.pdf" {
		t.Errorf("fileName = %q, want notes.pdf", res.FileName)
	}
	if res.FilePath != filepath.Join(uploadDir, "notes.pdf") {
		t.Errorf("filePath = %q", res.FilePath)
	}
	if _, err := os.Stat(res.FilePath); err != nil {
		t.Errorf("upload not saved: %v", err)
	}

	text, err := svc.Text(context.Background())
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "Hello\nWorld\n" {
		t.Errorf("stored text = %q", text)
	}

	if len(events.events) != 1 || events.events[0].event != model.EventTextExtracted {
		t.Errorf("events = %+v", events.events)
	}
}

func TestDocumentServiceUploadErrors(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		extractor fakeExtractor
		want      error
	}{
		{name: "empty filename", filename: "", want: ErrEmptyFilename},
		{name: "blank filename", filename: "   ", want: ErrEmptyFilename},
		{name: "parent directory", filename: "..", want: ErrEmptyFilename},
		{name: "nested parent directory", filename: "docs/..", want: ErrEmptyFilename},
		{name: "extract failure", filename: "a.pdf", extractor: fakeExtractor{err: errBoom}, want: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores := newTestStores(t)
			svc := NewDocumentService(filepath.Join(stores.dir, "uploads"), tt.extractor, stores.text, zap.NewNop())

			_, err := svc.Upload(context.Background(), tt.filename, strings.NewReader("x"))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			if _, err := stores.text.Load(context.Background()); !errors.Is(err, repository.ErrTextNotFound) {
				t.Errorf("text stored after failed upload: %v", err)
			}
		})
	}
}
