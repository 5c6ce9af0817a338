// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor returns the text content of a document on disk
type Extractor interface {
	Extract(path string) (string, error)
}

// PDFExtractor extracts page text from PDF files
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract concatenates the plain text of every page in order
func (e *PDFExtractor) Extract(path string) (text string, err error) {
	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("failed to extract page text",
				zap.String("file", path),
				zap.Int("page", i),
				zap.Error(err))
			continue
		}

		b.WriteString(pageText)
		if !strings.HasSuffix(pageText, "\n") {
			b.WriteString("\n")
		}
	}

	e.logger.Info("extracted PDF text",
		zap.String("file", path),
		zap.Int("pages", r.NumPage()),
		zap.Int("chars", b.Len()))

	return b.String(), nil
}
