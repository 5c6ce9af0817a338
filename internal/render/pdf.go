// Package render produces reading-friendly PDF documents.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	fontFamily   = "OpenDyslexic"
	fallbackFont = "Helvetica"
	fontSizePt   = 22.5 // 30px
	lineSpacing  = 2.0
	marginMM     = 15.0
	ptToMM       = 25.4 / 72
)

// DyslexicRenderer lays out text in a large dyslexia-friendly font with
// double line spacing
type DyslexicRenderer struct {
	fontData []byte
	logger   *zap.Logger
}

// NewDyslexicRenderer loads the TrueType font at fontPath. A missing font is
// not fatal: documents fall back to a core font.
func NewDyslexicRenderer(fontPath string, logger *zap.Logger) *DyslexicRenderer {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		logger.Warn("font not found, PDF styling may be affected",
			zap.String("font", fontPath),
			zap.Error(err))
		data = nil
	}
	return &DyslexicRenderer{
		fontData: data,
		logger:   logger,
	}
}

// HasFont reports whether the dyslexia font was loaded
func (r *DyslexicRenderer) HasFont() bool {
	return r.fontData != nil
}

// Render writes text as a PDF document to w. Line breaks are kept.
func (r *DyslexicRenderer) Render(w io.Writer, text string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)

	tr := func(s string) string { return s }
	if r.HasFont() {
		pdf.AddUTF8FontFromBytes(fontFamily, "", r.fontData)
		pdf.SetFont(fontFamily, "", fontSizePt)
	} else {
		pdf.SetFont(fallbackFont, "", fontSizePt)
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()

	lineHeight := fontSizePt * lineSpacing * ptToMM
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	return pdf.Output(w)
}

// RenderFile renders text into a PDF file at path
func (r *DyslexicRenderer) RenderFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := r.Render(f, text); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
