// Package extract provides text extraction from the supported document formats.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docqa/internal/service"
)

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether the given file extension is on the ingestion
// allow-list. ext should include the leading dot and may be any case.
func (e *Extractor) Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".md", ".pdf", ".docx":
		return true
	}
	return false
}

// Extract reads the file at path and returns its text content.
// Plain text files are decoded as UTF-8 with a Shift-JIS fallback; markdown
// is reduced to plain text; PDF and DOCX text is pulled from the binary
// format. Extraction failures are returned as errors wrapping
// service.ErrExtractionFailed, never embedded in the returned text.
func (e *Extractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !e.Supported(ext) {
		return "", fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", service.ErrExtractionFailed, filepath.Base(path), err)
	}

	text, err := e.ExtractBytes(content, ext)
	if err != nil {
		return "", err
	}
	return text, nil
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	var text string
	var err error

	switch strings.ToLower(ext) {
	case ".txt":
		text, err = extractPlain(content)
	case ".md":
		text, err = extractMarkdown(content)
	case ".pdf":
		text, err = extractPDF(content)
	case ".docx":
		text, err = extractDOCX(content)
	default:
		return "", fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", service.ErrExtractionFailed, err)
	}
	return text, nil
}
