// Package ingest turns files into stored, retrievable documents. It feeds
// the in-memory keyword store always and the embedding pipeline when that
// backend is configured.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"docqa/internal/contextutil"
	"docqa/internal/extract"
	"docqa/internal/indexer"
	"docqa/internal/keyword"
	"docqa/internal/service"
)

// Result reports the outcome of a single document ingestion.
type Result struct {
	Name    string
	Chunks  int
	Message string
}

// Service ingests documents from the filesystem.
type Service struct {
	extractor    *extract.Extractor
	keywordStore *keyword.Store
	pipeline     *indexer.Pipeline // nil when the embedding backend is absent
}

// NewService creates an ingestion service. pipeline may be nil; ingestion
// then serves only the keyword variant.
func NewService(extractor *extract.Extractor, keywordStore *keyword.Store, pipeline *indexer.Pipeline) *Service {
	return &Service{
		extractor:    extractor,
		keywordStore: keywordStore,
		pipeline:     pipeline,
	}
}

// Ingest extracts text from the file at path and stores it under the given
// display name. Unsupported extensions fail before extraction with
// service.ErrUnsupportedFormat; extraction failures surface before anything
// is stored. A document is stored whole or not at all.
func (s *Service) Ingest(ctx context.Context, path, name string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if name == "" {
		name = filepath.Base(path)
	}

	ext := filepath.Ext(path)
	if !s.extractor.Supported(ext) {
		return Result{}, fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, ext)
	}

	text, err := s.extractor.Extract(path)
	if err != nil {
		logger.WarnContext(ctx, "extraction failed", "path", path, "error", err)
		return Result{}, err
	}

	// The embedding pipeline runs first so a backend failure leaves nothing
	// stored; the keyword copy lands only once the document is fully indexed.
	if s.pipeline != nil {
		if _, err := s.pipeline.IndexDocument(ctx, name, text); err != nil {
			return Result{}, service.WrapError(err, "failed to index document for vector search")
		}
	}

	chunks := s.keywordStore.Add(name, text)

	logger.InfoContext(ctx, "ingested document", "name", name, "chunks", chunks)
	return Result{
		Name:    name,
		Chunks:  chunks,
		Message: fmt.Sprintf("document added: split into %d chunks", chunks),
	}, nil
}

// LoadDirectory ingests every supported file directly under dir, in name
// order. Individual file failures are logged and skipped. Returns the number
// of documents ingested. A missing directory is not an error; it loads
// nothing.
func (s *Service) LoadDirectory(ctx context.Context, dir string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !s.extractor.Supported(filepath.Ext(entry.Name())) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	count := 0
	for _, name := range names {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}

		if _, err := s.Ingest(ctx, filepath.Join(dir, name), name); err != nil {
			logger.WarnContext(ctx, "failed to ingest sample document", "name", name, "error", err)
			continue
		}
		count++
	}

	logger.InfoContext(ctx, "loaded sample documents", "dir", dir, "count", count)
	return count, nil
}
