package rag

import (
	"context"
	"fmt"

	"docqa/internal/contextutil"
	"docqa/internal/keyword"
	"docqa/internal/service"
	"docqa/internal/vectorstore"
)

// Retriever returns the chunks most relevant to a query, best first, at
// most topK of them. An empty result means "no relevant context found" and
// is not an error.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]Source, error)
}

// KeywordRetriever adapts the in-memory keyword store to the Retriever
// interface.
type KeywordRetriever struct {
	store *keyword.Store
}

// NewKeywordRetriever creates a retriever over the given keyword store.
func NewKeywordRetriever(store *keyword.Store) *KeywordRetriever {
	return &KeywordRetriever{store: store}
}

// Search scores all stored chunks by keyword overlap and returns the top
// topK, preserving the store's stable ordering for tied scores.
func (r *KeywordRetriever) Search(ctx context.Context, query string, topK int) ([]Source, error) {
	results := r.store.Search(query, topK)

	sources := make([]Source, 0, len(results))
	for _, res := range results {
		sources = append(sources, Source{
			Text:     res.Text,
			Score:    float32(res.Score),
			Document: res.Document,
		})
	}
	return sources, nil
}

// Embedder turns a query into a fixed-length vector.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorRetriever retrieves chunks by embedding the query and running a
// nearest-neighbor search against the vector index. Backend availability is
// fixed at construction: with either collaborator absent, Search
// short-circuits to an empty result so callers can degrade gracefully.
type VectorRetriever struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	available   bool
}

// NewVectorRetriever creates a vector retriever. embedder or vectorStore may
// be nil, in which case the retriever reports itself unavailable.
func NewVectorRetriever(embedder Embedder, vectorStore vectorstore.VectorStore, collection string) *VectorRetriever {
	return &VectorRetriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		available:   embedder != nil && vectorStore != nil,
	}
}

// Available reports whether both the embedding backend and the vector store
// are configured.
func (r *VectorRetriever) Available() bool {
	return r.available
}

// Search embeds the query and returns the topK nearest chunks. When the
// backend is unavailable it returns an empty result, never an error.
func (r *VectorRetriever) Search(ctx context.Context, query string, topK int) ([]Source, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !r.available {
		logger.DebugContext(ctx, "vector retrieval skipped: backend unavailable")
		return nil, nil
	}

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %w", service.ErrExternalService, err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", service.ErrExternalService)
	}

	results, err := r.vectorStore.Search(ctx, r.collection, embeddings[0], topK)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search vector store: %w", service.ErrBackendUnavailable, err)
	}

	sources := make([]Source, 0, len(results))
	for _, res := range results {
		document, _ := res.Meta["document"].(string)
		sources = append(sources, Source{
			Text:     res.Text,
			Score:    res.Score,
			Document: document,
		})
	}
	return sources, nil
}
