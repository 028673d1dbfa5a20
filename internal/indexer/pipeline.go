package indexer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"docqa/internal/contextutil"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// docNamespace is the UUID namespace for deriving content identifiers.
// Point IDs must stay stable across processes so re-ingesting a document
// overwrites its previous vectors instead of duplicating them.
var docNamespace = uuid.MustParse("9a4f0e52-7c1d-4b6e-8f3a-2d5c61e0b9a7")

// Embedder turns texts into fixed-length vectors. Deterministic for
// identical input.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline indexes documents for the embedding variant: chunk, embed, and
// store vectors in the vector index with chunk rows mirrored in SQLite.
type Pipeline struct {
	docRepo     storage.DocumentStore
	chunkRepo   storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	chunker     *SentenceChunker
	chunkSize   int
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunker *SentenceChunker,
	chunkSize int,
) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{
		docRepo:     docRepo,
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunker:     chunker,
		chunkSize:   chunkSize,
	}
}

// ContentID derives the deterministic content identifier for a document name.
func ContentID(name string) string {
	return uuid.NewSHA1(docNamespace, []byte(name)).String()
}

// chunkID derives the deterministic point ID for a chunk of a document.
func chunkID(contentID string, index int) string {
	return uuid.NewSHA1(docNamespace, []byte(contentID+"_"+strconv.Itoa(index))).String()
}

// contentHash fingerprints document text for change detection.
func contentHash(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

// IndexDocument chunks and embeds text under the given display name and
// upserts the result into the vector index and SQLite. Re-ingestion is
// delete-then-insert: all chunks from a prior version are removed first, so
// a shorter new version leaves no stale chunks behind. Either the whole
// document is stored or nothing is.
//
// Returns the number of chunks stored.
func (p *Pipeline) IndexDocument(ctx context.Context, name, text string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	contentID := ContentID(name)
	hash := contentHash(text)

	existing, err := p.docRepo.GetByName(ctx, name)
	if err != nil && err != storage.ErrNotFound {
		return 0, fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil && existing.Hash == hash {
		logger.DebugContext(ctx, "skipping unchanged document", "name", name, "hash", hash)
		return existing.ChunkCount, nil
	}

	chunks := p.chunker.Split(text, p.chunkSize)

	// Embed before touching stored state so an embedding failure leaves the
	// previous version intact.
	var embeddings [][]float32
	if len(chunks) > 0 {
		embeddings, err = p.embedder.EmbedTexts(ctx, chunks)
		if err != nil {
			return 0, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(embeddings) != len(chunks) {
			return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
		}
	}

	// Remove chunks of any prior version from both stores.
	if existing != nil {
		oldIDs, err := p.chunkRepo.ListIDsByDocument(ctx, contentID)
		if err != nil {
			return 0, fmt.Errorf("failed to list old chunk IDs: %w", err)
		}
		if len(oldIDs) > 0 {
			if err := p.vectorStore.Delete(ctx, p.collection, oldIDs); err != nil {
				return 0, fmt.Errorf("failed to delete old vectors: %w", err)
			}
			if err := p.chunkRepo.DeleteByDocument(ctx, contentID); err != nil {
				return 0, fmt.Errorf("failed to delete old chunks: %w", err)
			}
		}
	}

	ingestedAt := time.Now().UTC()
	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		id := chunkID(contentID, i)

		if err := p.chunkRepo.Insert(ctx, &storage.ChunkRecord{
			ID:         id,
			DocumentID: contentID,
			ChunkIndex: i,
			Text:       chunk,
		}); err != nil {
			return 0, fmt.Errorf("failed to insert chunk: %w", err)
		}

		points[i] = vectorstore.Point{
			ID:   id,
			Vec:  embeddings[i],
			Text: chunk,
			Meta: map[string]any{
				"document":    name,
				"chunk_index": i,
				"ingested_at": ingestedAt.Format(time.RFC3339),
			},
		}
	}

	if len(points) > 0 {
		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			return 0, fmt.Errorf("failed to upsert vectors: %w", err)
		}
	}

	if err := p.docRepo.Upsert(ctx, &storage.DocumentRecord{
		ID:         contentID,
		Name:       name,
		Hash:       hash,
		ChunkCount: len(chunks),
		IngestedAt: ingestedAt,
	}); err != nil {
		return 0, fmt.Errorf("failed to upsert document: %w", err)
	}

	logger.InfoContext(ctx, "indexed document", "name", name, "chunks", len(chunks))
	return len(chunks), nil
}
