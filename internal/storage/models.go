package storage

import "time"

// DocumentRecord is the metadata row for an ingested document.
type DocumentRecord struct {
	ID         string    // Deterministic content identifier derived from the name
	Name       string    // Display name, unique per store
	Hash       string    // SHA256 hex of the extracted text
	ChunkCount int       // Number of chunks produced at ingestion
	IngestedAt time.Time
}

// ChunkRecord is a chunk of document text, keyed by the same ID as its
// vector index point.
type ChunkRecord struct {
	ID         string // Deterministic ID (same as the vector point ID)
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // Index within the document (starts at 0)
	Text       string // Chunk text content
}
