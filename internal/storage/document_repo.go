package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docqa/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document metadata operations.
type DocumentStore interface {
	// GetByName gets a document by its display name. Returns ErrNotFound if not found.
	GetByName(ctx context.Context, name string) (*DocumentRecord, error)
	// Upsert inserts a new document or replaces the existing row with the same name.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// ListAll returns all documents ordered by ingestion time.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByName gets a document by its display name. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByName(ctx context.Context, name string) (*DocumentRecord, error) {
	var doc DocumentRecord
	var ingestedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, hash, chunk_count, ingested_at FROM documents WHERE name = ?",
		name,
	).Scan(&doc.ID, &doc.Name, &doc.Hash, &doc.ChunkCount, &ingestedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.IngestedAt = parseTimestamp(ingestedAtStr)
	return &doc, nil
}

// Upsert inserts a new document or replaces the existing row with the same name.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, hash, chunk_count, ingested_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET hash = excluded.hash, chunk_count = excluded.chunk_count, ingested_at = excluded.ingested_at`,
		doc.ID, doc.Name, doc.Hash, doc.ChunkCount, doc.IngestedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// ListAll returns all documents ordered by ingestion time.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, hash, chunk_count, ingested_at FROM documents ORDER BY ingested_at, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		var ingestedAtStr string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Hash, &doc.ChunkCount, &ingestedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.IngestedAt = parseTimestamp(ingestedAtStr)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// parseTimestamp parses the formats SQLite hands back for DATETIME columns.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
