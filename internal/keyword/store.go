// Package keyword implements the dependency-free retrieval variant: an
// in-memory document store scored by lowercase substring keyword overlap.
package keyword

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"docqa/internal/indexer"
)

// previewRunes is the length of the text preview in document summaries.
const previewRunes = 200

// wordPattern matches runs of Unicode letters, digits, and underscore, so
// CJK queries tokenize the same way as ASCII ones.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Document is an ingested document held in process memory.
type Document struct {
	Name       string
	FullText   string
	Chunks     []string
	IngestedAt time.Time
}

// Summary describes a stored document without its full text.
type Summary struct {
	Name       string    `json:"name"`
	Chunks     int       `json:"chunks"`
	IngestedAt time.Time `json:"ingested_at"`
	Preview    string    `json:"preview"`
}

// Result is a scored chunk returned by Search.
type Result struct {
	Text     string
	Score    int
	Document string
}

// Store is an append-only in-memory document store. Documents are never
// mutated after Add; the mutex serializes concurrent callers.
type Store struct {
	mu        sync.RWMutex
	chunker   *indexer.SentenceChunker
	chunkSize int
	documents []Document
}

// NewStore creates a store that chunks added documents with the given
// chunker and chunk size.
func NewStore(chunker *indexer.SentenceChunker, chunkSize int) *Store {
	if chunkSize <= 0 {
		chunkSize = indexer.DefaultChunkSize
	}
	return &Store{
		chunker:   chunker,
		chunkSize: chunkSize,
	}
}

// Add chunks text and appends the document to the store. Duplicate names
// accumulate; the store does not deduplicate. Returns the number of chunks
// produced.
func (s *Store) Add(name, text string) int {
	chunks := s.chunker.Split(text, s.chunkSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, Document{
		Name:       name,
		FullText:   text,
		Chunks:     chunks,
		IngestedAt: time.Now().UTC(),
	})
	return len(chunks)
}

// List returns summaries of the stored documents in insertion order.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.documents))
	for _, doc := range s.documents {
		summaries = append(summaries, Summary{
			Name:       doc.Name,
			Chunks:     len(doc.Chunks),
			IngestedAt: doc.IngestedAt,
			Preview:    preview(doc.FullText),
		})
	}
	return summaries
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Search scores every chunk against the query keywords and returns the top
// topK matches, highest score first. Chunks with equal scores keep their
// discovery order (document insertion order, then chunk order). A chunk that
// matches no keyword is never returned; if nothing matches, the result is
// empty and the caller treats that as "no relevant context found".
func (s *Store) Search(query string, topK int) []Result {
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Result
	for _, doc := range s.documents {
		for _, chunk := range doc.Chunks {
			score := score(chunk, keywords)
			if score == 0 {
				continue
			}
			results = append(results, Result{
				Text:     chunk,
				Score:    score,
				Document: doc.Name,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Keywords tokenizes a query into lowercase word tokens. Repeated words are
// kept: a keyword appearing twice counts twice during scoring.
func Keywords(query string) []string {
	return wordPattern.FindAllString(strings.ToLower(query), -1)
}

// score counts the keywords (with repetition) contained in the chunk as a
// case-insensitive substring. Pure substring match, no stemming or
// normalization beyond lowercasing.
func score(chunk string, keywords []string) int {
	lower := strings.ToLower(chunk)
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// preview returns the first previewRunes runes of text.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes])
}
