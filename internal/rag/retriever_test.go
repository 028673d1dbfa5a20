package rag

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/indexer"
	"docqa/internal/keyword"
	"docqa/internal/service"
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/mocks"
)

// stubEmbedder returns one fixed vector per input text.
type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vec
	}
	return out, nil
}

func TestKeywordRetriever_Search(t *testing.T) {
	store := keyword.NewStore(indexer.NewSentenceChunker(""), 500)
	store.Add("expenses.txt", "経費の精算は月末までに行ってください。")

	retriever := NewKeywordRetriever(store)

	sources, err := retriever.Search(context.Background(), "経費", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("Search() = %d sources, want 1", len(sources))
	}
	if sources[0].Document != "expenses.txt" {
		t.Errorf("Search() document = %s, want expenses.txt", sources[0].Document)
	}
	if sources[0].Score != 1 {
		t.Errorf("Search() score = %v, want 1", sources[0].Score)
	}

	sources, err = retriever.Search(context.Background(), "休暇", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("Search() = %d sources for a non-matching query, want 0", len(sources))
	}
}

func TestVectorRetriever_Unavailable(t *testing.T) {
	tests := []struct {
		name        string
		embedder    Embedder
		vectorStore vectorstore.VectorStore
	}{
		{name: "no embedder", embedder: nil, vectorStore: nil},
		{name: "no vector store", embedder: &stubEmbedder{}, vectorStore: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retriever := NewVectorRetriever(tt.embedder, tt.vectorStore, "docs")

			if retriever.Available() {
				t.Error("Available() = true, want false")
			}

			sources, err := retriever.Search(context.Background(), "query", 3)
			if err != nil {
				t.Errorf("Search() error = %v, unavailable backend must not error", err)
			}
			if len(sources) != 0 {
				t.Errorf("Search() = %d sources, want 0", len(sources))
			}
		})
	}
}

func TestVectorRetriever_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)

	queryVec := []float32{0.1, 0.2, 0.3}
	store.EXPECT().
		Search(gomock.Any(), "docs", queryVec, 3).
		Return([]vectorstore.SearchResult{
			{PointID: "p1", Score: 0.91, Text: "経費は月末までに精算する。", Meta: map[string]any{"document": "expenses.txt", "chunk_index": int64(0)}},
			{PointID: "p2", Score: 0.42, Text: "領収書は必ず添付する。", Meta: map[string]any{"document": "expenses.txt", "chunk_index": int64(1)}},
		}, nil)

	retriever := NewVectorRetriever(&stubEmbedder{vec: queryVec}, store, "docs")
	if !retriever.Available() {
		t.Fatal("Available() = false with both collaborators configured")
	}

	sources, err := retriever.Search(context.Background(), "経費の締め切りは?", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Search() = %d sources, want 2", len(sources))
	}
	if sources[0].Text != "経費は月末までに精算する。" {
		t.Errorf("Search() text = %q", sources[0].Text)
	}
	if sources[0].Score != 0.91 {
		t.Errorf("Search() score = %v, want 0.91", sources[0].Score)
	}
	if sources[0].Document != "expenses.txt" {
		t.Errorf("Search() document = %s, want expenses.txt", sources[0].Document)
	}
}

func TestVectorRetriever_Search_EmbedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)

	retriever := NewVectorRetriever(&stubEmbedder{err: errors.New("embedding API down")}, store, "docs")

	_, err := retriever.Search(context.Background(), "query", 3)
	if !errors.Is(err, service.ErrExternalService) {
		t.Fatalf("Search() error = %v, want ErrExternalService", err)
	}
}

func TestVectorRetriever_Search_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().
		Search(gomock.Any(), "docs", gomock.Any(), 3).
		Return(nil, errors.New("qdrant unreachable"))

	retriever := NewVectorRetriever(&stubEmbedder{vec: []float32{0.5}}, store, "docs")

	_, err := retriever.Search(context.Background(), "query", 3)
	if !errors.Is(err, service.ErrBackendUnavailable) {
		t.Fatalf("Search() error = %v, want ErrBackendUnavailable", err)
	}
}
