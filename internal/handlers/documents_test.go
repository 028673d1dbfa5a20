package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"docqa/internal/extract"
	"docqa/internal/indexer"
	"docqa/internal/ingest"
	"docqa/internal/keyword"
)

func newDocumentsHandler() (*DocumentsHandler, *keyword.Store) {
	store := keyword.NewStore(indexer.NewSentenceChunker(""), 500)
	svc := ingest.NewService(extract.NewExtractor(), store, nil)
	return NewDocumentsHandler(svc, store), store
}

func TestDocumentsHandler_Ingest(t *testing.T) {
	handler, store := newDocumentsHandler()
	dir := t.TempDir()

	path := filepath.Join(dir, "policy.txt")
	if err := os.WriteFile(path, []byte("経費は月末までに精算する。"), 0o644); err != nil {
		t.Fatal(err)
	}

	rr := postJSON(t, http.HandlerFunc(handler.Ingest), "/api/documents", IngestRequest{Path: path})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp IngestResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Message != "document added: split into 1 chunks" {
		t.Errorf("message = %q", resp.Message)
	}
	if store.Len() != 1 {
		t.Errorf("store Len() = %d, want 1", store.Len())
	}
}

func TestDocumentsHandler_Ingest_Errors(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte("a,b"), 0o644); err != nil {
		t.Fatal(err)
	}
	brokenPath := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(brokenPath, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "invalid json",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing path",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported format",
			body:       `{"path": "` + csvPath + `"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "extraction failure",
			body:       `{"path": "` + brokenPath + `"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newDocumentsHandler()

			req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()
			handler.Ingest(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestDocumentsHandler_List(t *testing.T) {
	handler, store := newDocumentsHandler()
	store.Add("a.txt", "最初の文書。")
	store.Add("b.txt", "二番目の文書。")

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rr := httptest.NewRecorder()
	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp ListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(resp.Documents))
	}
	if resp.Documents[0].Name != "a.txt" {
		t.Errorf("documents[0] = %s, want a.txt", resp.Documents[0].Name)
	}
}

func TestHealthHandler(t *testing.T) {
	store := keyword.NewStore(indexer.NewSentenceChunker(""), 500)
	store.Add("a.txt", "文書。")

	handler := NewHealthHandler(store, Capabilities{LLM: true, VectorSearch: false})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %s, want ok", resp.Status)
	}
	if resp.Documents != 1 {
		t.Errorf("documents = %d, want 1", resp.Documents)
	}
	if !resp.Capabilities.LLM || resp.Capabilities.VectorSearch {
		t.Errorf("capabilities = %+v", resp.Capabilities)
	}
}
