package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// setBaseEnv points the sqlite path into the test's temp dir so Load does not
// create directories in the working tree.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "docqa.db"))
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLMBaseURL != "https://api.openai.com" {
		t.Errorf("LLMBaseURL = %s", cfg.LLMBaseURL)
	}
	if cfg.LLMModelName != "gpt-4" {
		t.Errorf("LLMModelName = %s", cfg.LLMModelName)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.ChunkTerminators != "。" {
		t.Errorf("ChunkTerminators = %q, want 。", cfg.ChunkTerminators)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %s, want 9000", cfg.APIPort)
	}
	if cfg.QdrantCollection != "documents" {
		t.Errorf("QdrantCollection = %s, want documents", cfg.QdrantCollection)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %s, want text", cfg.LogFormat)
	}
	if cfg.VectorSearchEnabled() {
		t.Error("VectorSearchEnabled() = true with no backends configured")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LLM_BASE_URL", "http://localhost:8081")
	t.Setenv("LLM_MODEL", "local-model")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("CHUNK_SIZE", "200")
	t.Setenv("CHUNK_TERMINATORS", "。.!?")
	t.Setenv("TOP_K", "5")
	t.Setenv("API_PORT", "8088")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLMBaseURL != "http://localhost:8081" {
		t.Errorf("LLMBaseURL = %s", cfg.LLMBaseURL)
	}
	if cfg.ChunkSize != 200 {
		t.Errorf("ChunkSize = %d, want 200", cfg.ChunkSize)
	}
	if cfg.ChunkTerminators != "。.!?" {
		t.Errorf("ChunkTerminators = %q", cfg.ChunkTerminators)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", cfg.LogFormat)
	}
}

func TestLoad_VectorSearchEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EMBEDDING_BASE_URL", "http://localhost:8082")
	t.Setenv("EMBEDDING_VECTOR_SIZE", "384")
	t.Setenv("QDRANT_URL", "http://localhost:6333")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.VectorSearchEnabled() {
		t.Error("VectorSearchEnabled() = false with both backends configured")
	}
	if cfg.EmbeddingVectorSize != 384 {
		t.Errorf("EmbeddingVectorSize = %d, want 384", cfg.EmbeddingVectorSize)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "invalid chunk size",
			env:     map[string]string{"CHUNK_SIZE": "abc"},
			wantMsg: "CHUNK_SIZE",
		},
		{
			name:    "zero chunk size",
			env:     map[string]string{"CHUNK_SIZE": "0"},
			wantMsg: "CHUNK_SIZE",
		},
		{
			name:    "negative top k",
			env:     map[string]string{"TOP_K": "-1"},
			wantMsg: "TOP_K",
		},
		{
			name:    "embedding backend without vector size",
			env:     map[string]string{"EMBEDDING_BASE_URL": "http://localhost:8082"},
			wantMsg: "EMBEDDING_VECTOR_SIZE",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantMsg: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.wantMsg)
			}
		})
	}
}
