package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
//
// The LLM, embedding, and vector store backends are optional: an empty
// LLMAPIKey, EmbeddingBaseURL, or QdrantURL disables the corresponding
// capability and the dependent operations degrade per their contracts
// instead of failing at startup.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	QdrantURL           string
	QdrantCollection    string
	DBPath              string
	SampleDocsDir       string
	ChunkSize           int
	ChunkTerminators    string
	TopK                int
	APIPort             string
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up toward the module root looking for a .env file
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "documents"),
		DBPath:             getEnv("DB_PATH", "./data/docqa.db"),
		SampleDocsDir:      getEnv("SAMPLE_DOCS_DIR", ""),
		ChunkTerminators:   getEnv("CHUNK_TERMINATORS", "。"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 500)
	if err != nil {
		return nil, err
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}

	cfg.TopK, err = getEnvInt("TOP_K", 3)
	if err != nil {
		return nil, err
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("TOP_K must be greater than 0")
	}

	if cfg.ChunkTerminators == "" {
		return nil, fmt.Errorf("CHUNK_TERMINATORS must not be empty")
	}

	// EMBEDDING_VECTOR_SIZE is only required when the embedding backend is
	// configured; it must match the model's output size or the collection
	// has to be recreated.
	if cfg.EmbeddingBaseURL != "" {
		size, err := getEnvInt("EMBEDDING_VECTOR_SIZE", 0)
		if err != nil {
			return nil, err
		}
		if size <= 0 {
			return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required when EMBEDDING_BASE_URL is set")
		}
		cfg.EmbeddingVectorSize = size
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn", "warning":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Create the data directory for the sqlite file if needed
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// VectorSearchEnabled reports whether the embedding variant can run: it
// requires both an embedding backend and a vector store.
func (c *Config) VectorSearchEnabled() bool {
	return c.EmbeddingBaseURL != "" && c.QdrantURL != ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
