package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docqa/internal/config"
	"docqa/internal/extract"
	"docqa/internal/handlers"
	"docqa/internal/http"
	"docqa/internal/indexer"
	"docqa/internal/ingest"
	"docqa/internal/keyword"
	"docqa/internal/llm"
	"docqa/internal/rag"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	chunker := indexer.NewSentenceChunker(cfg.ChunkTerminators)
	keywordStore := keyword.NewStore(chunker, cfg.ChunkSize)

	// The embedding variant needs both an embedding backend and a vector
	// store; with either missing the service runs keyword-only.
	var pipeline *indexer.Pipeline
	var retriever rag.Retriever = rag.NewKeywordRetriever(keywordStore)

	if cfg.VectorSearchEnabled() {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() {
			_ = db.Close()
		}()

		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slog.Info("Database initialized", "path", cfg.DBPath)

		vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)

		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)

		pipeline = indexer.NewPipeline(
			storage.NewDocumentRepo(db),
			storage.NewChunkRepo(db),
			embedder,
			vectorStore,
			cfg.QdrantCollection,
			chunker,
			cfg.ChunkSize,
		)
		retriever = rag.NewVectorRetriever(embedder, vectorStore, cfg.QdrantCollection)
		slog.Info("Vector search enabled", "embedding_model", cfg.EmbeddingModelName)
	} else {
		slog.Info("Vector search disabled, using keyword retrieval")
	}

	var generator *rag.Generator
	if cfg.LLMAPIKey != "" {
		generator = rag.NewGenerator(llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName))
		slog.Info("LLM client configured", "model", cfg.LLMModelName)
	} else {
		generator = rag.NewGenerator(nil)
		slog.Warn("LLM_API_KEY not set, answers will report missing credentials")
	}

	engine := rag.NewEngine(retriever, generator, cfg.TopK)
	ingestSvc := ingest.NewService(extract.NewExtractor(), keywordStore, pipeline)

	// Sample documents load once, explicitly, at startup.
	if cfg.SampleDocsDir != "" {
		count, err := ingestSvc.LoadDirectory(ctx, cfg.SampleDocsDir)
		if err != nil {
			slog.Error("Sample document load completed with errors", "dir", cfg.SampleDocsDir, "error", err)
		} else {
			slog.Info("Sample documents loaded", "dir", cfg.SampleDocsDir, "count", count)
		}
	}

	deps := &http.Deps{
		Engine:       engine,
		IngestSvc:    ingestSvc,
		KeywordStore: keywordStore,
		Capabilities: handlers.Capabilities{
			LLM:          generator.Available(),
			VectorSearch: cfg.VectorSearchEnabled(),
		},
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
