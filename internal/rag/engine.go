package rag

import (
	"context"
	"fmt"

	"docqa/internal/contextutil"
	"docqa/internal/service"
)

const (
	// defaultTopK matches the caller-facing default of three context chunks.
	defaultTopK = 3
	// maxTopK bounds caller-provided K.
	maxTopK = 20

	// noContextAnswer is returned without calling the language model when
	// retrieval finds nothing relevant.
	noContextAnswer = "No relevant documents were found for this question. Add documents and try again."
)

// Engine answers questions by retrieving relevant chunks and generating an
// answer from them.
type Engine interface {
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// engine implements the Engine interface over one retrieval strategy.
type engine struct {
	retriever Retriever
	generator *Generator
	topK      int
}

// NewEngine creates an engine with the given retrieval strategy and answer
// generator. topK is the default result count when a request leaves K unset;
// zero falls back to the package default.
func NewEngine(retriever Retriever, generator *Generator, topK int) Engine {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &engine{
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}
}

// Ask retrieves context for the question and generates an answer. When no
// chunk is relevant, the language model is not called and the response
// carries a fixed "no relevant documents" answer with empty sources.
func (e *engine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Question == "" {
		return AskResponse{}, fmt.Errorf("%w: question must not be empty", service.ErrInvalidInput)
	}

	k := req.K
	if k <= 0 {
		k = e.topK
	}
	if k > maxTopK {
		k = maxTopK
	}

	sources, err := e.retriever.Search(ctx, req.Question, k)
	if err != nil {
		logger.ErrorContext(ctx, "retrieval failed", "error", err)
		return AskResponse{}, fmt.Errorf("failed to retrieve context: %w", err)
	}

	logger.InfoContext(ctx, "retrieval completed", "question_length", len(req.Question), "k", k, "results", len(sources))

	if len(sources) == 0 {
		return AskResponse{
			Answer:  noContextAnswer,
			Sources: []Source{},
		}, nil
	}

	texts := make([]string, len(sources))
	for i, src := range sources {
		texts[i] = src.Text
	}

	answer := e.generator.Generate(ctx, req.Question, texts)

	logger.InfoContext(ctx, "answer generated", "answer_length", len(answer), "sources", len(sources))

	return AskResponse{
		Answer:  answer,
		Sources: sources,
	}, nil
}
