package rag

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/llm"
)

const (
	// answerTemperature keeps generation close to deterministic.
	answerTemperature = 0.3
	// answerMaxTokens caps the generated answer length.
	answerMaxTokens = 1000

	systemPrompt = "You are an AI assistant specialized in internal company documents. " +
		"Answer questions accurately using only the referenced documents provided. " +
		"If the answer cannot be derived from them, reply that the information is not available in the provided documents."

	// noCredentialsAnswer is shown verbatim when no LLM credentials are configured.
	noCredentialsAnswer = "The LLM API key is not configured. Set LLM_API_KEY to enable answer generation."
)

// Completer sends a chat completion request and returns the reply.
// This interface is defined from the generator's perspective (consumer-first).
type Completer interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Generator produces answers from a question and retrieved context chunks.
//
// Generate never returns an error: any failure (missing credentials,
// transport errors, API errors) becomes a descriptive string the caller
// displays verbatim as the answer.
type Generator struct {
	llmClient Completer
	available bool
}

// NewGenerator creates an answer generator. llmClient may be nil when no
// credentials are configured; Generate then returns a placeholder.
func NewGenerator(llmClient Completer) *Generator {
	return &Generator{
		llmClient: llmClient,
		available: llmClient != nil,
	}
}

// Available reports whether a language-model client is configured.
func (g *Generator) Available() bool {
	return g.available
}

// Generate builds the two-part prompt from the question and numbered
// context chunks and asks the language model for an answer. An empty
// contextChunks still yields a valid prompt with an empty reference section.
func (g *Generator) Generate(ctx context.Context, question string, contextChunks []string) string {
	logger := contextutil.LoggerFromContext(ctx)

	if !g.available {
		return noCredentialsAnswer
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(question, contextChunks)},
	}

	answer, err := g.llmClient.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		logger.ErrorContext(ctx, "answer generation failed", "error", err)
		return fmt.Sprintf("Answer generation failed: %v", err)
	}

	return answer
}

// buildUserPrompt formats the numbered reference sections followed by the
// question.
func buildUserPrompt(question string, contextChunks []string) string {
	sections := make([]string, 0, len(contextChunks))
	for i, chunk := range contextChunks {
		sections = append(sections, fmt.Sprintf("[Reference %d]\n%s", i+1, chunk))
	}

	var b strings.Builder
	b.WriteString("Answer the question by referring to the internal documents below.\n\n")
	b.WriteString("[Internal documents]\n")
	b.WriteString(strings.Join(sections, "\n\n"))
	b.WriteString("\n\n[Question]\n")
	b.WriteString(question)
	b.WriteString("\n\n[Answer]")
	return b.String()
}
