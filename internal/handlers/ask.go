package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/rag"
	"docqa/internal/service"
)

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	engine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine rag.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// AskRequest is the HTTP request payload for questions.
type AskRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

// AskResponse is the HTTP response payload for answers.
type AskResponse struct {
	Answer  string           `json:"answer"`
	Sources []SourceResponse `json:"sources"`
}

// SourceResponse is one retrieved context chunk with attribution.
type SourceResponse struct {
	Text     string  `json:"text"`
	Score    float32 `json:"score"`
	Document string  `json:"document"`
}

// ServeHTTP answers a question from the ingested documents.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if req.K < 0 {
		req.K = 0
	}

	resp, err := h.engine.Ask(ctx, rag.AskRequest{
		Question: req.Question,
		K:        req.K,
	})
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	sources := make([]SourceResponse, len(resp.Sources))
	for i, src := range resp.Sources {
		sources[i] = SourceResponse{
			Text:     src.Text,
			Score:    src.Score,
			Document: src.Document,
		}
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:  resp.Answer,
		Sources: sources,
	})
}

// handleEngineError maps engine errors to HTTP status codes.
func (h *AskHandler) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	logger := contextutil.LoggerFromContext(r.Context())
	logger.ErrorContext(r.Context(), "engine error", "error", err)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid question")
	case errors.Is(err, service.ErrBackendUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
	case errors.Is(err, service.ErrExternalService):
		writeError(w, http.StatusBadGateway, "Embedding service error")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to process question")
	}
}
