package handlers

import (
	"encoding/json"
	"net/http"

	"docqa/internal/keyword"
)

// Capabilities reports which optional backends are configured.
type Capabilities struct {
	LLM          bool `json:"llm"`
	VectorSearch bool `json:"vector_search"`
}

// HealthHandler reports process health and backend availability.
type HealthHandler struct {
	keywordStore *keyword.Store
	capabilities Capabilities
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(keywordStore *keyword.Store, capabilities Capabilities) *HealthHandler {
	return &HealthHandler{
		keywordStore: keywordStore,
		capabilities: capabilities,
	}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status       string       `json:"status"`
	Documents    int          `json:"documents"`
	Capabilities Capabilities `json:"capabilities"`
}

// ServeHTTP reports health and configured capabilities.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Documents:    h.keywordStore.Len(),
		Capabilities: h.capabilities,
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
