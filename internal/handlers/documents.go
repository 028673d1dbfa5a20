package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/ingest"
	"docqa/internal/keyword"
	"docqa/internal/service"
)

// DocumentsHandler handles document ingestion and listing.
type DocumentsHandler struct {
	ingestSvc    *ingest.Service
	keywordStore *keyword.Store
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(ingestSvc *ingest.Service, keywordStore *keyword.Store) *DocumentsHandler {
	return &DocumentsHandler{
		ingestSvc:    ingestSvc,
		keywordStore: keywordStore,
	}
}

// IngestRequest is the HTTP request payload for document ingestion.
type IngestRequest struct {
	// Path is the filesystem path of the uploaded file.
	Path string `json:"path"`
	// Name is the display name; defaults to the file's base name.
	Name string `json:"name,omitempty"`
}

// IngestResponse reports the ingestion outcome.
type IngestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListResponse holds the stored document summaries.
type ListResponse struct {
	Documents []keyword.Summary `json:"documents"`
}

// Ingest handles POST requests to add a document.
func (h *DocumentsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}

	result, err := h.ingestSvc.Ingest(ctx, req.Path, req.Name)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrUnsupportedFormat):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrExtractionFailed):
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, IngestResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Success: true,
		Message: result.Message,
	})
}

// List handles GET requests for the stored document summaries.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries := h.keywordStore.List()
	writeJSON(w, http.StatusOK, ListResponse{Documents: summaries})
}
