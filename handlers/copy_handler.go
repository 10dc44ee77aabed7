package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"adstudioAPI/middleware"
	"adstudioAPI/services"
)

type CopyHandler struct {
	copyService *services.CopyService
}

func NewCopyHandler(copyService *services.CopyService) *CopyHandler {
	return &CopyHandler{
		copyService: copyService,
	}
}

type copySuggestionsRequest struct {
	Prompt string `json:"prompt"`
}

func (h *CopyHandler) GenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req copySuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestions, err := h.copyService.GenerateSuggestions(req.Prompt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}
