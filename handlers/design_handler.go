package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"adstudioAPI/internal/canvas"
	"adstudioAPI/internal/design"
	"adstudioAPI/middleware"
	"adstudioAPI/services"
)

type DesignHandler struct {
	designService *services.DesignService
}

func NewDesignHandler(designService *services.DesignService) *DesignHandler {
	return &DesignHandler{
		designService: designService,
	}
}

func (h *DesignHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	designs, err := h.designService.ListDesigns(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, designs)
}

func (h *DesignHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]

	d, err := h.designService.GetDesign(ctx, id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *DesignHandler) CreateDesign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req design.CreateDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.designService.CreateDesign(ctx, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, d)
}

func (h *DesignHandler) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]

	var req design.UpdateDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.designService.UpdateDesign(ctx, id, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *DesignHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]

	if err := h.designService.DeleteDesign(ctx, id); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Design deleted"})
}

// CreateFromTemplate derives a new draft design from the template in the
// route, deep-copying its canvas.
func (h *DesignHandler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	templateID := mux.Vars(r)["id"]

	var req design.CreateFromTemplateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	d, err := h.designService.CreateDesignFromTemplate(ctx, templateID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, d)
}

// SaveAsTemplate promotes the design in the route to a standalone template.
func (h *DesignHandler) SaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	designID := mux.Vars(r)["id"]

	var req design.SaveAsTemplateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	tpl, err := h.designService.SaveDesignAsTemplate(ctx, designID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, tpl)
}

func (h *DesignHandler) GetDesignThumbnail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]

	d, err := h.designService.GetDesign(ctx, id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	png, err := canvas.RenderThumbnailPNG(d.Canvas)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
