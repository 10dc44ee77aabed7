package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"adstudioAPI/internal/store"
	"adstudioAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError translates service-layer failures into status codes:
// validation failures are the client's fault, a missing record is a 404,
// anything else is a server error.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Resource not found")
	default:
		respondWithError(w, http.StatusInternalServerError, "Server error")
	}
}
