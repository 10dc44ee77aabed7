package helpers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"adstudioAPI/handlers"
	"adstudioAPI/internal/store"
	"adstudioAPI/middleware"
	"adstudioAPI/services"
)

// NewAPIRouter builds the full /api/v1 route table over the given store, with
// the Clerk middleware replaced by a stub that injects clerkID into every
// request. Integration tests exercise real routing (path vars included)
// without a Clerk backend. An empty clerkID leaves requests unauthenticated.
func NewAPIRouter(s store.Store, clerkID string) http.Handler {
	templateService := services.NewTemplateService(s)
	designService := services.NewDesignService(s, s)
	copyService := services.NewCopyService()

	templateHandler := handlers.NewTemplateHandler(templateService)
	designHandler := handlers.NewDesignHandler(designService)
	copyHandler := handlers.NewCopyHandler(copyService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(stubAuthMiddleware(clerkID))

	api.HandleFunc("/templates", templateHandler.ListTemplates).Methods("GET")
	api.HandleFunc("/templates", templateHandler.CreateTemplate).Methods("POST")
	api.HandleFunc("/templates/{id}", templateHandler.GetTemplate).Methods("GET")
	api.HandleFunc("/templates/{id}", templateHandler.UpdateTemplate).Methods("PUT")
	api.HandleFunc("/templates/{id}", templateHandler.DeleteTemplate).Methods("DELETE")
	api.HandleFunc("/templates/{id}/designs", designHandler.CreateFromTemplate).Methods("POST")
	api.HandleFunc("/templates/{id}/thumbnail.png", templateHandler.GetTemplateThumbnail).Methods("GET")

	api.HandleFunc("/designs", designHandler.ListDesigns).Methods("GET")
	api.HandleFunc("/designs", designHandler.CreateDesign).Methods("POST")
	api.HandleFunc("/designs/{id}", designHandler.GetDesign).Methods("GET")
	api.HandleFunc("/designs/{id}", designHandler.UpdateDesign).Methods("PUT")
	api.HandleFunc("/designs/{id}", designHandler.DeleteDesign).Methods("DELETE")
	api.HandleFunc("/designs/{id}/template", designHandler.SaveAsTemplate).Methods("POST")
	api.HandleFunc("/designs/{id}/thumbnail.png", designHandler.GetDesignThumbnail).Methods("GET")

	api.HandleFunc("/copy/suggestions", copyHandler.GenerateSuggestions).Methods("POST")

	return r
}

func stubAuthMiddleware(clerkID string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if clerkID == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), middleware.ClerkIDKey, clerkID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GenerateMockClerkJWT signs a throwaway token in Clerk's claim shape. It is
// NOT verifiable against a real Clerk instance; use it where only the header
// format matters.
func GenerateMockClerkJWT(clerkID string) (string, error) {
	secretKey := []byte("test-secret-key-for-testing-only")

	claims := jwt.MapClaims{
		"sub": clerkID,
		"iss": "https://clerk.test",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
		"azp": "test-app-id",
		"sid": "sess_test123",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
