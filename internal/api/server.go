package api

import (
	"net/http"
	"time"

	"github.com/AlexandrSher/danswer/internal/api/middleware"
	personaapi "github.com/AlexandrSher/danswer/internal/api/persona"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the stub backend router
func SetupRouter(personaHandler *personaapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	personaapi.RegisterRoutes(r, personaHandler)

	return r
}
