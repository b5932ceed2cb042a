package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptstudio/promptstudio-go/internal/metrics"
	"github.com/promptstudio/promptstudio-go/internal/middleware"
	"github.com/promptstudio/promptstudio-go/internal/service"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Logger    *slog.Logger
	JWTSecret string
	Gateway   Enhancer

	// Prompts and Profiles are nil when no store is available; the
	// persistence routes are then not mounted.
	Prompts  *service.PromptService
	Profiles *service.ProfileService

	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

// NewRouter builds the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	enhanceHandler := NewEnhanceHandler(cfg.Gateway, cfg.Logger)
	r.Group(func(r chi.Router) {
		r.Use(gatewayHeaders)
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
		r.HandleFunc("/enhance", enhanceHandler.HandleEnhance)
		r.HandleFunc("/ideas", enhanceHandler.HandleIdeas)
	})

	if cfg.Prompts == nil || cfg.Profiles == nil {
		return r
	}

	promptHandler := NewPromptHandler(cfg.Prompts)
	libraryHandler := NewLibraryHandler(cfg.Prompts)
	profileHandler := NewProfileHandler(cfg.Profiles)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(middleware.CORSConfig{Origins: cfg.CORSOrigins}))

		r.Get("/library", libraryHandler.HandleList)
		r.Post("/library/{id}/view", libraryHandler.HandleView)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret))
			r.Use(middleware.EnsureProfile(cfg.Profiles, cfg.Logger))

			r.Get("/profile", profileHandler.HandleGet)

			r.Get("/prompts", promptHandler.HandleList)
			r.Post("/prompts", promptHandler.HandleCreate)
			r.Get("/prompts/{id}", promptHandler.HandleGet)
			r.Put("/prompts/{id}", promptHandler.HandleUpdate)
			r.Delete("/prompts/{id}", promptHandler.HandleDelete)
		})
	})

	return r
}
