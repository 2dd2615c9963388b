package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"campaign-manager/internal/core/port"
)

// Pinger reports whether a backing store is reachable. *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the auth and campaign use cases, the token service used by the
// auth gate and a logger for structured logging. Routes are registered on a
// chi.Router for convenient method handling.
type Handler struct {
	auth      port.AuthUseCase
	campaigns port.CampaignUseCase
	tokens    port.TokenService
	db        Pinger
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured. Every route is
// served both at the root and under /api. db may be nil, in which case the
// health check does not probe the database.
func NewHandler(
	auth port.AuthUseCase,
	campaigns port.CampaignUseCase,
	tokens port.TokenService,
	db Pinger,
	logger *slog.Logger,
) *Handler {
	h := &Handler{auth: auth, campaigns: campaigns, tokens: tokens, db: db, logger: logger}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	h.routes(r)
	r.Route("/api", h.routes)

	h.router = r
	return h
}

func (h *Handler) routes(r chi.Router) {
	authenticated := Authenticate(h.tokens)

	r.Get("/health", h.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.With(authenticated).Get("/me", h.handleMe)
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/", h.handleListCampaigns)
		r.Get("/stats", h.handleCampaignStats)
		r.Get("/{id}", h.handleGetCampaign)
		r.Post("/", h.handleCreateCampaign)
		r.Put("/{id}", h.handleUpdateCampaign)
		r.Delete("/{id}", h.handleDeleteCampaign)
	})
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
