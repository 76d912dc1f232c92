// Package rest maps the gated operations onto HTTP endpoints.
package rest

import (
	"net/http"

	"fbclone-backend/application/social"
	"fbclone-backend/infrastructure/config"
	"fbclone-backend/interfaces/http/rest/handlers"
	"fbclone-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	ops    *social.Operations
	cfg    *config.Config
	logger *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(ops *social.Operations, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{ops: ops, cfg: cfg, logger: logger}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	accountHandler := handlers.NewAccountHandler(rt.ops, rt.logger)
	postHandler := handlers.NewPostHandler(rt.ops, rt.logger)
	socialHandler := handlers.NewSocialHandler(rt.ops, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Account lifecycle and sessions
		r.Post("/accounts", accountHandler.CreateAccount)
		r.Post("/sessions", accountHandler.CreateSession)
		r.Delete("/sessions", accountHandler.DeleteSession)

		// Own profile
		r.Get("/me", accountHandler.GetMe)
		r.Put("/me/privacy", accountHandler.SetPrivacy)
		r.Put("/me/password", accountHandler.SetPassword)

		// User lookups
		r.Get("/users/{userID}", socialHandler.GetUser)
		r.Get("/users/by-handle/{handle}", socialHandler.GetUserByHandle)

		// Relationship toggles
		r.Put("/friends/{userID}", socialHandler.SetFriendStatus)
		r.Put("/likes/{contentID}", socialHandler.SetLikeStatus)

		// Content
		r.Post("/posts", postHandler.CreatePost)
		r.Get("/posts/{postID}", postHandler.GetPost)
		r.Post("/posts/{postID}/replies", postHandler.CreateReply)
		r.Get("/replies/{replyID}", postHandler.GetReply)
		r.Get("/feed", postHandler.GetFeed)
	})

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
