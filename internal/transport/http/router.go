package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/LianaVolkova/yatube/internal/handler"
	"github.com/LianaVolkova/yatube/internal/httputil"
	"github.com/LianaVolkova/yatube/internal/metrics"
	"github.com/LianaVolkova/yatube/internal/transport/http/middleware"
)

// RouterConfig carries everything the router needs to assemble routes.
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	FollowHandler  *handler.FollowHandler

	TokenValidator middleware.TokenValidator
	Recorder       metrics.Recorder
	Gatherer       prometheus.Gatherer

	// RateLimiter guards the write routes; nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter assembles the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RecordStatus(cfg.Recorder))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "Page not found")
	})

	// Public pages. Profile and post detail take the viewer into account
	// when a valid session rides along, so they get OptionalAuth.
	r.Group(func(r chi.Router) {
		r.Get("/", cfg.PostHandler.Index)
		r.Get("/group/{slug}/", cfg.PostHandler.GroupPosts)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.TokenValidator))
		r.Get("/profile/{username}/", cfg.PostHandler.Profile)
		r.Get("/posts/{id}/", cfg.PostHandler.Detail)
	})

	// Auth flows.
	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware())
		}
		r.Get("/auth/login/", cfg.AuthHandler.LoginForm)
		r.Post("/auth/login/", cfg.AuthHandler.Login)
		r.Post("/auth/signup/", cfg.AuthHandler.Signup)
		r.Post("/auth/logout/", cfg.AuthHandler.Logout)
	})

	// Everything below requires a logged-in user; anonymous requests are
	// redirected to the login page.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.TokenValidator))
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware())
		}

		r.Get("/create/", cfg.PostHandler.CreateForm)
		r.Post("/create/", cfg.PostHandler.Create)
		r.Get("/posts/{id}/edit/", cfg.PostHandler.EditForm)
		r.Post("/posts/{id}/edit/", cfg.PostHandler.Edit)
		r.Post("/posts/{id}/comment/", cfg.CommentHandler.Add)

		r.Get("/follow/", cfg.FollowHandler.Feed)
		// Follow toggles are plain navigation links, so GET is the
		// canonical verb; POST works too.
		r.Get("/profile/{username}/follow/", cfg.FollowHandler.Follow)
		r.Post("/profile/{username}/follow/", cfg.FollowHandler.Follow)
		r.Get("/profile/{username}/unfollow/", cfg.FollowHandler.Unfollow)
		r.Post("/profile/{username}/unfollow/", cfg.FollowHandler.Unfollow)
	})

	return r
}
