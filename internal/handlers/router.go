package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jeremyjsx/dashboard/internal/middleware"
	"github.com/jeremyjsx/dashboard/internal/users"
)

type RouterDeps struct {
	Health   *HealthDeps
	Posts    *PostsHandler
	Invoices *InvoicesHandler
	Users    *users.Repository
	APIKey   string
	Logger   *slog.Logger
}

// NewRouter mounts the public blog routes at the root and the dashboard
// routes behind the API key.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", Health(deps.Health))
	r.Get("/blog/{slug}", deps.Posts.GetBySlug())
	r.Get("/uploads/{name}", deps.Posts.Upload())

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.APIKey(deps.APIKey))

		r.Get("/posts", deps.Posts.List())
		r.Post("/posts", deps.Posts.Create())
		r.Delete("/posts/{id}", deps.Posts.Delete())

		r.Get("/users", ListUsers(deps.Users, deps.Logger))

		r.Get("/invoices", deps.Invoices.List())
		r.Post("/invoices", deps.Invoices.Create())
		r.Put("/invoices/{id}", deps.Invoices.Update())
		r.Delete("/invoices/{id}", deps.Invoices.Delete())
	})
	return r
}
