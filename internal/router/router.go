// Package router sets up all HTTP routes and middleware chains for the
// blog server. It organizes routes into public and member groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"customblog/internal/handlers"
	"customblog/internal/middleware"
)

// Deps carries everything the router mounts.
type Deps struct {
	Sessions middleware.SessionReader
	Public   *handlers.Public
	Writer   *handlers.Writer
	Auth     *handlers.Auth

	// CommentLimiter throttles comment posting. Nil disables throttling.
	CommentLimiter *middleware.RateLimiter

	// SecureCookies marks the CSRF cookie HTTPS-only.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	// Operational endpoints: no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF(d.SecureCookies))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)
			r.Get("/me", d.Auth.Me)
		})

		// Reading is open to everyone.
		r.Get("/blogs/{blogID}", d.Public.BlogHome)
		r.Get("/blogs/{blogID}/categories/{categoryID}", d.Public.CategoryPage)
		r.Get("/articles/{articleID}", d.Public.ArticleView)

		// Everything else needs a signed-in member.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Group(func(r chi.Router) {
				if d.CommentLimiter != nil {
					r.Use(d.CommentLimiter.Middleware)
				}
				r.Post("/articles/{articleID}/comments", d.Public.PostComment)
			})

			r.Get("/me/blogs", d.Writer.MyBlogs)
			r.Post("/blogs", d.Writer.CreateBlog)

			r.Patch("/blogs/{blogID}", d.Writer.RenameBlog)
			r.Get("/blogs/{blogID}/settings", d.Writer.Settings)
			r.Get("/blogs/{blogID}/write", d.Writer.WriteForm)
			r.Post("/blogs/{blogID}/articles", d.Writer.CreateArticle)
			r.Post("/blogs/{blogID}/categories", d.Writer.AddCategory)
			r.Patch("/blogs/{blogID}/categories/{categoryID}", d.Writer.EditCategory)
			r.Delete("/blogs/{blogID}/categories/{categoryID}", d.Writer.DeleteCategory)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
