package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/bloglist-backend/internal/api/handlers"
	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/config"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/middleware"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	Tokens  *auth.TokenManager
	Store   repository.Store
	UserSvc *services.UserService
	BlogSvc *services.BlogService
	Log     *slog.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RequestLogger(log), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "unknown_endpoint", "unknown endpoint", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(d.Tokens)
	bh := handlers.NewBlogHandler(d.BlogSvc)
	uh := handlers.NewUserHandler(d.UserSvc)
	lh := handlers.NewLoginHandler(d.UserSvc)

	r.Route("/api", func(r chi.Router) {
		// ---------- blogs ----------
		r.Get("/blogs", bh.List)
		r.Get("/blogs/stats", bh.Stats)
		r.With(am.Optional).Put("/blogs/{id}", bh.Update)
		r.Group(func(r chi.Router) {
			r.Use(am.Require)
			r.Post("/blogs", bh.Create)
			r.Delete("/blogs/{id}", bh.Delete)
			r.Post("/blogs/{id}/comments", bh.AddComment)
		})

		// ---------- users ----------
		r.Get("/users", uh.List)
		r.Post("/users", uh.Register)
		r.Post("/login", lh.Login)

		if d.Cfg.Env == "test" {
			th := &handlers.TestingHandler{Store: d.Store}
			r.Post("/testing/reset", th.Reset)
		}
	})

	return r
}
