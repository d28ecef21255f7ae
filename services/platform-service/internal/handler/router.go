package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vasapolrittideah/kinext-api/shared/auth"
)

// RouterConfig holds the dependencies of the HTTP router that are not owned
// by the Handler. Metrics, Gatherer and Ping are optional.
type RouterConfig struct {
	JWTAuth     auth.JWTAuthenticator
	TokenSecret string
	Resolver    DatabaseResolver
	Metrics     *HTTPMetrics
	Gatherer    prometheus.Gatherer
	Ping        func(ctx context.Context) error
}

// Routes builds the HTTP API.
//
// CMS reads are public and served from the admin database for anonymous
// callers. Every other domain route requires a session and is served from
// the database of the caller's tenant.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/healthz", h.handleHealth(cfg.Ping))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(h.Session(cfg.JWTAuth, cfg.TokenSecret))

			r.Group(func(r chi.Router) {
				r.Use(h.TenantDatabase(cfg.Resolver))

				r.Get("/pages", h.handleListPages)
				r.Get("/pages/{pageID}", h.handleGetPage)
				r.Get("/pages/{pageID}/blocks", h.handleListContentBlocks)
			})

			r.Group(func(r chi.Router) {
				r.Use(h.RequireSession)
				r.Use(h.TenantDatabase(cfg.Resolver))

				r.Post("/pages", h.handleCreatePage)
				r.Post("/pages/{pageID}/blocks", h.handleCreateContentBlock)

				r.Get("/contacts", h.handleListContacts)
				r.Post("/contacts", h.handleCreateContact)
				r.Get("/contacts/{contactID}", h.handleGetContact)
				r.Get("/contacts/{contactID}/interactions", h.handleListInteractions)
				r.Post("/contacts/{contactID}/interactions", h.handleCreateInteraction)

				r.Get("/companies", h.handleListCompanies)
				r.Post("/companies", h.handleCreateCompany)

				r.Get("/jobs", h.handleListJobs)
				r.Post("/jobs", h.handleCreateJob)
				r.Get("/jobs/{jobID}/applications", h.handleListApplications)
				r.Post("/jobs/{jobID}/applications", h.handleCreateApplication)
			})
		})
	})

	return r
}

func (h *Handler) handleHealth(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				h.logger.Warn().Err(err).Msg("health check failed")
				respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
