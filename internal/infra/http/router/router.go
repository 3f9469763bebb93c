// Package router assembles the chi router for the API and the wizard page.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/infra/http/handlers"
	"github.com/xavierca1/leadmail/internal/infra/http/middleware"
)

type Handlers struct {
	Email  *handlers.EmailHandler
	Lead   *handlers.LeadHandler
	Upload *handlers.UploadHandler
	Health *handlers.HealthHandler
	// Page is optional; without it only the API is served.
	Page *handlers.PageHandler
}

type Options struct {
	AllowedOrigins []string
	// GenerateLimiter throttles the generation endpoint per client IP. Nil
	// disables it.
	GenerateLimiter *middleware.RateLimiter
	Logger          *zap.Logger
}

func New(h Handlers, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	if h.Page != nil {
		r.Get("/", h.Page.Index)
		r.Get("/static/*", h.Page.Static)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Batch-ID", "Content-Disposition"},
			MaxAge:         300,
		}))

		r.Post("/upload-csv", h.Upload.Handle)
		r.Post("/leads/parse", h.Lead.Parse)
		r.Get("/sample-csv", h.Lead.SampleCSV)

		if opts.GenerateLimiter != nil {
			r.With(opts.GenerateLimiter.Handler).Post("/generate-emails", h.Email.Generate)
		} else {
			r.Post("/generate-emails", h.Email.Generate)
		}

		r.Get("/emails", h.Email.List)
		r.Get("/emails/export", h.Email.Export)
		r.Post("/emails/export/mail", h.Email.MailExport)
		r.Patch("/emails/{id}", h.Email.Update)
		r.Delete("/emails/{id}", h.Email.Delete)
		r.Post("/emails/{id}/regenerate", h.Email.Regenerate)
	})

	return r
}
