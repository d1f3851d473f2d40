package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/rateio/internal/http/auth"
	"github.com/MrJamesThe3rd/rateio/internal/http/bill"
	"github.com/MrJamesThe3rd/rateio/internal/http/category"
	"github.com/MrJamesThe3rd/rateio/internal/http/export"
	"github.com/MrJamesThe3rd/rateio/internal/http/importcsv"
	"github.com/MrJamesThe3rd/rateio/internal/http/matching"
	"github.com/MrJamesThe3rd/rateio/internal/http/person"
	"github.com/MrJamesThe3rd/rateio/internal/http/report"
	"github.com/MrJamesThe3rd/rateio/internal/metrics"
)

type Handlers struct {
	Bills      *bill.Handler
	People     *person.Handler
	Categories *category.Handler
	Reports    *report.Handler
	Import     *importcsv.Handler
	Rules      *matching.Handler
	Export     *export.Handler
}

type Options struct {
	AllowedOrigins []string
	// JWTSecret guards /api/v1 with bearer tokens. Empty leaves the API open.
	JWTSecret string
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/bills", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Bills.Routes(r)
		})

		r.Route("/plans", h.Bills.PlanRoutes)

		r.Route("/people", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.People.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/rules", h.Rules.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}
