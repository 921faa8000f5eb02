// Package api serves the Query Service: CRUD over school records and the
// analytics endpoints, as JSON over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/sells-group/schooldata/internal/store"
)

// Options configures the router.
type Options struct {
	AllowedOrigins  []string
	AllowBulkDelete bool
	// RateLimit is the sustained requests per second across all clients.
	// Zero disables limiting.
	RateLimit    float64
	RateBurst    int
	QueryTimeout time.Duration
}

// Handler holds the dependencies of the route handlers.
type Handler struct {
	store store.Store
	opts  Options
}

// NewRouter builds the Query Service router.
func NewRouter(st store.Store, opts Options) http.Handler {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	h := &Handler{store: st, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}
	if opts.QueryTimeout > 0 {
		r.Use(queryTimeout(opts.QueryTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/data", func(r chi.Router) {
			r.Get("/", h.listSchools)
			r.Post("/", h.createSchool)
			r.Get("/search", h.searchSchools)
			r.Get("/{id}", h.getSchool)
			r.Put("/{id}", h.updateSchool)
			r.Delete("/{id}", h.deleteSchool)
		})

		r.Get("/demographics", h.demographics)
		r.Get("/graduation-rates", h.graduationRates)
		r.Get("/graduation-rates/{aun}", h.graduationRates)
		r.Get("/financial-analysis", h.financialAnalysis)
		r.Get("/school-performance", h.schoolPerformance)
		r.Get("/cities", h.cities)
		r.Get("/schools/search", h.searchDirectory)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		storeError(w, r, "health check", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
