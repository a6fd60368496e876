// internal/httpserver/server.go
//
// HTTP server wiring for the recipes API.
// Responsibilities:
//   - Router + middleware (request IDs, access log, metrics, panic recovery,
//     timeouts, JSON, CORS, token gate).
//   - Public endpoints: "/", "/health", "/metrics", recipes, login.
//   - Protected endpoint: GET /api/favorites (requires a verified identity).
//   - JSON 404 for anything unmatched.
//
// Notes:
//   - The token gate runs before routing, so a bad token on a non-public
//     path is rejected even when the path does not exist.
//   - All dependencies are injected through Options; nothing is read from
//     the environment here.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/recipes-api/assets"
	"github.com/robalobadob/recipes-api/internal/auth"
	"github.com/robalobadob/recipes-api/internal/recipes"
	"github.com/robalobadob/recipes-api/internal/users"
)

// PublicRoutes never require a token. Tokens sent to them are ignored.
var PublicRoutes = auth.AllowList{
	auth.Public(http.MethodGet, "/"),
	auth.Public(http.MethodGet, "/api/recipes"),
	auth.Public(http.MethodGet, "/api/recipes/:idOrSlug"),
	auth.Public(http.MethodPost, "/api/login"),
	auth.Public(http.MethodGet, "/health"),
	auth.Public(http.MethodGet, "/metrics"),
}

// Options carries the server's collaborators.
type Options struct {
	Users   users.Store
	Catalog *recipes.Catalog
	Tokens  *auth.Tokens

	// ClientOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	ClientOrigin string

	// Registry receives the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry

	// Logger is the base request logger. The global zerolog logger is used when nil.
	Logger *zerolog.Logger

	// HandlerTimeout bounds handler time. Zero means DefaultHandlerTimeout.
	HandlerTimeout time.Duration
}

// DefaultHandlerTimeout is used when Options.HandlerTimeout is zero.
const DefaultHandlerTimeout = 10 * time.Second

// Server bundles router, user store, catalog and authenticator.
type Server struct {
	r       *chi.Mux
	users   users.Store
	catalog *recipes.Catalog
	auth    *auth.Authenticator
	metrics *metrics
	index   []byte
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) (*Server, error) {
	index, err := assets.IndexHTML()
	if err != nil {
		return nil, err
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	timeout := opts.HandlerTimeout
	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}

	s := &Server{
		r:       chi.NewRouter(),
		users:   opts.Users,
		catalog: opts.Catalog,
		auth:    auth.NewAuthenticator(opts.Users, opts.Tokens),
		metrics: newMetrics(reg),
		index:   index,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(logger)) // request-scoped logger
	s.r.Use(accessLog)               // one line per request
	s.r.Use(s.metrics.instrument)    // request counters/latency
	s.r.Use(s.recoverJSON)           // panics become 500 JSON
	s.r.Use(s.timeout(timeout))      // bound handler time
	s.r.Use(jsonContentType)         // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))
	s.r.Use(auth.Gate(opts.Tokens, PublicRoutes, s.fail))

	notFound := func(w http.ResponseWriter, r *http.Request) { s.fail(w, r, ErrNotFound) }
	s.r.NotFound(notFound)
	s.r.MethodNotAllowed(notFound)

	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.r.Route("/api", func(r chi.Router) {
		s.mountRecipes(r)
		s.mountAuth(r)
	})

	return s, nil
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error { return Serve(ctx, addr, s) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.index)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single origin (or "*") and answers preflight requests.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one info line per request. The Authorization header is never logged.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})
