package server

import (
	"net/http"

	"github.com/agentstation/diecast/internal/server/handlers"
	"github.com/agentstation/diecast/internal/server/middleware"
	"github.com/agentstation/diecast/internal/server/response"
)

func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	h := handlers.New(
		s.garage,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
		s.config.IncludeOldCases,
	)
	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	p := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/ready", h.HandleReady)

	// search
	mux.HandleFunc("GET "+p+"/search", h.HandleSearch)
	mux.HandleFunc("GET "+p+"/facets/{dimension}", h.HandleFacets)
	mux.HandleFunc("GET "+p+"/suggest", h.HandleSuggest)

	// collection
	mux.HandleFunc("GET "+p+"/owned", h.HandleOwned)
	mux.HandleFunc("POST "+p+"/owned", h.HandleMarkOwned)
	mux.HandleFunc("DELETE "+p+"/owned/{image}", h.HandleUnmark)
	mux.HandleFunc("POST "+p+"/owned/{image}/increment", h.HandleIncrement)
	mux.HandleFunc("POST "+p+"/owned/{image}/decrement", h.HandleDecrement)
	mux.HandleFunc("PUT "+p+"/owned/{image}/quantity", h.HandleSetQuantity)
	mux.HandleFunc("GET "+p+"/wanted", h.HandleWanted)
	mux.HandleFunc("POST "+p+"/wanted", h.HandleAddWanted)
	mux.HandleFunc("DELETE "+p+"/wanted/{image}", h.HandleRemoveWanted)
	mux.HandleFunc("GET "+p+"/duplicates", h.HandleDuplicates)
	mux.HandleFunc("GET "+p+"/export", h.HandleExport)
	mux.HandleFunc("POST "+p+"/import", h.HandleImport)

	// browse
	mux.HandleFunc("GET "+p+"/series", h.HandleYears)
	mux.HandleFunc("GET "+p+"/series/{year}", h.HandleSeries)
	mux.HandleFunc("GET "+p+"/series/{year}/{series}", h.HandleSeriesCars)
	mux.HandleFunc("GET "+p+"/cases/{year}/{letter}", h.HandleCaseCars)
	mux.HandleFunc("GET "+p+"/cars/{image}", h.HandleCar)

	// live updates
	mux.HandleFunc("GET "+p+"/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+p+"/events", h.HandleSSE)

	mux.HandleFunc(p+"/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "No route for "+r.Method+" "+r.URL.Path, "")
	})
}

// applyMiddleware wraps handler so requests pass recovery, logging,
// CORS, auth and rate limiting in that order.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	var chain []func(http.Handler) http.Handler

	chain = append(chain, middleware.Recovery(s.logger), middleware.Logger(s.logger))
	if cfg.CORSEnabled {
		cors := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			cors.AllowedOrigins = cfg.CORSOrigins
			cors.AllowAll = false
		}
		chain = append(chain, middleware.CORS(cors))
	}
	if cfg.AuthEnabled {
		auth := middleware.DefaultAuthConfig()
		auth.Enabled = true
		auth.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			auth.HeaderName = cfg.AuthHeader
		}
		chain = append(chain, middleware.Auth(auth, s.logger))
	}
	if s.rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(s.rateLimiter))
	}
	return middleware.Chain(chain...)(handler)
}
