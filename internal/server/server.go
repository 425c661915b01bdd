// Package server serves a Garage over HTTP.
//
// Collection and catalog hooks flush the response cache and publish
// events to WebSocket and SSE clients:
//
//	srv, err := server.New(garage, server.DefaultConfig(), logger)
//	srv.Start()
//	defer srv.Shutdown(ctx)
//	http.ListenAndServe(":8080", srv.Handler())
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/server/cache"
	"github.com/agentstation/diecast/internal/server/events"
	"github.com/agentstation/diecast/internal/server/events/adapters"
	"github.com/agentstation/diecast/internal/server/middleware"
	"github.com/agentstation/diecast/internal/server/sse"
	ws "github.com/agentstation/diecast/internal/server/websocket"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
)

// Server holds the HTTP server state.
type Server struct {
	garage         *diecast.Garage
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	done           chan struct{}
}

// New creates a server over garage.
func New(garage *diecast.Garage, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if garage == nil {
		return nil, errors.NewConfigError("server", "garage is required", nil)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		garage:         garage,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.connectHooks()
	logger.Debug().
		Str("prefix", cfg.PathPrefix).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Server created")
	return s, nil
}

// connectHooks keeps cached responses and live clients in step with the
// garage.
func (s *Server) connectHooks() {
	s.garage.OnCollectionChanged(func(e diecast.CollectionEvent) {
		s.cache.Clear()
		s.broker.Publish(eventType(e.Type), e)
	})

	s.garage.OnCatalogReloaded(func(_, next catalogs.Catalog) {
		s.cache.Clear()
		s.broker.Publish(events.CatalogReloaded, map[string]any{
			"cars":  next.Len(),
			"years": next.Years(),
		})
	})
}

func eventType(t diecast.ChangeType) events.EventType {
	switch t {
	case diecast.ChangeOwned:
		return events.CarOwned
	case diecast.ChangeUnowned:
		return events.CarUnowned
	case diecast.ChangeQuantity:
		return events.CarQuantity
	case diecast.ChangeWantedAdded:
		return events.WantedAdded
	case diecast.ChangeWantedRemoved:
		return events.WantedRemoved
	default:
		return events.CollectionImported
	}
}

// Start runs the broker, hub and broadcaster until Shutdown.
func (s *Server) Start() {
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	go func() {
		defer close(s.done)
		s.broker.Run(s.ctx)
	}()
	if s.rateLimiter != nil {
		go s.pruneVisitors()
	}
	s.logger.Debug().Msg("Background services started")
}

func (s *Server) pruneVisitors() {
	ticker := time.NewTicker(constants.CacheCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if n := s.rateLimiter.Prune(constants.CacheCleanupInterval); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("Pruned idle rate limit entries")
			}
		}
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops the background services. It waits for the broker to
// close its subscribers or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.done:
		s.logger.Info().Msg("Background services stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services did not stop in time")
		return ctx.Err()
	}
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache { return s.cache }

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub { return s.wsHub }

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker { return s.broker }

