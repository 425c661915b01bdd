// Package handlers implements the diecast HTTP API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/server/cache"
	"github.com/agentstation/diecast/internal/server/response"
	"github.com/agentstation/diecast/internal/server/sse"
	ws "github.com/agentstation/diecast/internal/server/websocket"
	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
)

// Handlers serves the API routes.
type Handlers struct {
	garage          *diecast.Garage
	cache           *cache.Cache
	wsHub           *ws.Hub
	sseBroadcaster  *sse.Broadcaster
	upgrader        websocket.Upgrader
	logger          *zerolog.Logger
	includeOldCases bool
	// bypassCache is set when the collection can change outside this
	// process, so no cached view can be trusted.
	bypassCache bool
}

// New creates the handlers. includeOldCases is the search default when
// a request does not say.
func New(
	garage *diecast.Garage,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	includeOldCases bool,
) *Handlers {
	return &Handlers{
		garage:          garage,
		cache:           cache,
		wsHub:           wsHub,
		sseBroadcaster:  sseBroadcaster,
		upgrader:        upgrader,
		logger:          logger,
		includeOldCases: includeOldCases,
		bypassCache:     garage.Store().Shared(),
	}
}

// cached serves key from the cache or computes, stores and serves it.
// A value is only stored when no change cleared the cache while it was
// being computed.
func (h *Handlers) cached(w http.ResponseWriter, key string, compute func() (any, error)) {
	if h.bypassCache {
		v, err := compute()
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		w.Header().Set("X-Cache", "BYPASS")
		response.OK(w, v)
		return
	}

	if v, ok := h.cache.Get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		response.OK(w, v)
		return
	}
	gen := h.cache.Generation()
	v, err := compute()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.cache.SetAt(key, v, gen)
	w.Header().Set("X-Cache", "MISS")
	response.OK(w, v)
}

// decode reads a JSON body of at most constants.MaxImportBytes.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, constants.MaxImportBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.NewValidationError("body", nil, "request body is empty")
		}
		return errors.NewParseError("json", "request body", err.Error(), err)
	}
	return nil
}
