package handlers

import (
	"net/http"

	"github.com/agentstation/diecast/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "diecast-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once the
// catalog has cars and the collection can be read.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	catalog := h.garage.Catalog()
	if catalog.Len() == 0 {
		response.ServiceUnavailable(w, "Catalog is empty")
		return
	}
	total, err := h.garage.TotalOwned(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, "Collection not readable")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"cars":              catalog.Len(),
		"years":             catalog.Years(),
		"owned":             total,
		"cache_items":       h.cache.ItemCount(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
