package handlers

import (
	"net/http"
	"strconv"
	"time"

	ws "github.com/agentstation/diecast/internal/server/websocket"
)

// HandleWebSocket handles GET /api/v1/ws. Clients receive collection
// and catalog change messages; anything they send is ignored.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	id := r.RemoteAddr + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	client := ws.NewClient(id, h.wsHub, conn)
	h.wsHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles GET /api/v1/events.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
