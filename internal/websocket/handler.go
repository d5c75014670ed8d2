package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to WebSocket
// and runs them as Hub clients. originPatterns lists the host patterns allowed
// besides same-origin requests; "*" allows any origin.
func HandleWebSocket(hub *Hub, originPatterns []string) http.HandlerFunc {
	opts := &ws.AcceptOptions{OriginPatterns: originPatterns}
	for _, p := range originPatterns {
		if p == "*" {
			opts = &ws.AcceptOptions{InsecureSkipVerify: true}
			break
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, opts)
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err, "remote", r.RemoteAddr)
			return
		}

		hub.logger.Debug("client connected", "remote", r.RemoteAddr)
		client := NewClient(hub, conn)
		client.Run(r.Context())
		hub.logger.Debug("client disconnected", "remote", r.RemoteAddr)
	}
}
