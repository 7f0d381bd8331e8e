package handlers

import (
	"net/http"
	"time"

	"transistor_bench/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsAnalysis runs one live analysis per connection: the client sends a single
// parameter JSON, the server pushes point envelopes as the search evaluates
// candidates, then one result envelope, then closes.
func (h *Handler) wsAnalysis(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// First frame carries the run parameters.
	var input models.SimulationInput
	if err := conn.ReadJSON(&input); err != nil {
		h.wsFail(conn, "invalid parameters: "+err.Error())
		return
	}

	stream, results, err := h.services.AnalyzeStream(c.Request.Context(), input)
	if err != nil {
		h.wsFail(conn, err.Error())
		return
	}

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-stream.Ready():
			if err := h.writePoints(conn, stream.Drain()); err != nil {
				return
			}
		case result := <-results:
			// The engine has closed the stream; flush whatever it emitted
			// after the last drain before the terminal envelope.
			if err := h.writePoints(conn, stream.Drain()); err != nil {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsEnvelope{Type: "result", Data: result}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
			}
			return
		}
	}
}

// Helper: writePoints pushes one envelope per sample, in emission order.
func (h *Handler) writePoints(conn *websocket.Conn, points []models.LiveDataPoint) error {
	for _, p := range points {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(wsEnvelope{Type: "point", Data: p}); err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "err", err)
			}
			return err
		}
	}
	return nil
}

// Helper: wsFail reports a terminal error to the client before closing.
func (h *Handler) wsFail(conn *websocket.Conn, msg string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: msg})
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
